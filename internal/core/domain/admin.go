package domain

// Administrator is the privileged principal that can block and unblock
// accounts and inspect the whole table. It is stored in the snapshot with a
// credential hash set through the same hasher as account credentials, never
// as a compile-time constant.
type Administrator struct {
	Username       string `json:"username"`
	CredentialHash string `json:"credentialHash"`
}
