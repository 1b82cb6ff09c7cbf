package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCredential hashes a plaintext secret using bcrypt. The plaintext is
// never stored; only the resulting hash is.
func HashCredential(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyCredential compares a plaintext secret with a stored bcrypt hash.
func VerifyCredential(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
