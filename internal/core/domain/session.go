package domain

import "time"

// SessionRole distinguishes account-holder sessions from administrator sessions.
type SessionRole string

const (
	RoleUser  SessionRole = "user"
	RoleAdmin SessionRole = "admin"
)

// Session is the authenticated binding between a caller and a principal for
// the duration of subsequent operations. Account is nil for administrator
// sessions.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Role      SessionRole
	Account   *Account
}
