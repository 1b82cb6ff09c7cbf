package middleware

import "context"

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("sessionSubject")
	roleKey      = contextKey("sessionRole")
)

// GetSessionSubject retrieves the authenticated session subject (the
// account number for user sessions, the administrator username for admin
// sessions) from the context. The boolean reports whether one was set.
func GetSessionSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}

// GetSessionRole retrieves the authenticated session role from the context.
func GetSessionRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok && role != ""
}
