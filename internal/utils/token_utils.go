package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the JWT claims carried by a session token. Subject is
// the account number for user sessions and the administrator username for
// admin sessions; Role distinguishes the two.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a new JWT for the given subject and role.
func GenerateSessionToken(subject, role, secret, issuer string, expiryDuration time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(expiryDuration)
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSessionToken parses a session token string and validates its
// signature and standard claims. It returns the SessionClaims if the token
// is valid, or an error otherwise.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
