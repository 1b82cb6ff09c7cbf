package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberPrefix is the institution's branch prefix carried by every
// account number.
const accountNumberPrefix = "SAR"

var accountNumberSpace = big.NewInt(10_000_000_000)

// GenerateAccountNumber returns a fresh candidate account number in the
// form SAR followed by ten decimal digits, drawn from a cryptographically
// secure source. Uniqueness is enforced by the account table; callers
// regenerate on collision.
func GenerateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return fmt.Sprintf("%s%010d", accountNumberPrefix, n), nil
}
