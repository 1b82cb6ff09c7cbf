package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	usernameMinLen = 8
	usernameMaxLen = 15
	emailMinLen    = 5
	mobileLen      = 10
)

// maxOperationAmount is the ceiling for any single deposit, withdrawal or
// transfer amount.
var maxOperationAmount = decimal.NewFromInt(1_000_000)

// ValidateHolderName requires a non-empty name of letters and spaces only.
func ValidateHolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("holder name must not be empty: %w", apperrors.ErrValidation)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return fmt.Errorf("holder name may contain only letters and spaces: %w", apperrors.ErrValidation)
		}
	}
	return nil
}

// ValidateUsername requires a username of 8 to 15 characters.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("username must be %d-%d characters: %w", usernameMinLen, usernameMaxLen, apperrors.ErrValidation)
	}
	return nil
}

// ValidateEmail requires exactly one '@', at least one '.' after it, and a
// total length of at least 5.
func ValidateEmail(email string) error {
	if len(email) < emailMinLen {
		return fmt.Errorf("email too short: %w", apperrors.ErrValidation)
	}
	atCount := 0
	dotAfterAt := false
	for _, r := range email {
		switch {
		case r == '@':
			atCount++
			if atCount > 1 {
				return fmt.Errorf("email must contain exactly one '@': %w", apperrors.ErrValidation)
			}
		case r == '.' && atCount == 1:
			dotAfterAt = true
		}
	}
	if atCount != 1 || !dotAfterAt {
		return fmt.Errorf("invalid email format: %w", apperrors.ErrValidation)
	}
	return nil
}

// ValidateMobile requires exactly ten decimal digits.
func ValidateMobile(mobile string) error {
	if len(mobile) != mobileLen {
		return fmt.Errorf("mobile number must be %d digits: %w", mobileLen, apperrors.ErrValidation)
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return fmt.Errorf("mobile number must contain only digits: %w", apperrors.ErrValidation)
		}
	}
	return nil
}

// ValidateAmount requires 0 < amount <= 1,000,000.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be positive: %w", apperrors.ErrValidation)
	}
	if amount.GreaterThan(maxOperationAmount) {
		return fmt.Errorf("amount exceeds the per-operation ceiling of %s: %w", maxOperationAmount, apperrors.ErrValidation)
	}
	return nil
}
