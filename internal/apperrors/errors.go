package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountBlocked indicates that the account is blocked and rejects the operation.
var ErrAccountBlocked = errors.New("account is blocked")

// ErrInsufficientBalance indicates a debit would breach the account type's minimum balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrSameAccountTransfer indicates source and destination of a transfer are the same account.
var ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

// ErrDestinationNotFound indicates the destination account of a transfer does
// not exist. It wraps ErrNotFound, so generic not-found handling still applies;
// callers check this sentinel first when the distinction matters.
var ErrDestinationNotFound = fmt.Errorf("destination account: %w", ErrNotFound)

// ErrPersistence indicates the snapshot flush did not complete. The in-memory
// mutation is rolled back before this is returned, so memory and disk stay aligned.
var ErrPersistence = errors.New("persistence failure")

// ErrUnauthorized indicates missing or invalid credentials for the requested action.
var ErrUnauthorized = errors.New("unauthorized")

// InvalidCredentialError is returned on a failed login attempt. It carries
// whether this attempt blocked the account and, if not, how many attempts
// remain before it will be.
type InvalidCredentialError struct {
	AttemptsRemaining int
	NewlyBlocked      bool
}

func (e *InvalidCredentialError) Error() string {
	if e.NewlyBlocked {
		return "invalid credentials: account blocked after repeated failed attempts"
	}
	return fmt.Sprintf("invalid credentials: %d attempts remaining", e.AttemptsRemaining)
}

// Is lets errors.Is(err, ErrUnauthorized) hold for credential failures so
// handlers can map all authentication failures uniformly.
func (e *InvalidCredentialError) Is(target error) bool {
	return target == ErrUnauthorized
}
