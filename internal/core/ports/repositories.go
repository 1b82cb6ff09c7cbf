package ports

import (
	"context"

	"github.com/sarnathbank/banking_app/internal/core/domain"
)

// AccountRepository is the account table: keyed lookups, creation, and a
// transactional multi-account update primitive. Implementations persist
// every successful mutation synchronously (write-through) and roll the
// mutation back when the flush fails, returning apperrors.ErrPersistence.
type AccountRepository interface {
	// FindByNumber returns a copy of the account with the given account
	// number, or apperrors.ErrNotFound.
	FindByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindByUsername returns a copy of the account with the given username,
	// or apperrors.ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ListAccounts returns copies of all accounts in creation order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// CreateAccount inserts a fully formed account. It returns
	// apperrors.ErrDuplicate if the username or account number is taken.
	CreateAccount(ctx context.Context, account domain.Account) error

	// UpdateAccounts applies fn to the named accounts inside a single
	// critical section. All named accounts must exist. If fn returns an
	// error, or the snapshot flush fails, no mutation survives. fn receives
	// live accounts keyed by account number; anything it changes is
	// persisted as one snapshot write.
	UpdateAccounts(ctx context.Context, accountNumbers []string, fn func(accounts map[string]*domain.Account) error) error

	// Administrator returns the stored privileged principal, or
	// apperrors.ErrNotFound before one has been bootstrapped.
	Administrator(ctx context.Context) (*domain.Administrator, error)

	// SaveAdministrator stores the privileged principal and flushes.
	SaveAdministrator(ctx context.Context, admin domain.Administrator) error
}

// SnapshotStore persists the complete account table as one snapshot,
// fully overwriting the previous one. Load of an absent snapshot yields an
// empty table and a nil administrator, not an error.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Account, *domain.Administrator, error)
	Save(ctx context.Context, accounts []domain.Account, admin *domain.Administrator) error
}
