package ports

import (
	"context"

	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade exposes account lifecycle and single-account mutations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, error)
	ChangeCredential(ctx context.Context, accountNumber, oldSecret, newSecret, confirmSecret string) error
	ListTransactions(ctx context.Context, accountNumber string) ([]domain.Transaction, error)
}

// TransferSvcFacade applies atomic cross-account transfers.
type TransferSvcFacade interface {
	// Transfer debits source and credits destination as one unit and
	// returns the updated source account.
	Transfer(ctx context.Context, sourceNumber, destinationNumber string, amount decimal.Decimal) (*domain.Account, error)
}

// AuthSvcFacade evaluates login attempts and issues sessions.
type AuthSvcFacade interface {
	Login(ctx context.Context, username, secret string) (*domain.Session, error)
	AdminLogin(ctx context.Context, username, secret string) (*domain.Session, error)

	// EnsureAdministrator bootstraps the stored administrator record from
	// configuration if the snapshot does not contain one yet.
	EnsureAdministrator(ctx context.Context) error
}

// AdminSvcFacade is the administrator-only capability surface.
type AdminSvcFacade interface {
	SetActive(ctx context.Context, accountNumber string, active bool) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	Totals(ctx context.Context) (*domain.Totals, error)
}

// ServiceContainer aggregates the service facades handed to the transport layer.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Transfer TransferSvcFacade
	Auth     AuthSvcFacade
	Admin    AdminSvcFacade
}
