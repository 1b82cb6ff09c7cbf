package services

import (
	"context"
	"log/slog"

	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

// adminService implements the AdminSvcFacade interface
type adminService struct {
	BaseService
	repo ports.AccountRepository
}

// NewAdminService creates a new admin service backed by the given repository.
func NewAdminService(repo ports.AccountRepository) ports.AdminSvcFacade {
	return &adminService{repo: repo}
}

// Ensure adminService implements the AdminSvcFacade interface
var _ ports.AdminSvcFacade = (*adminService)(nil)

// SetActive blocks or unblocks an account, bypassing the failed-attempt
// rule. Unblocking always resets the failed-attempt counter.
func (s *adminService) SetActive(ctx context.Context, accountNumber string, active bool) (*domain.Account, error) {
	var updated *domain.Account
	err := s.repo.UpdateAccounts(ctx, []string{accountNumber}, func(accounts map[string]*domain.Account) error {
		acc := accounts[accountNumber]
		acc.IsActive = active
		if active {
			acc.FailedAttempts = 0
		}
		updated = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account active state changed",
		slog.String("account_number", accountNumber),
		slog.Bool("active", active))
	return updated, nil
}

// ListAccounts returns every account in the table in creation order.
func (s *adminService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// Totals reports the number of accounts and the sum of all balances.
func (s *adminService) Totals(ctx context.Context) (*domain.Totals, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for i := range accounts {
		total = total.Add(accounts[i].Balance)
	}
	return &domain.Totals{
		AccountCount: len(accounts),
		TotalBalance: total,
	}, nil
}
