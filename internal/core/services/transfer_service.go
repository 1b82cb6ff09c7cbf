package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

// transferService implements the TransferSvcFacade interface
type transferService struct {
	BaseService
	repo ports.AccountRepository
}

// NewTransferService creates a new transfer service backed by the given repository.
func NewTransferService(repo ports.AccountRepository) ports.TransferSvcFacade {
	return &transferService{repo: repo}
}

// Ensure transferService implements the TransferSvcFacade interface
var _ ports.TransferSvcFacade = (*transferService)(nil)

// Transfer debits the source and credits the destination as a single atomic
// unit: both legs and their ledger entries are applied inside one critical
// section and persisted with one snapshot write, or not at all.
// Preconditions are checked in order; the first failure aborts with no
// mutation on either side.
func (s *transferService) Transfer(ctx context.Context, sourceNumber, destinationNumber string, amount decimal.Decimal) (*domain.Account, error) {
	destination, err := s.repo.FindByNumber(ctx, destinationNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// A missing source also surfaces as ErrNotFound from the update
			// below; mark the destination case so callers can tell them apart.
			return nil, fmt.Errorf("account %s: %w", destinationNumber, apperrors.ErrDestinationNotFound)
		}
		return nil, err
	}
	if !destination.IsActive {
		return nil, fmt.Errorf("destination account %s: %w", destinationNumber, apperrors.ErrAccountBlocked)
	}
	if destinationNumber == sourceNumber {
		return nil, apperrors.ErrSameAccountTransfer
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	var updatedSource *domain.Account
	err = s.repo.UpdateAccounts(ctx, []string{sourceNumber, destinationNumber}, func(accounts map[string]*domain.Account) error {
		src := accounts[sourceNumber]
		dst := accounts[destinationNumber]

		// Re-check liveness inside the critical section; the pre-checks
		// above may have raced with an administrator block.
		if !src.IsActive {
			return fmt.Errorf("source account %s: %w", sourceNumber, apperrors.ErrAccountBlocked)
		}
		if !dst.IsActive {
			return fmt.Errorf("destination account %s: %w", destinationNumber, apperrors.ErrAccountBlocked)
		}

		remaining := src.Balance.Sub(amount)
		if remaining.LessThan(src.AccountType.MinimumBalance()) {
			return fmt.Errorf("transfer would breach the %s minimum balance of %s: %w",
				src.AccountType, src.AccountType.MinimumBalance(), apperrors.ErrInsufficientBalance)
		}

		now := time.Now()
		src.Balance = remaining
		dst.Balance = dst.Balance.Add(amount)

		src.AppendTransaction(domain.Transaction{
			Timestamp:       now,
			Type:            domain.TransferOut,
			Amount:          amount,
			BalanceAfter:    src.Balance,
			Description:     fmt.Sprintf("Transfer to %s", dst.HolderName),
			ReferenceNumber: dst.AccountNumber,
		})
		dst.AppendTransaction(domain.Transaction{
			Timestamp:       now,
			Type:            domain.TransferIn,
			Amount:          amount,
			BalanceAfter:    dst.Balance,
			Description:     fmt.Sprintf("Transfer from %s", src.HolderName),
			ReferenceNumber: src.AccountNumber,
		})

		updatedSource = src.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Transfer applied",
		slog.String("source", sourceNumber),
		slog.String("destination", destinationNumber),
		slog.String("amount", amount.String()))
	return updatedSource, nil
}
