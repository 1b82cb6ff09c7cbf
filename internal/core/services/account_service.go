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
	"github.com/sarnathbank/banking_app/internal/dto"
	"github.com/sarnathbank/banking_app/internal/utils"
	"github.com/shopspring/decimal"
)

// maxAccountNumberAttempts bounds regeneration after generated account
// number collisions. Collisions are retried silently; usernames are not.
const maxAccountNumberAttempts = 5

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	repo ports.AccountRepository
}

// NewAccountService creates a new account service backed by the given repository.
func NewAccountService(repo ports.AccountRepository) ports.AccountSvcFacade {
	return &accountService{repo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ ports.AccountSvcFacade = (*accountService)(nil)

// CreateAccount validates the profile, generates a fresh account number and
// inserts the account with its initial deposit as the first ledger entry.
// Validation happens fully before any state is touched.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := ValidateHolderName(req.HolderName); err != nil {
		return nil, err
	}
	if err := ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := ValidateMobile(req.Mobile); err != nil {
		return nil, err
	}
	if req.DateOfBirth == "" {
		return nil, fmt.Errorf("date of birth must not be empty: %w", apperrors.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password must not be empty: %w", apperrors.ErrValidation)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match: %w", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("unknown account type %q: %w", req.AccountType, apperrors.ErrValidation)
	}
	minDeposit := req.AccountType.MinimumBalance()
	if req.InitialDeposit.LessThan(minDeposit) {
		return nil, fmt.Errorf("initial deposit below the %s minimum of %s: %w", req.AccountType, minDeposit, apperrors.ErrValidation)
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username %s: %w", req.Username, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	credentialHash, err := utils.HashCredential(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash credential")
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		HolderName:     req.HolderName,
		Username:       req.Username,
		CredentialHash: credentialHash,
		DateOfBirth:    req.DateOfBirth,
		Mobile:         req.Mobile,
		Email:          req.Email,
		Balance:        req.InitialDeposit,
		AccountType:    req.AccountType,
		IsActive:       true,
		FailedAttempts: 0,
		CreatedAt:      now,
	}
	account.AppendTransaction(domain.Transaction{
		Timestamp:    now,
		Type:         domain.Deposit,
		Amount:       req.InitialDeposit,
		BalanceAfter: req.InitialDeposit,
		Description:  "Initial Deposit",
	})

	// Generated account numbers may collide; regenerate and retry without
	// surfacing the collision to the caller.
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number, err := utils.GenerateAccountNumber()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate account number")
			return nil, err
		}
		account.AccountNumber = number

		err = s.repo.CreateAccount(ctx, account)
		if err == nil {
			s.LogInfo(ctx, "Account created successfully",
				slog.String("account_number", account.AccountNumber),
				slog.String("account_type", string(account.AccountType)))
			return account.Clone(), nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Distinguish a raced username from an account number collision.
			if _, findErr := s.repo.FindByUsername(ctx, req.Username); findErr == nil {
				return nil, fmt.Errorf("username %s: %w", req.Username, apperrors.ErrDuplicate)
			}
			s.LogWarn(ctx, "Account number collision, regenerating", slog.String("account_number", number))
			continue
		}
		s.LogError(ctx, err, "Failed to save new account")
		return nil, err
	}
	return nil, fmt.Errorf("could not allocate a unique account number after %d attempts: %w", maxAccountNumberAttempts, apperrors.ErrDuplicate)
}

func (s *accountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	account, err := s.repo.FindByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_number", accountNumber))
		}
		return nil, err
	}
	return account, nil
}

// Deposit credits the account and appends a DEPOSIT ledger entry. The
// mutation, its ledger entry and the snapshot flush succeed or fail as one.
func (s *accountService) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	var updated *domain.Account
	err := s.repo.UpdateAccounts(ctx, []string{accountNumber}, func(accounts map[string]*domain.Account) error {
		acc := accounts[accountNumber]
		if !acc.IsActive {
			return fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrAccountBlocked)
		}
		acc.Balance = acc.Balance.Add(amount)
		acc.AppendTransaction(domain.Transaction{
			Timestamp:    time.Now(),
			Type:         domain.Deposit,
			Amount:       amount,
			BalanceAfter: acc.Balance,
			Description:  "Cash Deposit",
		})
		updated = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Deposit applied",
		slog.String("account_number", accountNumber),
		slog.String("amount", amount.String()))
	return updated, nil
}

// Withdraw debits the account if the balance floor for its type is
// preserved, and appends a WITHDRAW ledger entry.
func (s *accountService) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*domain.Account, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	var updated *domain.Account
	err := s.repo.UpdateAccounts(ctx, []string{accountNumber}, func(accounts map[string]*domain.Account) error {
		acc := accounts[accountNumber]
		if !acc.IsActive {
			return fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrAccountBlocked)
		}
		remaining := acc.Balance.Sub(amount)
		if remaining.LessThan(acc.AccountType.MinimumBalance()) {
			return fmt.Errorf("withdrawal would breach the %s minimum balance of %s: %w",
				acc.AccountType, acc.AccountType.MinimumBalance(), apperrors.ErrInsufficientBalance)
		}
		acc.Balance = remaining
		acc.AppendTransaction(domain.Transaction{
			Timestamp:    time.Now(),
			Type:         domain.Withdraw,
			Amount:       amount,
			BalanceAfter: acc.Balance,
			Description:  "Cash Withdrawal",
		})
		updated = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Withdrawal applied",
		slog.String("account_number", accountNumber),
		slog.String("amount", amount.String()))
	return updated, nil
}

// ChangeCredential replaces the stored credential hash after verifying the
// old secret against it. Plaintext secrets are never stored or compared.
func (s *accountService) ChangeCredential(ctx context.Context, accountNumber, oldSecret, newSecret, confirmSecret string) error {
	if newSecret == "" {
		return fmt.Errorf("new password must not be empty: %w", apperrors.ErrValidation)
	}
	if newSecret != confirmSecret {
		return fmt.Errorf("new passwords do not match: %w", apperrors.ErrValidation)
	}

	newHash, err := utils.HashCredential(newSecret)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash new credential")
		return err
	}

	err = s.repo.UpdateAccounts(ctx, []string{accountNumber}, func(accounts map[string]*domain.Account) error {
		acc := accounts[accountNumber]
		if !acc.IsActive {
			return fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrAccountBlocked)
		}
		if !utils.VerifyCredential(oldSecret, acc.CredentialHash) {
			return fmt.Errorf("current password incorrect: %w", apperrors.ErrUnauthorized)
		}
		acc.CredentialHash = newHash
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Credential changed", slog.String("account_number", accountNumber))
	return nil
}

// ListTransactions returns the account's ledger in most-recent-first order.
func (s *accountService) ListTransactions(ctx context.Context, accountNumber string) ([]domain.Transaction, error) {
	account, err := s.repo.FindByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return account.History(), nil
}
