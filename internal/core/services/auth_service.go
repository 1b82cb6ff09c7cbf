package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/platform/config"
	"github.com/sarnathbank/banking_app/internal/utils"
)

// maxFailedAttempts is the number of consecutive failed logins that blocks
// an account until an administrator unblocks it.
const maxFailedAttempts = 3

// authService implements the AuthSvcFacade interface
type authService struct {
	BaseService
	repo ports.AccountRepository
	cfg  *config.Config
}

// NewAuthService creates a new auth service backed by the given repository.
func NewAuthService(repo ports.AccountRepository, cfg *config.Config) ports.AuthSvcFacade {
	return &authService{repo: repo, cfg: cfg}
}

// Ensure authService implements the AuthSvcFacade interface
var _ ports.AuthSvcFacade = (*authService)(nil)

// Login evaluates a login attempt against the lockout state machine:
// unknown username and blocked accounts change no state; a credential
// mismatch increments the failed-attempt counter and blocks the account
// when it reaches the limit; a match resets the counter and issues a
// session bound to the account.
func (s *authService) Login(ctx context.Context, username, secret string) (*domain.Session, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account %s: %w", account.AccountNumber, apperrors.ErrAccountBlocked)
	}

	if !utils.VerifyCredential(secret, account.CredentialHash) {
		return nil, s.recordFailedAttempt(ctx, account.AccountNumber)
	}

	var updated *domain.Account
	err = s.repo.UpdateAccounts(ctx, []string{account.AccountNumber}, func(accounts map[string]*domain.Account) error {
		acc := accounts[account.AccountNumber]
		if !acc.IsActive {
			return fmt.Errorf("account %s: %w", acc.AccountNumber, apperrors.ErrAccountBlocked)
		}
		acc.FailedAttempts = 0
		updated = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := utils.GenerateSessionToken(updated.AccountNumber, string(domain.RoleUser), s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("account_number", updated.AccountNumber))
		return nil, err
	}

	s.LogInfo(ctx, "Login successful", slog.String("account_number", updated.AccountNumber))
	return &domain.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      domain.RoleUser,
		Account:   updated,
	}, nil
}

// recordFailedAttempt increments the account's failed-attempt counter inside
// the table's critical section, blocking the account when the counter
// reaches the limit, and persists before reporting the credential error.
func (s *authService) recordFailedAttempt(ctx context.Context, accountNumber string) error {
	credErr := &apperrors.InvalidCredentialError{}
	err := s.repo.UpdateAccounts(ctx, []string{accountNumber}, func(accounts map[string]*domain.Account) error {
		acc := accounts[accountNumber]
		if !acc.IsActive {
			// Blocked by a concurrent attempt between lookup and update.
			return fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrAccountBlocked)
		}
		acc.FailedAttempts++
		if acc.FailedAttempts >= maxFailedAttempts {
			acc.IsActive = false
			credErr.NewlyBlocked = true
		} else {
			credErr.AttemptsRemaining = maxFailedAttempts - acc.FailedAttempts
		}
		return nil
	})
	if err != nil {
		return err
	}

	if credErr.NewlyBlocked {
		s.LogWarn(ctx, "Account blocked after repeated failed logins", slog.String("account_number", accountNumber))
	} else {
		s.LogWarn(ctx, "Failed login attempt",
			slog.String("account_number", accountNumber),
			slog.Int("attempts_remaining", credErr.AttemptsRemaining))
	}
	return credErr
}

// AdminLogin verifies the stored administrator principal through the same
// credential hasher as account logins. All failures collapse to
// ErrUnauthorized so callers cannot probe which part was wrong.
func (s *authService) AdminLogin(ctx context.Context, username, secret string) (*domain.Session, error) {
	admin, err := s.repo.Administrator(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Admin login attempted before administrator bootstrap")
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if username != admin.Username || !utils.VerifyCredential(secret, admin.CredentialHash) {
		s.LogWarn(ctx, "Failed admin login attempt")
		return nil, apperrors.ErrUnauthorized
	}

	token, expiresAt, err := utils.GenerateSessionToken(admin.Username, string(domain.RoleAdmin), s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign admin session token")
		return nil, err
	}

	s.LogInfo(ctx, "Admin login successful")
	return &domain.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      domain.RoleAdmin,
	}, nil
}

// EnsureAdministrator bootstraps the administrator record from configuration
// when the snapshot does not contain one yet. The configured password is
// hashed before storage and never kept in memory beyond this call.
func (s *authService) EnsureAdministrator(ctx context.Context) error {
	if _, err := s.repo.Administrator(ctx); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	if s.cfg.AdminPassword == "" {
		s.LogWarn(ctx, "No administrator stored and ADMIN_PASSWORD not set; admin operations unavailable")
		return nil
	}

	hash, err := utils.HashCredential(s.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash administrator credential: %w", err)
	}
	if err := s.repo.SaveAdministrator(ctx, domain.Administrator{
		Username:       s.cfg.AdminUsername,
		CredentialHash: hash,
	}); err != nil {
		return err
	}

	s.LogInfo(ctx, "Administrator bootstrapped", slog.String("username", s.cfg.AdminUsername))
	return nil
}
