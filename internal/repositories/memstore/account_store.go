// Package memstore holds the live account table. All mutations run inside a
// single critical section and are flushed to the snapshot store before they
// are reported successful (write-through). A failed flush rolls the
// in-memory mutation back so memory and disk never diverge.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
)

// AccountStore is the in-memory account table with unique indexes by
// account number and by username.
type AccountStore struct {
	mu         sync.RWMutex
	byNumber   map[string]*domain.Account
	byUsername map[string]string // username -> account number
	order      []string          // account numbers in creation order
	admin      *domain.Administrator
	snapshots  ports.SnapshotStore
}

// NewAccountStore builds the table from the snapshot store. An absent
// snapshot yields an empty table.
func NewAccountStore(ctx context.Context, snapshots ports.SnapshotStore) (*AccountStore, error) {
	accounts, admin, err := snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load account snapshot: %w", err)
	}

	s := &AccountStore{
		byNumber:   make(map[string]*domain.Account, len(accounts)),
		byUsername: make(map[string]string, len(accounts)),
		order:      make([]string, 0, len(accounts)),
		admin:      admin,
		snapshots:  snapshots,
	}
	for i := range accounts {
		acc := accounts[i].Clone()
		if _, exists := s.byNumber[acc.AccountNumber]; exists {
			return nil, fmt.Errorf("snapshot contains duplicate account number %s: %w", acc.AccountNumber, apperrors.ErrDuplicate)
		}
		if _, exists := s.byUsername[acc.Username]; exists {
			return nil, fmt.Errorf("snapshot contains duplicate username %s: %w", acc.Username, apperrors.ErrDuplicate)
		}
		s.byNumber[acc.AccountNumber] = acc
		s.byUsername[acc.Username] = acc.AccountNumber
		s.order = append(s.order, acc.AccountNumber)
	}
	return s, nil
}

// Ensure AccountStore implements the AccountRepository interface
var _ ports.AccountRepository = (*AccountStore)(nil)

func (s *AccountStore) FindByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.byNumber[accountNumber]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountNumber, apperrors.ErrNotFound)
	}
	return acc.Clone(), nil
}

func (s *AccountStore) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	number, ok := s.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("username %s: %w", username, apperrors.ErrNotFound)
	}
	return s.byNumber[number].Clone(), nil
}

func (s *AccountStore) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.order))
	for _, number := range s.order {
		out = append(out, *s.byNumber[number].Clone())
	}
	return out, nil
}

func (s *AccountStore) CreateAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byNumber[account.AccountNumber]; exists {
		return fmt.Errorf("account number %s: %w", account.AccountNumber, apperrors.ErrDuplicate)
	}
	if _, exists := s.byUsername[account.Username]; exists {
		return fmt.Errorf("username %s: %w", account.Username, apperrors.ErrDuplicate)
	}

	acc := account.Clone()
	s.byNumber[acc.AccountNumber] = acc
	s.byUsername[acc.Username] = acc.AccountNumber
	s.order = append(s.order, acc.AccountNumber)

	if err := s.flushLocked(ctx); err != nil {
		delete(s.byNumber, acc.AccountNumber)
		delete(s.byUsername, acc.Username)
		s.order = s.order[:len(s.order)-1]
		return err
	}
	return nil
}

// UpdateAccounts applies fn to the named accounts inside one critical
// section. Validation, mutation and the snapshot flush form a single atomic
// unit: if fn fails or the flush fails, the accounts are restored to their
// prior state.
func (s *AccountStore) UpdateAccounts(ctx context.Context, accountNumbers []string, fn func(accounts map[string]*domain.Account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := make(map[string]*domain.Account, len(accountNumbers))
	saved := make(map[string]*domain.Account, len(accountNumbers))
	for _, number := range accountNumbers {
		acc, ok := s.byNumber[number]
		if !ok {
			return fmt.Errorf("account %s: %w", number, apperrors.ErrNotFound)
		}
		live[number] = acc
		saved[number] = acc.Clone()
	}

	restore := func() {
		for number, prior := range saved {
			s.byNumber[number] = prior
		}
	}

	if err := fn(live); err != nil {
		restore()
		return err
	}

	if err := s.flushLocked(ctx); err != nil {
		restore()
		return err
	}
	return nil
}

func (s *AccountStore) Administrator(_ context.Context) (*domain.Administrator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.admin == nil {
		return nil, fmt.Errorf("administrator: %w", apperrors.ErrNotFound)
	}
	cp := *s.admin
	return &cp, nil
}

func (s *AccountStore) SaveAdministrator(ctx context.Context, admin domain.Administrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.admin
	cp := admin
	s.admin = &cp

	if err := s.flushLocked(ctx); err != nil {
		s.admin = prior
		return err
	}
	return nil
}

// flushLocked writes the whole table to the snapshot store. Callers hold mu.
func (s *AccountStore) flushLocked(ctx context.Context) error {
	accounts := make([]domain.Account, 0, len(s.order))
	for _, number := range s.order {
		accounts = append(accounts, *s.byNumber[number].Clone())
	}
	if err := s.snapshots.Save(ctx, accounts, s.admin); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	return nil
}
