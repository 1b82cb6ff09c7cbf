package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/core/services"
	"github.com/sarnathbank/banking_app/internal/dto"
	"github.com/sarnathbank/banking_app/internal/platform/config"
	"github.com/sarnathbank/banking_app/internal/repositories/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySnapshotStore is an in-memory ports.SnapshotStore for tests. Setting
// failSave makes the next flushes fail, to exercise rollback paths.
type memorySnapshotStore struct {
	mu       sync.Mutex
	failSave bool
	accounts []domain.Account
	admin    *domain.Administrator
	saves    int
}

var _ ports.SnapshotStore = (*memorySnapshotStore)(nil)

func (m *memorySnapshotStore) Load(_ context.Context) ([]domain.Account, *domain.Administrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accounts, m.admin, nil
}

func (m *memorySnapshotStore) Save(_ context.Context, accounts []domain.Account, admin *domain.Administrator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return assert.AnError
	}
	m.accounts = accounts
	m.admin = admin
	m.saves++
	return nil
}

func (m *memorySnapshotStore) setFailSave(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave = fail
}

func newTestRepo(t *testing.T) (*memstore.AccountStore, *memorySnapshotStore) {
	t.Helper()
	snaps := &memorySnapshotStore{}
	store, err := memstore.NewAccountStore(context.Background(), snaps)
	require.NoError(t, err)
	return store, snaps
}

func newTestConfig() *config.Config {
	return &config.Config{
		Port:              "8080",
		SnapshotPath:      "unused",
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "banking-app-test",
		AdminUsername:     "admin",
		AdminPassword:     "admin-secret",
		LoginRateLimit:    "10-M",
	}
}

func createRequest(username string, accountType domain.AccountType, deposit int64) dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		HolderName:      "Test Holder",
		Username:        username,
		Email:           "holder@example.com",
		Mobile:          "9876543210",
		DateOfBirth:     "01/01/1990",
		Password:        "opensesame",
		ConfirmPassword: "opensesame",
		AccountType:     accountType,
		InitialDeposit:  decimal.NewFromInt(deposit),
	}
}

func mustCreateAccount(t *testing.T, svc ports.AccountSvcFacade, username string, accountType domain.AccountType, deposit int64) *domain.Account {
	t.Helper()
	acc, err := svc.CreateAccount(context.Background(), createRequest(username, accountType, deposit))
	require.NoError(t, err)
	require.NotNil(t, acc)
	return acc
}

// newTestContainer wires the full service set around a fresh in-memory
// repository, the way main does.
func newTestContainer(t *testing.T) (*ports.ServiceContainer, *memorySnapshotStore) {
	t.Helper()
	repo, snaps := newTestRepo(t)
	return services.NewServiceContainer(repo, newTestConfig()), snaps
}
