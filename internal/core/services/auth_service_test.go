package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/sarnathbank/banking_app/internal/utils"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	container *ports.ServiceContainer
	snaps     *memorySnapshotStore
	account   *domain.Account
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.container, suite.snaps = newTestContainer(suite.T())
	suite.account = mustCreateAccount(suite.T(), suite.container.Account, "loginuser", domain.Savings, 500)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	session, err := suite.container.Auth.Login(context.Background(), "loginuser", "opensesame")
	suite.Require().NoError(err)
	suite.NotEmpty(session.Token)
	suite.Equal(domain.RoleUser, session.Role)
	suite.Require().NotNil(session.Account)
	suite.Equal(suite.account.AccountNumber, session.Account.AccountNumber)

	claims, err := utils.ParseSessionToken(session.Token, newTestConfig().JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(suite.account.AccountNumber, claims.Subject)
	suite.Equal(string(domain.RoleUser), claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	_, err := suite.container.Auth.Login(context.Background(), "nobodyhere", "opensesame")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AuthServiceTestSuite) TestLogin_ThreeStrikesBlocks() {
	ctx := context.Background()

	// First two failures report how many attempts remain.
	_, err := suite.container.Auth.Login(ctx, "loginuser", "wrong")
	var credErr *apperrors.InvalidCredentialError
	suite.Require().ErrorAs(err, &credErr)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal(2, credErr.AttemptsRemaining)
	suite.False(credErr.NewlyBlocked)

	_, err = suite.container.Auth.Login(ctx, "loginuser", "wrong")
	suite.Require().ErrorAs(err, &credErr)
	suite.Equal(1, credErr.AttemptsRemaining)

	// The third failure blocks the account.
	_, err = suite.container.Auth.Login(ctx, "loginuser", "wrong")
	suite.Require().ErrorAs(err, &credErr)
	suite.True(credErr.NewlyBlocked)

	got, err := suite.container.Account.GetAccount(ctx, suite.account.AccountNumber)
	suite.Require().NoError(err)
	suite.False(got.IsActive)
	suite.Equal(3, got.FailedAttempts)

	// Even the correct secret is refused while blocked.
	_, err = suite.container.Auth.Login(ctx, "loginuser", "opensesame")
	suite.ErrorIs(err, apperrors.ErrAccountBlocked)
	suite.False(errors.As(err, &credErr))
}

func (suite *AuthServiceTestSuite) TestLogin_UnblockResetsCounter() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := suite.container.Auth.Login(ctx, "loginuser", "wrong")
		suite.Error(err)
	}

	unblocked, err := suite.container.Admin.SetActive(ctx, suite.account.AccountNumber, true)
	suite.Require().NoError(err)
	suite.True(unblocked.IsActive)
	suite.Equal(0, unblocked.FailedAttempts)

	session, err := suite.container.Auth.Login(ctx, "loginuser", "opensesame")
	suite.Require().NoError(err)
	suite.NotEmpty(session.Token)
}

func (suite *AuthServiceTestSuite) TestLogin_SuccessResetsCounter() {
	ctx := context.Background()
	_, err := suite.container.Auth.Login(ctx, "loginuser", "wrong")
	suite.Error(err)
	_, err = suite.container.Auth.Login(ctx, "loginuser", "wrong")
	suite.Error(err)

	session, err := suite.container.Auth.Login(ctx, "loginuser", "opensesame")
	suite.Require().NoError(err)
	suite.Equal(0, session.Account.FailedAttempts)

	// The counter restarted: two more failures do not block.
	_, err = suite.container.Auth.Login(ctx, "loginuser", "wrong")
	suite.Error(err)
	_, err = suite.container.Auth.Login(ctx, "loginuser", "wrong")
	var credErr *apperrors.InvalidCredentialError
	suite.Require().ErrorAs(err, &credErr)
	suite.Equal(1, credErr.AttemptsRemaining)
	suite.False(credErr.NewlyBlocked)
}

func (suite *AuthServiceTestSuite) TestLogin_ConcurrentFailedAttempts() {
	ctx := context.Background()
	const attempts = 10

	// All attempts race against one account. The counter is only ever
	// touched inside the table's critical section, so exactly three of them
	// record a credential failure and the rest see the blocked account.
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.container.Auth.Login(ctx, "loginuser", "wrong")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var credFailures, newlyBlocked, blockedRejections int
	for err := range errs {
		var credErr *apperrors.InvalidCredentialError
		switch {
		case errors.As(err, &credErr):
			credFailures++
			if credErr.NewlyBlocked {
				newlyBlocked++
			}
		case errors.Is(err, apperrors.ErrAccountBlocked):
			blockedRejections++
		default:
			suite.Failf("unexpected login error", "%v", err)
		}
	}
	suite.Equal(3, credFailures)
	suite.Equal(1, newlyBlocked)
	suite.Equal(attempts-3, blockedRejections)

	got, err := suite.container.Account.GetAccount(ctx, suite.account.AccountNumber)
	suite.Require().NoError(err)
	suite.False(got.IsActive)
	suite.Equal(3, got.FailedAttempts)
}

func (suite *AuthServiceTestSuite) TestLogin_FailedAttemptIsPersisted() {
	before := suite.snaps.saves
	_, err := suite.container.Auth.Login(context.Background(), "loginuser", "wrong")
	suite.Error(err)
	suite.Equal(before+1, suite.snaps.saves)
}

func (suite *AuthServiceTestSuite) TestEnsureAdministratorAndAdminLogin() {
	ctx := context.Background()

	suite.Require().NoError(suite.container.Auth.EnsureAdministrator(ctx))
	// Idempotent: a second call keeps the stored record.
	suite.Require().NoError(suite.container.Auth.EnsureAdministrator(ctx))

	session, err := suite.container.Auth.AdminLogin(ctx, "admin", "admin-secret")
	suite.Require().NoError(err)
	suite.NotEmpty(session.Token)
	suite.Equal(domain.RoleAdmin, session.Role)
	suite.Nil(session.Account)

	claims, err := utils.ParseSessionToken(session.Token, newTestConfig().JWTSecret)
	suite.Require().NoError(err)
	suite.Equal("admin", claims.Subject)
	suite.Equal(string(domain.RoleAdmin), claims.Role)
}

func (suite *AuthServiceTestSuite) TestAdminLogin_FailuresCollapse() {
	ctx := context.Background()

	// Before bootstrap there is no administrator to match.
	_, err := suite.container.Auth.AdminLogin(ctx, "admin", "admin-secret")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	suite.Require().NoError(suite.container.Auth.EnsureAdministrator(ctx))

	_, err = suite.container.Auth.AdminLogin(ctx, "admin", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = suite.container.Auth.AdminLogin(ctx, "notadmin", "admin-secret")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
