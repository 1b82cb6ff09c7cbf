package services_test

import (
	"context"
	"testing"

	"github.com/sarnathbank/banking_app/internal/apperrors"
	"github.com/sarnathbank/banking_app/internal/core/domain"
	"github.com/sarnathbank/banking_app/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AdminServiceTestSuite struct {
	suite.Suite
	container *ports.ServiceContainer
	snaps     *memorySnapshotStore
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.container, suite.snaps = newTestContainer(suite.T())
}

func (suite *AdminServiceTestSuite) TestSetActive() {
	ctx := context.Background()
	acc := mustCreateAccount(suite.T(), suite.container.Account, "togglable", domain.Savings, 500)

	blocked, err := suite.container.Admin.SetActive(ctx, acc.AccountNumber, false)
	suite.Require().NoError(err)
	suite.False(blocked.IsActive)

	unblocked, err := suite.container.Admin.SetActive(ctx, acc.AccountNumber, true)
	suite.Require().NoError(err)
	suite.True(unblocked.IsActive)
	suite.Equal(0, unblocked.FailedAttempts)
}

func (suite *AdminServiceTestSuite) TestSetActive_NotFound() {
	_, err := suite.container.Admin.SetActive(context.Background(), "SAR0000000000", false)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AdminServiceTestSuite) TestListAccounts_CreationOrder() {
	ctx := context.Background()
	first := mustCreateAccount(suite.T(), suite.container.Account, "firstlist", domain.Savings, 500)
	second := mustCreateAccount(suite.T(), suite.container.Account, "secondlist", domain.Current, 1000)
	third := mustCreateAccount(suite.T(), suite.container.Account, "thirdlist", domain.Premium, 5000)

	accounts, err := suite.container.Admin.ListAccounts(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 3)
	suite.Equal(first.AccountNumber, accounts[0].AccountNumber)
	suite.Equal(second.AccountNumber, accounts[1].AccountNumber)
	suite.Equal(third.AccountNumber, accounts[2].AccountNumber)
}

func (suite *AdminServiceTestSuite) TestTotals() {
	ctx := context.Background()

	totals, err := suite.container.Admin.Totals(ctx)
	suite.Require().NoError(err)
	suite.Equal(0, totals.AccountCount)
	suite.True(totals.TotalBalance.IsZero())

	mustCreateAccount(suite.T(), suite.container.Account, "totalsone", domain.Savings, 500)
	mustCreateAccount(suite.T(), suite.container.Account, "totalstwo", domain.Current, 1500)

	totals, err = suite.container.Admin.Totals(ctx)
	suite.Require().NoError(err)
	suite.Equal(2, totals.AccountCount)
	suite.True(totals.TotalBalance.Equal(decimal.NewFromInt(2000)))
}

func TestAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
