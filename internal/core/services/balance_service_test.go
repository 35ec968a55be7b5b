package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
	"github.com/centsible/centsible_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type BalanceServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockConverter   *MockCurrencyConverter
	service         portssvc.BalanceSvcFacade

	accountID string
	createdAt time.Time
	account   *domain.Account
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockConverter = new(MockCurrencyConverter)
	suite.service = services.NewBalanceService(suite.mockAccountRepo, suite.mockTxnRepo, suite.mockConverter)

	suite.accountID = "acc-1"
	suite.createdAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.account = &domain.Account{
		AccountID:      suite.accountID,
		Name:           "Checking",
		AccountType:    domain.AccountCash,
		CurrencyCode:   "USD",
		InitialBalance: decimal.NewFromInt(500),
		AuditFields: domain.AuditFields{
			CreatedAt:     suite.createdAt,
			LastUpdatedAt: suite.createdAt,
		},
	}
}

func (suite *BalanceServiceTestSuite) expectTransactions(asOf time.Time, outgoing, incoming []domain.Transaction) {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ListExecutedByAccount", mock.Anything, suite.accountID, asOf).Return(outgoing, nil).Once()
	suite.mockTxnRepo.On("ListExecutedTransfersToAccount", mock.Anything, suite.accountID, asOf).Return(incoming, nil).Once()
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_BeforeCreationIsZero() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(-time.Hour)

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID).Return(suite.account, nil).Once()

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListExecutedByAccount")
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_NoTransactionsIsInitialBalance() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(24 * time.Hour)

	suite.expectTransactions(asOf, []domain.Transaction{}, []domain.Transaction{})

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(suite.account.InitialBalance))
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_ExpenseIncomeRoundTrip() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(48 * time.Hour)
	amount := decimal.NewFromInt(75)

	outgoing := []domain.Transaction{
		{Type: domain.TypeExpense, Amount: amount, CurrencyCode: "USD", AccountID: suite.accountID, Status: domain.StatusExecuted},
		{Type: domain.TypeIncome, Amount: amount, CurrencyCode: "USD", AccountID: suite.accountID, Status: domain.StatusExecuted},
	}
	suite.expectTransactions(asOf, outgoing, []domain.Transaction{})

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(suite.account.InitialBalance), "expense and income of equal amounts must cancel")
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_AdjustmentsCarryTheirSign() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(48 * time.Hour)

	outgoing := []domain.Transaction{
		{Type: domain.TypeAdjustment, Amount: decimal.NewFromInt(-30), CurrencyCode: "USD", AccountID: suite.accountID, Status: domain.StatusExecuted},
		{Type: domain.TypeAdjustment, Amount: decimal.NewFromInt(10), CurrencyCode: "USD", AccountID: suite.accountID, Status: domain.StatusExecuted},
	}
	suite.expectTransactions(asOf, outgoing, []domain.Transaction{})

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(480)), "expected 480, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_IncomingTransferUsesSnapshotAmount() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(48 * time.Hour)
	destAmount := decimal.NewFromInt(110)

	// 100 EUR sent, 110 USD snapshotted at creation. The current rate must
	// not matter, so the converter expects no calls.
	incoming := []domain.Transaction{
		{
			Type:              domain.TypeTransfer,
			Amount:            decimal.NewFromInt(100),
			CurrencyCode:      "EUR",
			DestinationAmount: &destAmount,
			AccountID:         "acc-2",
			Status:            domain.StatusExecuted,
		},
	}
	suite.expectTransactions(asOf, []domain.Transaction{}, incoming)

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(610)), "expected 610, got %s", balance)
	suite.mockConverter.AssertNotCalled(suite.T(), "Convert")
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_OutgoingTransferDebitsOwnCurrencyAmount() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(48 * time.Hour)
	destAmount := decimal.NewFromInt(110)

	outgoing := []domain.Transaction{
		{
			Type:              domain.TypeTransfer,
			Amount:            decimal.NewFromInt(100),
			CurrencyCode:      "USD",
			DestinationAmount: &destAmount,
			AccountID:         suite.accountID,
			Status:            domain.StatusExecuted,
		},
	}
	suite.expectTransactions(asOf, outgoing, []domain.Transaction{})

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(400)), "source side must drop the original amount, not the snapshot")
}

func (suite *BalanceServiceTestSuite) TestBalanceAsOf_LiabilityPaymentIncludesInterest() {
	ctx := context.Background()
	asOf := suite.createdAt.Add(48 * time.Hour)
	interest := decimal.NewFromInt(5)

	outgoing := []domain.Transaction{
		{
			Type:           domain.TypeLiabilityPayment,
			Amount:         decimal.NewFromInt(95),
			CurrencyCode:   "USD",
			InterestAmount: &interest,
			AccountID:      suite.accountID,
			Status:         domain.StatusExecuted,
		},
	}
	suite.expectTransactions(asOf, outgoing, []domain.Transaction{})

	balance, err := suite.service.BalanceAsOf(ctx, suite.accountID, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(400)), "expected 400, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestRecomputeBalance_PersistsDerivedFigure() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ListExecutedByAccount", mock.Anything, suite.accountID, mock.AnythingOfType("time.Time")).Return([]domain.Transaction{}, nil).Once()
	suite.mockTxnRepo.On("ListExecutedTransfersToAccount", mock.Anything, suite.accountID, mock.AnythingOfType("time.Time")).Return([]domain.Transaction{}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", mock.Anything, suite.accountID, suite.account.InitialBalance, mock.AnythingOfType("time.Time")).Return(nil).Once()

	balance, err := suite.service.RecomputeBalance(ctx, suite.accountID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(suite.account.InitialBalance))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestRecomputeBalances_DeduplicatesAndSkipsDeleted() {
	ctx := context.Background()

	// One batch load resolves which of the requested ids still exist; the
	// account deleted under a cascade is simply absent from the result.
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, []string{suite.accountID, "acc-gone"}).
		Return(map[string]domain.Account{suite.accountID: *suite.account}, nil).Once()

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, suite.accountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("ListExecutedByAccount", mock.Anything, suite.accountID, mock.AnythingOfType("time.Time")).Return([]domain.Transaction{}, nil).Once()
	suite.mockTxnRepo.On("ListExecutedTransfersToAccount", mock.Anything, suite.accountID, mock.AnythingOfType("time.Time")).Return([]domain.Transaction{}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccountBalance", mock.Anything, suite.accountID, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.RecomputeBalances(ctx, []string{suite.accountID, "acc-gone", suite.accountID})

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertNumberOfCalls(suite.T(), "UpdateAccountBalance", 1)
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
