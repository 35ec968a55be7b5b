package services

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount edits account details. Changing the initial balance
	// triggers a whole-balance recomputation.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account, cascading to its transactions, and
	// recomputes any transfer counterpart accounts.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// BalanceSvcFacade derives account balances from the transaction log.
type BalanceSvcFacade interface {
	// BalanceAsOf folds the account's executed transactions up to the given
	// instant into a signed balance. Pure read.
	BalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// RecomputeBalance derives the balance as of now and persists it as the
	// account's cached figure. Idempotent; safe to re-trigger.
	RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// RecomputeBalances recomputes each listed account exactly once.
	RecomputeBalances(ctx context.Context, accountIDs []string) error
}
