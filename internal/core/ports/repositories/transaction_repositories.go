package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
//
// Existence is authoritative here: a transaction the repository cannot find
// is gone, there is no tombstone side-table to consult.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListExecutedByAccount returns executed transactions whose source
	// account is accountID with an effective date at or before asOf.
	ListExecutedByAccount(ctx context.Context, accountID string, asOf time.Time) ([]domain.Transaction, error)

	// ListExecutedTransfersToAccount returns executed transfers whose
	// destination account is accountID with an effective date at or before asOf.
	ListExecutedTransfersToAccount(ctx context.Context, accountID string, asOf time.Time) ([]domain.Transaction, error)

	// ListInstancesByTemplateID returns every generated instance of a
	// recurring template, ordered by scheduled date.
	ListInstancesByTemplateID(ctx context.Context, templateID string) ([]domain.Transaction, error)

	// ListTransactionsByAccount returns a page of transactions touching the
	// account (either side), newest first, with an opaque continuation token.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactions persists a batch of transactions atomically.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction updates an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes one transaction. Deleting an id that is
	// already gone is not an error.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// DeleteTransactions removes a batch of transactions atomically.
	DeleteTransactions(ctx context.Context, transactionIDs []string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
