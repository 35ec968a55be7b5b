package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount returns a page of transactions touching the
	// account, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines lifecycle operations for transactions.
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a new transaction. Scheduled
	// transactions whose date is already past are created directly executed.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ConfirmPending moves a pending transaction to executed. Confirming an
	// already-executed or missing transaction is a no-op.
	ConfirmPending(ctx context.Context, transactionID string) error

	// CancelPending moves a pending transaction to cancelled with no balance
	// effect. Cancelling a missing transaction is a no-op.
	CancelPending(ctx context.Context, transactionID string) error

	// GenerateRecurringInstances materializes pending instances of a
	// recurring template up to horizonMonths ahead, bounded by the
	// template's recurrence end date (exclusive). Idempotent.
	GenerateRecurringInstances(ctx context.Context, templateID string, horizonMonths int) ([]domain.Transaction, error)

	// DeleteTransaction removes a transaction with series-aware scope.
	// Deleting an id that is already gone is a no-op.
	DeleteTransaction(ctx context.Context, transactionID string, scope domain.DeleteScope) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
