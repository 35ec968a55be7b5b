package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionRepository implements TransactionRepositoryFacade using pgxpool.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewPgxTransactionRepository creates a new PgxTransactionRepository.
func NewPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	transaction_id, type, amount, currency_code, destination_amount,
	exchange_rate_snapshot, is_custom_rate, interest_amount, account_id,
	destination_account_id, category_id, notes, date, status, is_scheduled,
	is_automatic, scheduled_date, is_recurring, parent_recurring_transaction_id,
	recurrence_interval, recurrence_unit, recurrence_end_date,
	adjust_to_working_day, include_start_day_in_count, created_at, last_updated_at
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var recurrenceInterval *int
	var recurrenceUnit *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.Type,
		&txn.Amount,
		&txn.CurrencyCode,
		&txn.DestinationAmount,
		&txn.ExchangeRateSnapshot,
		&txn.IsCustomRate,
		&txn.InterestAmount,
		&txn.AccountID,
		&txn.DestinationAccountID,
		&txn.CategoryID,
		&txn.Notes,
		&txn.Date,
		&txn.Status,
		&txn.IsScheduled,
		&txn.IsAutomatic,
		&txn.ScheduledDate,
		&txn.IsRecurring,
		&txn.ParentRecurringTransactionID,
		&recurrenceInterval,
		&recurrenceUnit,
		&txn.RecurrenceEndDate,
		&txn.AdjustToWorkingDay,
		&txn.IncludeStartDayInCount,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if recurrenceInterval != nil && recurrenceUnit != nil {
		txn.RecurrenceRule = &domain.RecurrenceRule{
			Interval: *recurrenceInterval,
			Unit:     domain.RecurrenceUnit(*recurrenceUnit),
		}
	}
	return &txn, nil
}

func transactionArgs(txn domain.Transaction) []any {
	var recurrenceInterval *int
	var recurrenceUnit *string
	if txn.RecurrenceRule != nil {
		recurrenceInterval = &txn.RecurrenceRule.Interval
		unit := string(txn.RecurrenceRule.Unit)
		recurrenceUnit = &unit
	}
	return []any{
		txn.TransactionID,
		txn.Type,
		txn.Amount,
		txn.CurrencyCode,
		txn.DestinationAmount,
		txn.ExchangeRateSnapshot,
		txn.IsCustomRate,
		txn.InterestAmount,
		txn.AccountID,
		txn.DestinationAccountID,
		txn.CategoryID,
		txn.Notes,
		txn.Date,
		txn.Status,
		txn.IsScheduled,
		txn.IsAutomatic,
		txn.ScheduledDate,
		txn.IsRecurring,
		txn.ParentRecurringTransactionID,
		recurrenceInterval,
		recurrenceUnit,
		txn.RecurrenceEndDate,
		txn.AdjustToWorkingDay,
		txn.IncludeStartDayInCount,
		txn.CreatedAt,
		txn.LastUpdatedAt,
	}
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
	        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
`

// SaveTransaction persists a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	_, err := r.Pool.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveTransactions persists a batch of transactions atomically.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction batch: %w", err)
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(insertTransactionQuery, transactionArgs(txn)...)
	}
	results := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to save transaction batch: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch: %w", err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction batch: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves a specific transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// ListExecutedByAccount returns executed transactions whose source account is
// accountID with an effective date at or before asOf.
func (r *PgxTransactionRepository) ListExecutedByAccount(ctx context.Context, accountID string, asOf time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1 AND status = $2 AND date <= $3
		ORDER BY date ASC, created_at ASC;
	`
	return r.queryTransactions(ctx, query, accountID, domain.StatusExecuted, asOf)
}

// ListExecutedTransfersToAccount returns executed transfers whose destination
// account is accountID with an effective date at or before asOf.
func (r *PgxTransactionRepository) ListExecutedTransfersToAccount(ctx context.Context, accountID string, asOf time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE destination_account_id = $1 AND type = $2 AND status = $3 AND date <= $4
		ORDER BY date ASC, created_at ASC;
	`
	return r.queryTransactions(ctx, query, accountID, domain.TypeTransfer, domain.StatusExecuted, asOf)
}

// ListInstancesByTemplateID returns every generated instance of a recurring
// template, ordered by scheduled date.
func (r *PgxTransactionRepository) ListInstancesByTemplateID(ctx context.Context, templateID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE parent_recurring_transaction_id = $1
		ORDER BY COALESCE(scheduled_date, date) ASC, created_at ASC;
	`
	return r.queryTransactions(ctx, query, templateID)
}

// ListTransactionsByAccount returns a page of transactions touching the
// account on either side, newest first. The continuation token encodes the
// (date, created_at) sort key of the last row returned.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []any{accountID, limit + 1}
	cursorClause := ""
	if nextToken != nil && *nextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		cursorClause = ` AND (date, created_at) < ($3, $4)`
		args = append(args, date, createdAt)
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (account_id = $1 OR destination_account_id = $1)` + cursorClause + `
		ORDER BY date DESC, created_at DESC
		LIMIT $2;
	`
	txns, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		encoded := pagination.EncodeToken(last.Date, last.CreatedAt)
		token = &encoded
	}
	return txns, token, nil
}

// UpdateTransaction updates an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions SET
			type = $2, amount = $3, currency_code = $4, destination_amount = $5,
			exchange_rate_snapshot = $6, is_custom_rate = $7, interest_amount = $8,
			account_id = $9, destination_account_id = $10, category_id = $11,
			notes = $12, date = $13, status = $14, is_scheduled = $15,
			is_automatic = $16, scheduled_date = $17, is_recurring = $18,
			parent_recurring_transaction_id = $19, recurrence_interval = $20,
			recurrence_unit = $21, recurrence_end_date = $22,
			adjust_to_working_day = $23, include_start_day_in_count = $24,
			created_at = $25, last_updated_at = $26
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionArgs(txn)...)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	return nil
}

// DeleteTransaction removes one transaction. Deleting an id that is already
// gone is not an error.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1;`
	if _, err := r.Pool.Exec(ctx, query, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	return nil
}

// DeleteTransactions removes a batch of transactions atomically.
func (r *PgxTransactionRepository) DeleteTransactions(ctx context.Context, transactionIDs []string) error {
	if len(transactionIDs) == 0 {
		return nil
	}
	query := `DELETE FROM transactions WHERE transaction_id = ANY($1);`
	if _, err := r.Pool.Exec(ctx, query, transactionIDs); err != nil {
		return fmt.Errorf("failed to delete transaction batch: %w", err)
	}
	return nil
}
