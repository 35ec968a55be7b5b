package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUsageRepository implements UsageRepository using pgxpool. Counters feed
// display ordering only, so callers treat failures as non-fatal.
type PgxUsageRepository struct {
	BaseRepository
}

// NewPgxUsageRepository creates a new PgxUsageRepository.
func NewPgxUsageRepository(pool *pgxpool.Pool) *PgxUsageRepository {
	return &PgxUsageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UsageRepository = (*PgxUsageRepository)(nil)

// IncrementCurrencyUsage bumps the use counter for a currency.
func (r *PgxUsageRepository) IncrementCurrencyUsage(ctx context.Context, currencyCode string) error {
	query := `
		INSERT INTO currency_usage (currency_code, use_count, last_used_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (currency_code) DO UPDATE SET
			use_count = currency_usage.use_count + 1,
			last_used_at = EXCLUDED.last_used_at;
	`
	if _, err := r.Pool.Exec(ctx, query, strings.ToUpper(currencyCode), time.Now()); err != nil {
		return fmt.Errorf("failed to increment currency usage for %s: %w", currencyCode, err)
	}
	return nil
}

// IncrementCategoryUsage bumps the use counter for a category.
func (r *PgxUsageRepository) IncrementCategoryUsage(ctx context.Context, categoryID string) error {
	query := `
		INSERT INTO category_usage (category_id, use_count, last_used_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (category_id) DO UPDATE SET
			use_count = category_usage.use_count + 1,
			last_used_at = EXCLUDED.last_used_at;
	`
	if _, err := r.Pool.Exec(ctx, query, categoryID, time.Now()); err != nil {
		return fmt.Errorf("failed to increment category usage for %s: %w", categoryID, err)
	}
	return nil
}
