package tracking

import (
	"context"
	"log/slog"

	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
)

// BestEffortUsageTracker persists usage counters through a UsageRepository
// but never lets a failure escape: usage ordering is a display concern and
// must not block or fail the core operation that triggered it.
type BestEffortUsageTracker struct {
	repo   portsrepo.UsageRepository
	logger *slog.Logger
}

// NewBestEffortUsageTracker creates a usage tracker over the given repository.
func NewBestEffortUsageTracker(repo portsrepo.UsageRepository, logger *slog.Logger) *BestEffortUsageTracker {
	return &BestEffortUsageTracker{repo: repo, logger: logger}
}

var _ portssvc.UsageTracker = (*BestEffortUsageTracker)(nil)

func (t *BestEffortUsageTracker) RecordCurrencyUsage(ctx context.Context, currencyCode string) {
	if err := t.repo.IncrementCurrencyUsage(ctx, currencyCode); err != nil {
		t.logger.Warn("failed to record currency usage",
			slog.String("currency_code", currencyCode), slog.String("error", err.Error()))
	}
}

func (t *BestEffortUsageTracker) RecordCategoryUsage(ctx context.Context, categoryID string) {
	if err := t.repo.IncrementCategoryUsage(ctx, categoryID); err != nil {
		t.logger.Warn("failed to record category usage",
			slog.String("category_id", categoryID), slog.String("error", err.Error()))
	}
}
