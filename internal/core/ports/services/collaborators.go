package services

import (
	"context"
	"time"
)

// ReminderScheduler is the notification collaborator. Calls are
// fire-and-forget, keyed by transaction id; delivery is someone else's
// problem and failures never surface into core operations.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, transactionID string, fireAt time.Time)
	CancelReminder(ctx context.Context, transactionID string)
}

// UsageTracker is the best-effort usage sink for UI ordering. It must never
// block or fail the core operation that triggered it.
type UsageTracker interface {
	RecordCurrencyUsage(ctx context.Context, currencyCode string)
	RecordCategoryUsage(ctx context.Context, categoryID string)
}
