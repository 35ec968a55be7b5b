package notify

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/centsible/centsible_app/internal/core/ports/services"
)

// LogReminderScheduler is a ReminderScheduler that only records intent.
// Actual notification delivery lives outside this service; the core only
// needs a collaborator it can fire-and-forget into.
type LogReminderScheduler struct {
	logger *slog.Logger
}

// NewLogReminderScheduler creates a reminder scheduler that logs schedule
// and cancel calls.
func NewLogReminderScheduler(logger *slog.Logger) *LogReminderScheduler {
	return &LogReminderScheduler{logger: logger}
}

var _ portssvc.ReminderScheduler = (*LogReminderScheduler)(nil)

func (s *LogReminderScheduler) ScheduleReminder(_ context.Context, transactionID string, fireAt time.Time) {
	s.logger.Info("reminder scheduled",
		slog.String("transaction_id", transactionID),
		slog.Time("fire_at", fireAt),
	)
}

func (s *LogReminderScheduler) CancelReminder(_ context.Context, transactionID string) {
	s.logger.Info("reminder cancelled",
		slog.String("transaction_id", transactionID),
	)
}
