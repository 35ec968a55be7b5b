package domain_test

import (
	"testing"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTransaction_SeriesLinkage(t *testing.T) {
	template := domain.Transaction{
		TransactionID:  "tpl-1",
		IsRecurring:    true,
		RecurrenceRule: &domain.RecurrenceRule{Interval: 1, Unit: domain.UnitMonth},
	}
	instance := domain.Transaction{
		TransactionID:                "inst-1",
		ParentRecurringTransactionID: strPtr("tpl-1"),
	}
	oneOff := domain.Transaction{TransactionID: "tx-1"}

	assert.True(t, template.IsTemplate())
	assert.False(t, template.IsInstance())
	assert.Equal(t, "tpl-1", template.SeriesTemplateID())

	assert.True(t, instance.IsInstance())
	assert.False(t, instance.IsTemplate())
	assert.Equal(t, "tpl-1", instance.SeriesTemplateID())

	assert.False(t, oneOff.IsTemplate())
	assert.False(t, oneOff.IsInstance())
	assert.Empty(t, oneOff.SeriesTemplateID())
}

func TestTransaction_EffectiveScheduledDate(t *testing.T) {
	effective := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	scheduled := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	withSchedule := domain.Transaction{Date: effective, ScheduledDate: &scheduled}
	assert.Equal(t, scheduled, withSchedule.EffectiveScheduledDate())

	withoutSchedule := domain.Transaction{Date: effective}
	assert.Equal(t, effective, withoutSchedule.EffectiveScheduledDate())
}

func TestTransaction_AffectedAccountIDs(t *testing.T) {
	transfer := domain.Transaction{
		Type:                 domain.TypeTransfer,
		AccountID:            "acc-src",
		DestinationAccountID: strPtr("acc-dst"),
	}
	assert.ElementsMatch(t, []string{"acc-src", "acc-dst"}, transfer.AffectedAccountIDs())

	expense := domain.Transaction{Type: domain.TypeExpense, AccountID: "acc-src"}
	assert.Equal(t, []string{"acc-src"}, expense.AffectedAccountIDs())
}
