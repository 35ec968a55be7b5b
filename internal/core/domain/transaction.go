package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags the kind of ledger entry.
type TransactionType string

const (
	TypeExpense          TransactionType = "EXPENSE"
	TypeIncome           TransactionType = "INCOME"
	TypeTransfer         TransactionType = "TRANSFER"
	TypeLiabilityPayment TransactionType = "LIABILITY_PAYMENT"
	TypeAdjustment       TransactionType = "ADJUSTMENT"
)

// TransactionStatus is the lifecycle state of a transaction. Only EXECUTED
// transactions affect balances. EXECUTED and CANCELLED are terminal.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusExecuted  TransactionStatus = "EXECUTED"
	StatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is a ledger entry. Amount is always in the transaction's own
// currency and non-negative, except for adjustments which carry their own
// sign. DestinationAmount, when set, is the amount credited on the
// destination side in the destination currency; it is computed once at
// creation from ExchangeRateSnapshot (or supplied by the user, flagged by
// IsCustomRate) and never recomputed afterwards.
type Transaction struct {
	TransactionID        string            `json:"transactionID"`
	Type                 TransactionType   `json:"type"`
	Amount               decimal.Decimal   `json:"amount"`
	CurrencyCode         string            `json:"currencyCode"`
	DestinationAmount    *decimal.Decimal  `json:"destinationAmount,omitempty"`
	ExchangeRateSnapshot *decimal.Decimal  `json:"exchangeRateSnapshot,omitempty"`
	IsCustomRate         bool              `json:"isCustomRate"`
	InterestAmount       *decimal.Decimal  `json:"interestAmount,omitempty"` // liability payments only
	AccountID            string            `json:"accountID"`
	DestinationAccountID *string           `json:"destinationAccountID,omitempty"` // required for transfers
	CategoryID           *string           `json:"categoryID,omitempty"`
	Notes                string            `json:"notes,omitempty"`
	Date                 time.Time         `json:"date"` // effective date; scheduled date pre-execution
	Status               TransactionStatus `json:"status"`

	IsScheduled   bool       `json:"isScheduled"`
	IsAutomatic   bool       `json:"isAutomatic"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`

	// Recurrence linkage: a template has IsRecurring set and carries the
	// rule; an instance carries ParentRecurringTransactionID; a one-off has
	// neither.
	IsRecurring                  bool            `json:"isRecurring"`
	ParentRecurringTransactionID *string         `json:"parentRecurringTransactionID,omitempty"`
	RecurrenceRule               *RecurrenceRule `json:"recurrenceRule,omitempty"`
	RecurrenceEndDate            *time.Time      `json:"recurrenceEndDate,omitempty"`
	AdjustToWorkingDay           bool            `json:"adjustToWorkingDay"`
	IncludeStartDayInCount       bool            `json:"includeStartDayInCount"`

	AuditFields
}

// DeleteScope selects how far a delete operation reaches into a recurring
// series.
type DeleteScope string

const (
	DeleteThisOnly      DeleteScope = "THIS_ONLY"
	DeleteThisAndFuture DeleteScope = "THIS_AND_FUTURE"
	DeleteAll           DeleteScope = "ALL"
	DeleteStopHere      DeleteScope = "STOP_HERE"
)

// IsTemplate reports whether this is the root of a recurring series.
func (t *Transaction) IsTemplate() bool {
	return t.IsRecurring
}

// IsInstance reports whether this was generated from a recurring template.
func (t *Transaction) IsInstance() bool {
	return t.ParentRecurringTransactionID != nil
}

// SeriesTemplateID returns the template id anchoring this transaction's
// series: the transaction's own id for a template, the parent id for an
// instance, and "" for a one-off.
func (t *Transaction) SeriesTemplateID() string {
	if t.IsTemplate() {
		return t.TransactionID
	}
	if t.IsInstance() {
		return *t.ParentRecurringTransactionID
	}
	return ""
}

// EffectiveScheduledDate is the instant series operations order siblings by.
// Falls back to the effective date when no scheduled date was recorded.
func (t *Transaction) EffectiveScheduledDate() time.Time {
	if t.ScheduledDate != nil {
		return *t.ScheduledDate
	}
	return t.Date
}

// AffectedAccountIDs lists the accounts whose balances this transaction can
// influence.
func (t *Transaction) AffectedAccountIDs() []string {
	ids := []string{t.AccountID}
	if t.DestinationAccountID != nil && *t.DestinationAccountID != t.AccountID {
		ids = append(ids, *t.DestinationAccountID)
	}
	return ids
}
