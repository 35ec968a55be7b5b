package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a financial account.
type AccountType string

const (
	AccountCash        AccountType = "CASH"
	AccountPayment     AccountType = "PAYMENT"
	AccountPrepaidCard AccountType = "PREPAID_CARD"
	AccountCreditCard  AccountType = "CREDIT_CARD"
	AccountAsset       AccountType = "ASSET"
	AccountLiability   AccountType = "LIABILITY"
)

// Account represents a financial account whose balance is derived from its
// transaction log. InitialBalance is the fixed starting point: transaction
// processing never mutates it, only an explicit user edit does (which
// triggers a whole recomputation, never an incremental adjustment).
type Account struct {
	AccountID      string           `json:"accountID"`
	Name           string           `json:"name"`
	AccountType    AccountType      `json:"accountType"`
	CurrencyCode   string           `json:"currencyCode"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"` // credit card accounts only
	AuditFields

	// Balance is a cached figure written only by whole recomputation from the
	// transaction log. The log stays the single source of truth.
	Balance decimal.Decimal `json:"balance"`
}

// CreatedBefore reports whether the account existed at the given instant.
// Balances asked for an instant before creation are zero by definition.
func (a *Account) CreatedBefore(instant time.Time) bool {
	return !a.CreatedAt.After(instant)
}
