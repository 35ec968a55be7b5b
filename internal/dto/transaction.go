package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecurrenceRuleDTO mirrors domain.RecurrenceRule for request binding.
type RecurrenceRuleDTO struct {
	Interval int                   `json:"interval" binding:"required"`
	Unit     domain.RecurrenceUnit `json:"unit" binding:"required,oneof=DAY WEEK MONTH YEAR"`
}

// CreateTransactionRequest defines the data needed to create a transaction.
// Amount must be non-negative for every kind except adjustments, which carry
// their own sign.
type CreateTransactionRequest struct {
	Type                 domain.TransactionType `json:"type" binding:"required,oneof=EXPENSE INCOME TRANSFER LIABILITY_PAYMENT ADJUSTMENT"`
	Amount               decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode         string                 `json:"currencyCode" binding:"required,currencycode"`
	DestinationAmount    *decimal.Decimal       `json:"destinationAmount,omitempty"`
	InterestAmount       *decimal.Decimal       `json:"interestAmount,omitempty"`
	AccountID            string                 `json:"accountID" binding:"required"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	CategoryID           *string                `json:"categoryID,omitempty"`
	Notes                string                 `json:"notes,omitempty"`
	Date                 time.Time              `json:"date" binding:"required"`

	IsScheduled   bool       `json:"isScheduled"`
	IsAutomatic   bool       `json:"isAutomatic"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`

	IsRecurring            bool               `json:"isRecurring"`
	RecurrenceRule         *RecurrenceRuleDTO `json:"recurrenceRule,omitempty"`
	RecurrenceEndDate      *time.Time         `json:"recurrenceEndDate,omitempty"`
	AdjustToWorkingDay     bool               `json:"adjustToWorkingDay"`
	IncludeStartDayInCount bool               `json:"includeStartDayInCount"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                   `json:"transactionID"`
	Type                 domain.TransactionType   `json:"type"`
	Amount               decimal.Decimal          `json:"amount"`
	CurrencyCode         string                   `json:"currencyCode"`
	DestinationAmount    *decimal.Decimal         `json:"destinationAmount,omitempty"`
	ExchangeRateSnapshot *decimal.Decimal         `json:"exchangeRateSnapshot,omitempty"`
	IsCustomRate         bool                     `json:"isCustomRate"`
	InterestAmount       *decimal.Decimal         `json:"interestAmount,omitempty"`
	AccountID            string                   `json:"accountID"`
	DestinationAccountID *string                  `json:"destinationAccountID,omitempty"`
	CategoryID           *string                  `json:"categoryID,omitempty"`
	Notes                string                   `json:"notes,omitempty"`
	Date                 time.Time                `json:"date"`
	Status               domain.TransactionStatus `json:"status"`

	IsScheduled   bool       `json:"isScheduled"`
	IsAutomatic   bool       `json:"isAutomatic"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`

	IsRecurring                  bool                   `json:"isRecurring"`
	ParentRecurringTransactionID *string                `json:"parentRecurringTransactionID,omitempty"`
	RecurrenceRule               *domain.RecurrenceRule `json:"recurrenceRule,omitempty"`
	RecurrenceEndDate            *time.Time             `json:"recurrenceEndDate,omitempty"`
	AdjustToWorkingDay           bool                   `json:"adjustToWorkingDay"`
	IncludeStartDayInCount       bool                   `json:"includeStartDayInCount"`

	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:                txn.TransactionID,
		Type:                         txn.Type,
		Amount:                       txn.Amount,
		CurrencyCode:                 txn.CurrencyCode,
		DestinationAmount:            txn.DestinationAmount,
		ExchangeRateSnapshot:         txn.ExchangeRateSnapshot,
		IsCustomRate:                 txn.IsCustomRate,
		InterestAmount:               txn.InterestAmount,
		AccountID:                    txn.AccountID,
		DestinationAccountID:         txn.DestinationAccountID,
		CategoryID:                   txn.CategoryID,
		Notes:                        txn.Notes,
		Date:                         txn.Date,
		Status:                       txn.Status,
		IsScheduled:                  txn.IsScheduled,
		IsAutomatic:                  txn.IsAutomatic,
		ScheduledDate:                txn.ScheduledDate,
		IsRecurring:                  txn.IsRecurring,
		ParentRecurringTransactionID: txn.ParentRecurringTransactionID,
		RecurrenceRule:               txn.RecurrenceRule,
		RecurrenceEndDate:            txn.RecurrenceEndDate,
		AdjustToWorkingDay:           txn.AdjustToWorkingDay,
		IncludeStartDayInCount:       txn.IncludeStartDayInCount,
		CreatedAt:                    txn.CreatedAt,
		LastUpdatedAt:                txn.LastUpdatedAt,
	}
}

// ListTransactionsResponse is a page of transactions with a continuation token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, NextToken: nextToken}
}
