package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH PAYMENT PREPAID_CARD CREDIT_CARD ASSET LIABILITY"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,currencycode"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CreditLimit    *decimal.Decimal   `json:"creditLimit,omitempty"`
}

// UpdateAccountRequest defines the editable fields of an account. Pointer
// fields distinguish "leave unchanged" from an explicit new value.
type UpdateAccountRequest struct {
	Name           *string          `json:"name,omitempty"`
	InitialBalance *decimal.Decimal `json:"initialBalance,omitempty"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	CurrencyCode   string             `json:"currencyCode"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	CreditLimit    *decimal.Decimal   `json:"creditLimit,omitempty"`
	Balance        decimal.Decimal    `json:"balance"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acct *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acct.AccountID,
		Name:           acct.Name,
		AccountType:    acct.AccountType,
		CurrencyCode:   acct.CurrencyCode,
		InitialBalance: acct.InitialBalance,
		CreditLimit:    acct.CreditLimit,
		Balance:        acct.Balance,
		CreatedAt:      acct.CreatedAt,
		LastUpdatedAt:  acct.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// BalanceResponse is the result of an as-of balance derivation.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}
