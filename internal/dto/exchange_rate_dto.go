package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest defines the structure for storing the current
// rate of a directional currency pair.
type UpsertExchangeRateRequest struct {
	FromCurrencyCode string            `json:"fromCurrencyCode" binding:"required,currencycode"`
	ToCurrencyCode   string            `json:"toCurrencyCode" binding:"required,currencycode"`
	Rate             decimal.Decimal   `json:"rate" binding:"required"`
	Source           domain.RateSource `json:"source" binding:"required,oneof=MANUAL FETCHED"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string            `json:"exchangeRateID"`
	FromCurrencyCode string            `json:"fromCurrencyCode"`
	ToCurrencyCode   string            `json:"toCurrencyCode"`
	Rate             decimal.Decimal   `json:"rate"`
	Source           domain.RateSource `json:"source"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		Source:           rate.Source,
		UpdatedAt:        rate.UpdatedAt,
	}
}

// ConvertResponse is the result of a currency conversion.
type ConvertResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Amount           decimal.Decimal `json:"amount"`
	Converted        decimal.Decimal `json:"converted"`
}
