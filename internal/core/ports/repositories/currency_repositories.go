package repositories

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// CurrencyRepository defines persistence operations for Currencies.
type CurrencyRepository interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies, most-used first. The usage
	// ordering is a display concern only.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateRepository defines persistence operations for ExchangeRates.
type ExchangeRateRepository interface {
	// UpsertExchangeRate stores the current rate for the ordered (from,to)
	// pair, overwriting any previous value. The inverse pair is untouched.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// FindExchangeRate retrieves the current rate for the ordered pair.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
}

// UsageRepository records best-effort usage counters for UI ordering.
type UsageRepository interface {
	IncrementCurrencyUsage(ctx context.Context, currencyCode string) error
	IncrementCategoryUsage(ctx context.Context, categoryID string) error
}
