package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/shopspring/decimal"
)

// CurrencyReaderSvc defines read operations for currency data.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies, most-used first.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data.
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// CurrencyConverter converts an amount between currencies. Conversion never
// fails: when neither the direct nor the inverse pair is stored the amount
// is returned unconverted, so balances stay computable.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) decimal.Decimal
}

// ExchangeRateReaderSvc defines read operations for exchange rate data.
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the current rate for the ordered pair.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data.
type ExchangeRateWriterSvc interface {
	// UpsertExchangeRate stores the current rate for the ordered pair only;
	// it never auto-populates the inverse.
	UpsertExchangeRate(ctx context.Context, req dto.UpsertExchangeRateRequest) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
	CurrencyConverter
}
