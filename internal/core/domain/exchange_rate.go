package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSource indicates where an exchange rate value came from.
type RateSource string

const (
	RateSourceManual  RateSource = "MANUAL"
	RateSourceFetched RateSource = "FETCHED"
)

// ExchangeRate stores the current conversion rate between two currencies.
// The pair is directional: Rate converts 1 unit of From into To. No inverse
// is implied; callers needing the opposite direction store or request it
// explicitly. There is at most one current rate per ordered pair; updates
// overwrite, they do not version. Historical transactions are protected by
// the snapshot rate captured at creation time, not by rate history.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	AuditFields
}
