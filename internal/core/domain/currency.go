package domain

// Currency represents a supported currency. Immutable reference data keyed
// by its ISO-4217 style code.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	DisplayName  string `json:"displayName"`  // e.g., "US Dollar"
	AuditFields
}
