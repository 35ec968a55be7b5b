package ledger_test

import (
	"testing"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// identity stands in for a store with no rates.
func identity(amount decimal.Decimal, _, _ string) decimal.Decimal { return amount }

func doubling(amount decimal.Decimal, _, _ string) decimal.Decimal {
	return amount.Mul(dec("2"))
}

func TestSourceEffect(t *testing.T) {
	tests := []struct {
		name    string
		txn     domain.Transaction
		convert ledger.ConvertFunc
		want    decimal.Decimal
	}{
		{
			name: "expense subtracts",
			txn:  domain.Transaction{Type: domain.TypeExpense, Amount: dec("100"), CurrencyCode: "EUR"},
			want: dec("-100"),
		},
		{
			name: "income adds",
			txn:  domain.Transaction{Type: domain.TypeIncome, Amount: dec("45.50"), CurrencyCode: "EUR"},
			want: dec("45.50"),
		},
		{
			name: "foreign-currency expense uses snapshotted destination amount",
			txn: domain.Transaction{
				Type: domain.TypeExpense, Amount: dec("100"), CurrencyCode: "USD",
				DestinationAmount: decPtr("91"),
			},
			want: dec("-91"),
		},
		{
			name:    "foreign-currency expense without snapshot converts live",
			txn:     domain.Transaction{Type: domain.TypeExpense, Amount: dec("100"), CurrencyCode: "USD"},
			convert: doubling,
			want:    dec("-200"),
		},
		{
			name: "transfer always debits the own-currency original amount",
			txn: domain.Transaction{
				Type: domain.TypeTransfer, Amount: dec("100"), CurrencyCode: "USD",
				DestinationAmount: decPtr("9999"),
			},
			convert: doubling,
			want:    dec("-100"),
		},
		{
			name: "liability payment subtracts amount plus interest",
			txn: domain.Transaction{
				Type: domain.TypeLiabilityPayment, Amount: dec("200"), CurrencyCode: "EUR",
				InterestAmount: decPtr("12.34"),
			},
			want: dec("-212.34"),
		},
		{
			name: "negative adjustment decreases balance",
			txn:  domain.Transaction{Type: domain.TypeAdjustment, Amount: dec("-7"), CurrencyCode: "EUR"},
			want: dec("-7"),
		},
		{
			name: "positive adjustment increases balance",
			txn:  domain.Transaction{Type: domain.TypeAdjustment, Amount: dec("7"), CurrencyCode: "EUR"},
			want: dec("7"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convert := tt.convert
			if convert == nil {
				convert = identity
			}
			got := ledger.SourceEffect(tt.txn, "EUR", convert)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDestinationEffect(t *testing.T) {
	incoming := domain.Transaction{
		Type: domain.TypeTransfer, Amount: dec("100"), CurrencyCode: "EUR",
		DestinationAmount: decPtr("110"),
	}
	got := ledger.DestinationEffect(incoming, "USD", identity)
	assert.True(t, dec("110").Equal(got), "snapshotted destination amount wins over live rates")

	noSnapshot := domain.Transaction{Type: domain.TypeTransfer, Amount: dec("100"), CurrencyCode: "EUR"}
	got = ledger.DestinationEffect(noSnapshot, "USD", doubling)
	assert.True(t, dec("200").Equal(got))

	sameCurrency := domain.Transaction{Type: domain.TypeTransfer, Amount: dec("100"), CurrencyCode: "USD"}
	got = ledger.DestinationEffect(sameCurrency, "USD", doubling)
	assert.True(t, dec("100").Equal(got))
}
