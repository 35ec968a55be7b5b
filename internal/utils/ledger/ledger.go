package ledger

import (
	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertFunc converts an amount between currencies. Implementations never
// fail; an unknown pair degrades to identity so balances stay computable.
type ConvertFunc func(amount decimal.Decimal, fromCode, toCode string) decimal.Decimal

// effectiveAmount resolves the amount a non-transfer transaction applies to
// its source account: the stored destination amount when one was snapshotted
// at creation, otherwise the amount converted into the account's currency.
func effectiveAmount(txn domain.Transaction, accountCurrency string, convert ConvertFunc) decimal.Decimal {
	if txn.DestinationAmount != nil {
		return *txn.DestinationAmount
	}
	if txn.CurrencyCode != accountCurrency {
		return convert(txn.Amount, txn.CurrencyCode, accountCurrency)
	}
	return txn.Amount
}

// SourceEffect returns the signed balance effect of a transaction on its
// source account, in the account's currency.
//
// Transfers are exempt from destination-amount substitution: the source side
// is always debited its own-currency original amount.
func SourceEffect(txn domain.Transaction, accountCurrency string, convert ConvertFunc) decimal.Decimal {
	switch txn.Type {
	case domain.TypeExpense:
		return effectiveAmount(txn, accountCurrency, convert).Neg()
	case domain.TypeIncome:
		return effectiveAmount(txn, accountCurrency, convert)
	case domain.TypeTransfer:
		return txn.Amount.Neg()
	case domain.TypeLiabilityPayment:
		effect := effectiveAmount(txn, accountCurrency, convert)
		if txn.InterestAmount != nil {
			effect = effect.Add(*txn.InterestAmount)
		}
		return effect.Neg()
	case domain.TypeAdjustment:
		// Adjustments carry their own sign.
		return txn.Amount
	}
	return decimal.Zero
}

// DestinationEffect returns the balance effect of an incoming transfer on
// its destination account: the snapshotted destination amount when present,
// otherwise the source amount converted into the account's currency.
func DestinationEffect(txn domain.Transaction, accountCurrency string, convert ConvertFunc) decimal.Decimal {
	if txn.DestinationAmount != nil {
		return *txn.DestinationAmount
	}
	if txn.CurrencyCode != accountCurrency {
		return convert(txn.Amount, txn.CurrencyCode, accountCurrency)
	}
	return txn.Amount
}
