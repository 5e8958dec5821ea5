package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Mul returns the price of qty units.
func (m Money) Mul(qty int) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(int64(qty))),
		Currency: m.Currency,
	}
}

func (m Money) sameCurrency(other Money) bool {
	return m.Currency.String() == other.Currency.String()
}
