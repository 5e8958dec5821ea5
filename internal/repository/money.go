package repository

import (
	"fmt"

	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// parseMoney builds domain.Money from the string form the stores keep.
func parseMoney(amount, iso string) (domain.Money, error) {
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	parsedCurrency, err := currency.ParseISO(iso)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", iso, err)
	}

	return domain.Money{Amount: parsedAmount, Currency: parsedCurrency}, nil
}
