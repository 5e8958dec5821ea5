package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCartID    = errors.New("cart ID is empty")
	ErrCartNotFound     = errors.New("cart not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrStockUnavailable = errors.New("stock unavailable")
	ErrInvalidQuantity  = errors.New("quantity is out of range")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// StockUnavailableError reports a stock check failure together with the
// quantity the catalogue had available at the time of the check.
type StockUnavailableError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *StockUnavailableError) Error() string {
	return fmt.Sprintf("available stock for this product is %d, please reduce quantity", e.Available)
}

func (e *StockUnavailableError) Is(target error) bool {
	return target == ErrStockUnavailable
}
