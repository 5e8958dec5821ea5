package domain

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxQuantity bounds the quantity of a single cart item.
const MaxQuantity = math.MaxInt32

type Cart struct {
	ID    uuid.UUID
	Items []CartItem
	Total Money

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ProductID int64
	Quantity  int
	Price     Money
}

// NewCart returns a cart holding a single item.
func NewCart(id uuid.UUID, item CartItem) Cart {
	cart := Cart{
		ID:    id,
		Items: []CartItem{item},
	}
	cart.recalculate()

	return cart
}

// Clone returns a copy of the cart that shares no item storage with c.
func (c Cart) Clone() Cart {
	c.Items = slices.Clone(c.Items)
	return c
}

func (c Cart) Item(productID int64) (CartItem, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return CartItem{}, false
	}

	return c.Items[i], true
}

// Merge increments the quantity of the item with the same product ID,
// or appends item if the cart has no such product.
func (c *Cart) Merge(item CartItem) error {
	if len(c.Items) > 0 && !c.Items[0].Price.sameCurrency(item.Price) {
		return fmt.Errorf("cart is priced in %s, item in %s: %w",
			c.Items[0].Price.Currency, item.Price.Currency, ErrCurrencyMismatch)
	}

	if i := c.indexOf(item.ProductID); i >= 0 {
		if item.Quantity > MaxQuantity-c.Items[i].Quantity {
			return fmt.Errorf("quantity of product[%d] would exceed %d: %w",
				item.ProductID, MaxQuantity, ErrInvalidQuantity)
		}
		c.Items[i].Quantity += item.Quantity
	} else {
		c.Items = append(c.Items, item)
	}

	c.recalculate()
	return nil
}

// RemoveItem reports whether an item was removed.
func (c *Cart) RemoveItem(productID int64) bool {
	before := len(c.Items)
	c.Items = slices.DeleteFunc(c.Items, func(it CartItem) bool {
		return it.ProductID == productID
	})

	c.recalculate()
	return len(c.Items) != before
}

// SetQuantity reports whether the product was found in the cart.
func (c *Cart) SetQuantity(productID int64, qty int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}

	c.Items[i].Quantity = qty
	c.recalculate()
	return true
}

func (c Cart) indexOf(productID int64) int {
	return slices.IndexFunc(c.Items, func(it CartItem) bool {
		return it.ProductID == productID
	})
}

func (c *Cart) recalculate() {
	c.Total = CalculateTotal(c.Items)
}

// CalculateTotal sums quantity * price over items. The currency is taken
// from the first item; an empty list totals zero.
func CalculateTotal(items []CartItem) Money {
	total := Money{Amount: decimal.Zero}
	for i, it := range items {
		if i == 0 {
			total.Currency = it.Price.Currency
		}
		total.Amount = total.Amount.Add(it.Price.Mul(it.Quantity).Amount)
	}

	return total
}
