package domain

// Product is a catalogue entry. Stock is the quantity available for sale.
type Product struct {
	ID    int64
	Stock int
	Price Money
}

// CheckStock fails with *StockUnavailableError when qty exceeds the stock.
func (p Product) CheckStock(qty int) error {
	if p.Stock < qty {
		return &StockUnavailableError{
			ProductID: p.ID,
			Requested: qty,
			Available: p.Stock,
		}
	}

	return nil
}

// CartItem returns the product as a cart line of qty units.
func (p Product) CartItem(qty int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Quantity:  qty,
		Price:     p.Price,
	}
}
