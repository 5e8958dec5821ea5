package http

import (
	"time"

	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/shopspring/decimal"
)

type addItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	CartID      string          `json:"cart_id"`
	Items       []itemResponse  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type itemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Available *int   `json:"available,omitempty"`
}

func mapDomainToCartResponse(cart domain.Cart) cartResponse {
	items := make([]itemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, itemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.Amount,
			Currency:  it.Price.Currency.String(),
			Subtotal:  it.Price.Mul(it.Quantity).Amount,
		})
	}

	resp := cartResponse{
		CartID:      cart.ID.String(),
		Items:       items,
		TotalAmount: cart.Total.Amount,
		CreatedAt:   cart.CreatedAt,
		UpdatedAt:   cart.UpdatedAt,
	}
	// an empty cart has no currency
	if len(cart.Items) > 0 {
		resp.Currency = cart.Total.Currency.String()
	}

	return resp
}
