package port

import (
	"context"

	"github.com/nikolayk812/cart-manager/internal/domain"
)

// Catalogue returns domain.ErrProductNotFound for unknown products.
type Catalogue interface {
	GetProductByID(ctx context.Context, productID int64) (domain.Product, error)
}
