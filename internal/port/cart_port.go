package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/cart-manager/internal/domain"
)

// CartRepository stores whole carts keyed by cart ID.
// Find returns domain.ErrCartNotFound when the cart does not exist.
// Delete of a missing cart is not an error.
type CartRepository interface {
	Exists(ctx context.Context, cartID uuid.UUID) (bool, error)
	Find(ctx context.Context, cartID uuid.UUID) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	Delete(ctx context.Context, cartID uuid.UUID) error
}
