package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/nikolayk812/cart-manager/internal/logger"
	"github.com/nikolayk812/cart-manager/internal/port"
	"golang.org/x/sync/singleflight"
)

// CartManager applies cart operations on top of a cart store, checking
// requested quantities against the catalogue.
//
// Mutating operations on the same cart ID are serialised within the process.
// Writers in other processes sharing the store can still overwrite each
// other's changes.
type CartManager struct {
	carts     port.CartRepository
	catalogue port.Catalogue
	locks     *keyedMutex
	reads     singleflight.Group
	log       logger.Logger
}

func NewCartManager(carts port.CartRepository, catalogue port.Catalogue, log logger.Logger) *CartManager {
	return &CartManager{
		carts:     carts,
		catalogue: catalogue,
		locks:     newKeyedMutex(),
		log:       log,
	}
}

// AddItem puts quantity units of the product into the cart, creating the
// cart if it does not exist yet. If the product is already in the cart its
// quantity is increased.
func (m *CartManager) AddItem(ctx context.Context, cartID uuid.UUID, productID int64, quantity int) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, domain.ErrInvalidCartID
	}
	if quantity <= 0 || quantity > domain.MaxQuantity {
		return domain.Cart{}, fmt.Errorf("quantity[%d]: %w", quantity, domain.ErrInvalidQuantity)
	}

	log := m.log.With("cartID", cartID.String(), "productID", productID)

	unlock := m.locks.Lock(cartID)
	defer unlock()

	product, err := m.catalogue.GetProductByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("catalogue.GetProductByID[%d]: %w", productID, err)
	}

	// the stock check is on the requested amount only,
	// not on what the cart already holds
	if err := product.CheckStock(quantity); err != nil {
		log.Infof("add rejected: requested %d, available %d", quantity, product.Stock)
		return domain.Cart{}, err
	}

	item := product.CartItem(quantity)

	exists, err := m.carts.Exists(ctx, cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Exists: %w", err)
	}

	var cart domain.Cart
	if !exists {
		cart = domain.NewCart(cartID, item)
		log.Debugf("creating cart")
	} else {
		cart, err = m.carts.Find(ctx, cartID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("carts.Find: %w", err)
		}

		if err := cart.Merge(item); err != nil {
			return domain.Cart{}, fmt.Errorf("cart.Merge: %w", err)
		}
	}

	saved, err := m.carts.Save(ctx, cart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Save: %w", err)
	}

	log.Infof("added %d, cart total %s", quantity, saved.Total.Amount)

	return saved, nil
}

// RetrieveCart returns domain.ErrCartNotFound if the cart does not exist.
// Concurrent reads of the same cart share one store lookup.
func (m *CartManager) RetrieveCart(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, domain.ErrInvalidCartID
	}

	// the shared lookup outlives any single caller's cancellation;
	// each caller stops waiting on its own ctx
	ch := m.reads.DoChan(cartID.String(), func() (any, error) {
		return m.carts.Find(context.WithoutCancel(ctx), cartID)
	})

	select {
	case <-ctx.Done():
		return domain.Cart{}, fmt.Errorf("carts.Find: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return domain.Cart{}, fmt.Errorf("carts.Find: %w", res.Err)
		}

		// callers sharing the result must not share item storage
		return res.Val.(domain.Cart).Clone(), nil
	}
}

// ClearCart deletes the cart. Clearing a missing cart succeeds.
func (m *CartManager) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	if cartID == uuid.Nil {
		return domain.ErrInvalidCartID
	}

	unlock := m.locks.Lock(cartID)
	defer unlock()

	if err := m.carts.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("carts.Delete: %w", err)
	}

	m.log.Infof("cart %s cleared", cartID)

	return nil
}

// RemoveItem drops the product from the cart. Removing a product the cart
// does not hold succeeds and leaves the items unchanged.
func (m *CartManager) RemoveItem(ctx context.Context, cartID uuid.UUID, productID int64) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, domain.ErrInvalidCartID
	}

	log := m.log.With("cartID", cartID.String(), "productID", productID)

	unlock := m.locks.Lock(cartID)
	defer unlock()

	cart, err := m.carts.Find(ctx, cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Find: %w", err)
	}

	if !cart.RemoveItem(productID) {
		log.Debugf("remove: product not in cart")
	}

	saved, err := m.carts.Save(ctx, cart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Save: %w", err)
	}

	log.Infof("removed, cart total %s", saved.Total.Amount)

	return saved, nil
}

// UpdateItemQuantity sets the quantity of a product already in the cart.
// Only the increase over the current quantity is checked against stock.
// A product the cart does not hold is ignored.
func (m *CartManager) UpdateItemQuantity(ctx context.Context, cartID uuid.UUID, productID int64, newQuantity int) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, domain.ErrInvalidCartID
	}
	if newQuantity <= 0 || newQuantity > domain.MaxQuantity {
		return domain.Cart{}, fmt.Errorf("quantity[%d]: %w", newQuantity, domain.ErrInvalidQuantity)
	}

	log := m.log.With("cartID", cartID.String(), "productID", productID)

	unlock := m.locks.Lock(cartID)
	defer unlock()

	cart, err := m.carts.Find(ctx, cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Find: %w", err)
	}

	if item, ok := cart.Item(productID); ok {
		delta := newQuantity - item.Quantity

		product, err := m.catalogue.GetProductByID(ctx, productID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("catalogue.GetProductByID[%d]: %w", productID, err)
		}

		if err := product.CheckStock(delta); err != nil {
			log.Infof("update rejected: delta %d, available %d", delta, product.Stock)
			return domain.Cart{}, err
		}

		cart.SetQuantity(productID, newQuantity)
	} else {
		log.Debugf("update: product not in cart")
	}

	saved, err := m.carts.Save(ctx, cart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Save: %w", err)
	}

	log.Infof("quantity set to %d, cart total %s", newQuantity, saved.Total.Amount)

	return saved, nil
}
