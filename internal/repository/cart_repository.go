package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cart-manager/internal/db"
	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/nikolayk812/cart-manager/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) Exists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	if cartID == uuid.Nil {
		return false, fmt.Errorf("cartID is empty")
	}

	exists, err := r.q.CartExists(ctx, cartID)
	if err != nil {
		return false, fmt.Errorf("q.CartExists: %w", err)
	}

	return exists, nil
}

func (r *cartRepository) Find(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	dbCart, err := r.q.GetCart(ctx, cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("q.GetCart: %w", err)
	}

	dbItems, err := r.q.GetCartItems(ctx, cartID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCartItems: %w", err)
	}

	items, err := mapGetCartItemsRowsToDomain(dbItems)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartItemsRowsToDomain: %w", err)
	}

	total, err := parseMoney(dbCart.TotalAmount.String(), dbCart.TotalCurrency)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("parseMoney: %w", err)
	}

	return domain.Cart{
		ID:        dbCart.CartID,
		Items:     items,
		Total:     total,
		CreatedAt: dbCart.CreatedAt,
		UpdatedAt: dbCart.UpdatedAt,
	}, nil
}

// Save replaces the cart and all of its items in one transaction.
func (r *cartRepository) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}
	if len(cart.Items) > math.MaxInt32 {
		return domain.Cart{}, fmt.Errorf("cart has too many items[%d]", len(cart.Items))
	}
	for _, item := range cart.Items {
		if item.Quantity < 0 || item.Quantity > math.MaxInt32 {
			return domain.Cart{}, fmt.Errorf("quantity[%d] of product[%d] is out of range", item.Quantity, item.ProductID)
		}
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Cart, error) {
		row, err := q.UpsertCart(ctx, db.UpsertCartParams{
			CartID:        cart.ID,
			TotalAmount:   cart.Total.Amount,
			TotalCurrency: cart.Total.Currency.String(),
		})
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.UpsertCart: %w", err)
		}

		if err := q.DeleteCartItems(ctx, cart.ID); err != nil {
			return domain.Cart{}, fmt.Errorf("q.DeleteCartItems: %w", err)
		}

		for i, item := range cart.Items {
			err := q.AddCartItem(ctx, db.AddCartItemParams{
				CartID:        cart.ID,
				ProductID:     item.ProductID,
				Position:      int32(i),
				Quantity:      int32(item.Quantity),
				PriceAmount:   item.Price.Amount,
				PriceCurrency: item.Price.Currency.String(),
			})
			if err != nil {
				return domain.Cart{}, fmt.Errorf("q.AddCartItem[%d]: %w", item.ProductID, err)
			}
		}

		saved := cart.Clone()
		saved.CreatedAt = row.CreatedAt
		saved.UpdatedAt = row.UpdatedAt

		return saved, nil
	})
}

func (r *cartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	if cartID == uuid.Nil {
		return fmt.Errorf("cartID is empty")
	}

	// items are removed by ON DELETE CASCADE
	if _, err := r.q.DeleteCart(ctx, cartID); err != nil {
		return fmt.Errorf("q.DeleteCart: %w", err)
	}

	return nil
}

func mapGetCartItemsRowToDomain(row db.GetCartItemsRow) (domain.CartItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartItem{
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
	}, nil
}

func mapGetCartItemsRowsToDomain(rows []db.GetCartItemsRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartItemsRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartItemsRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
