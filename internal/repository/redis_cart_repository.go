package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/nikolayk812/cart-manager/internal/port"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCart stores each cart as one JSON document. A zero ttl keeps carts
// until they are deleted.
func NewRedisCart(client *redis.Client, ttl time.Duration) port.CartRepository {
	return &redisCartRepository{
		client: client,
		ttl:    ttl,
	}
}

type redisCart struct {
	ID            string          `json:"cart_id"`
	Items         []redisCartItem `json:"items"`
	TotalAmount   string          `json:"total_amount"`
	TotalCurrency string          `json:"total_currency"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type redisCartItem struct {
	ProductID     int64  `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PriceAmount   string `json:"price_amount"`
	PriceCurrency string `json:"price_currency"`
}

func (r *redisCartRepository) Exists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	if cartID == uuid.Nil {
		return false, fmt.Errorf("cartID is empty")
	}

	n, err := r.client.Exists(ctx, cartKey(cartID)).Result()
	if err != nil {
		return false, fmt.Errorf("client.Exists: %w", err)
	}

	return n > 0, nil
}

func (r *redisCartRepository) Find(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("client.Get: %w", err)
	}

	var doc redisCart
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cart, err := mapRedisCartToDomain(doc)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapRedisCartToDomain: %w", err)
	}

	return cart, nil
}

func (r *redisCartRepository) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	saved := cart.Clone()
	saved.UpdatedAt = time.Now().UTC()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}

	data, err := json.Marshal(mapDomainToRedisCart(saved))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.ID), data, r.ttl).Err(); err != nil {
		return domain.Cart{}, fmt.Errorf("client.Set: %w", err)
	}

	return saved, nil
}

func (r *redisCartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	if cartID == uuid.Nil {
		return fmt.Errorf("cartID is empty")
	}

	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func cartKey(cartID uuid.UUID) string {
	return cartKeyPrefix + cartID.String()
}

func mapDomainToRedisCart(cart domain.Cart) redisCart {
	items := make([]redisCartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, redisCartItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PriceAmount:   item.Price.Amount.String(),
			PriceCurrency: item.Price.Currency.String(),
		})
	}

	return redisCart{
		ID:            cart.ID.String(),
		Items:         items,
		TotalAmount:   cart.Total.Amount.String(),
		TotalCurrency: cart.Total.Currency.String(),
		CreatedAt:     cart.CreatedAt,
		UpdatedAt:     cart.UpdatedAt,
	}
}

func mapRedisCartToDomain(doc redisCart) (domain.Cart, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("uuid.Parse[%s]: %w", doc.ID, err)
	}

	total, err := parseMoney(doc.TotalAmount, doc.TotalCurrency)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("parseMoney: %w", err)
	}

	var items []domain.CartItem
	for _, it := range doc.Items {
		price, err := parseMoney(it.PriceAmount, it.PriceCurrency)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("parseMoney[%d]: %w", it.ProductID, err)
		}

		items = append(items, domain.CartItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     price,
		})
	}

	return domain.Cart{
		ID:        id,
		Items:     items,
		Total:     total,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
