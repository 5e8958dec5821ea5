package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/nikolayk812/cart-manager/internal/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cartsCollection = "carts"

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCart(db *mongo.Database) port.CartRepository {
	return &mongoCartRepository{
		collection: db.Collection(cartsCollection),
	}
}

type mongoCart struct {
	ID            string               `bson:"_id"`
	Items         []mongoCartItem      `bson:"items"`
	TotalAmount   primitive.Decimal128 `bson:"total_amount"`
	TotalCurrency string               `bson:"total_currency"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

type mongoCartItem struct {
	ProductID     int64                `bson:"product_id"`
	Quantity      int                  `bson:"quantity"`
	PriceAmount   primitive.Decimal128 `bson:"price_amount"`
	PriceCurrency string               `bson:"price_currency"`
}

func (r *mongoCartRepository) Exists(ctx context.Context, cartID uuid.UUID) (bool, error) {
	if cartID == uuid.Nil {
		return false, fmt.Errorf("cartID is empty")
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": cartID.String()}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("collection.CountDocuments: %w", err)
	}

	return n > 0, nil
}

func (r *mongoCartRepository) Find(ctx context.Context, cartID uuid.UUID) (domain.Cart, error) {
	if cartID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	var doc mongoCart
	err := r.collection.FindOne(ctx, bson.M{"_id": cartID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		return domain.Cart{}, fmt.Errorf("collection.FindOne: %w", err)
	}

	cart, err := mapMongoCartToDomain(doc)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapMongoCartToDomain: %w", err)
	}

	return cart, nil
}

func (r *mongoCartRepository) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("cartID is empty")
	}

	// mongo keeps millisecond precision
	saved := cart.Clone()
	saved.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}

	doc, err := mapDomainToMongoCart(saved)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapDomainToMongoCart: %w", err)
	}

	_, err = r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("collection.ReplaceOne: %w", err)
	}

	return saved, nil
}

func (r *mongoCartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	if cartID == uuid.Nil {
		return fmt.Errorf("cartID is empty")
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": cartID.String()}); err != nil {
		return fmt.Errorf("collection.DeleteOne: %w", err)
	}

	return nil
}

func mapDomainToMongoCart(cart domain.Cart) (mongoCart, error) {
	total, err := primitive.ParseDecimal128(cart.Total.Amount.String())
	if err != nil {
		return mongoCart{}, fmt.Errorf("primitive.ParseDecimal128[%s]: %w", cart.Total.Amount, err)
	}

	items := make([]mongoCartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		price, err := primitive.ParseDecimal128(item.Price.Amount.String())
		if err != nil {
			return mongoCart{}, fmt.Errorf("primitive.ParseDecimal128[%s]: %w", item.Price.Amount, err)
		}

		items = append(items, mongoCartItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			PriceAmount:   price,
			PriceCurrency: item.Price.Currency.String(),
		})
	}

	return mongoCart{
		ID:            cart.ID.String(),
		Items:         items,
		TotalAmount:   total,
		TotalCurrency: cart.Total.Currency.String(),
		CreatedAt:     cart.CreatedAt,
		UpdatedAt:     cart.UpdatedAt,
	}, nil
}

func mapMongoCartToDomain(doc mongoCart) (domain.Cart, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("uuid.Parse[%s]: %w", doc.ID, err)
	}

	total, err := parseMoney(doc.TotalAmount.String(), doc.TotalCurrency)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("parseMoney: %w", err)
	}

	var items []domain.CartItem
	for _, it := range doc.Items {
		price, err := parseMoney(it.PriceAmount.String(), it.PriceCurrency)
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
