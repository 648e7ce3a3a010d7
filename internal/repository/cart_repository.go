package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

// CartRepository defines the interface for cart mirror operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	SetItemQuantity(ctx context.Context, userID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID string, productID int64) error
	DeleteCart(ctx context.Context, userID string) error
}

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// SetItemQuantity stores the absolute quantity for a product. A quantity of
// zero removes the item, and a cart document is created on first use.
func (m *mongoCartRepository) SetItemQuantity(ctx context.Context, userID string, productID int64, quantity int) error {
	if quantity <= 0 {
		err := m.RemoveItem(ctx, userID, productID)
		if errors.Is(err, ErrCartNotFound) {
			return nil // nothing to remove
		}
		return err
	}

	now := time.Now()
	filter := bson.M{"user_id": userID}

	var existing domain.Cart
	err := m.collection.FindOne(ctx, filter).Decode(&existing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			cart := &domain.Cart{
				UserID: userID,
				Items: []domain.CartItem{
					{ProductID: productID, Quantity: quantity, AddedAt: now},
				},
				CreatedAt: now,
				UpdatedAt: now,
			}
			if _, err = m.collection.InsertOne(ctx, cart); err != nil {
				return fmt.Errorf("failed to create cart with item: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to check existing cart: %w", err)
	}

	if existing.Quantity(productID) > 0 {
		update := bson.M{
			"$set": bson.M{
				"items.$[elem].quantity": quantity,
				"updated_at":             now,
			},
		}
		arrayFilters := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{
				bson.M{"elem.product_id": productID},
			},
		})

		if _, err = m.collection.UpdateOne(ctx, filter, update, arrayFilters); err != nil {
			return fmt.Errorf("failed to update item quantity: %w", err)
		}
		return nil
	}

	update := bson.M{
		"$push": bson.M{"items": domain.CartItem{ProductID: productID, Quantity: quantity, AddedAt: now}},
		"$set":  bson.M{"updated_at": now},
	}
	if _, err = m.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to add item: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) RemoveItem(ctx context.Context, userID string, productID int64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$pull": bson.M{
			"items": bson.M{"product_id": productID},
		},
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

// DeleteCart drops the whole cart document. A missing cart is not an error:
// clearing after checkout must be idempotent so it can be retried.
func (m *mongoCartRepository) DeleteCart(ctx context.Context, userID string) error {
	filter := bson.M{"user_id": userID}

	if _, err := m.collection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
