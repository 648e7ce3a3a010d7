package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByUser(ctx context.Context, userID string) ([]domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *mongoOrderRepository) Insert(ctx context.Context, order *domain.Order) error {
	if _, err := m.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (m *mongoOrderRepository) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	filter := bson.M{"user_id": userID}
	return m.find(ctx, filter)
}

func (m *mongoOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return m.find(ctx, bson.M{})
}

// find returns matching orders newest first.
func (m *mongoOrderRepository) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := make([]domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

func (m *mongoOrderRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	var order domain.Order

	filter := bson.M{"idempotency_key": key}
	err := m.collection.FindOne(ctx, filter).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	return &order, nil
}

// UpdateStatus overwrites the status field. Unknown order IDs are reported
// as ErrOrderNotFound instead of succeeding silently.
func (m *mongoOrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	filter := bson.M{"_id": orderID}
	update := bson.M{"$set": bson.M{"status": status}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	return nil
}
