package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OutboxRepository interface {
	InsertEvent(ctx context.Context, event *domain.OutboxEvent) error
	UnprocessedEvents(ctx context.Context, limit int64) ([]domain.OutboxEvent, error)
	MarkEventProcessed(ctx context.Context, eventID string) error
}

type mongoOutboxRepository struct {
	collection *mongo.Collection
}

func NewMongoOutboxRepository(db *mongo.Database) OutboxRepository {
	return &mongoOutboxRepository{
		collection: db.Collection("outbox"),
	}
}

func (m *mongoOutboxRepository) InsertEvent(ctx context.Context, event *domain.OutboxEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	if _, err := m.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

// UnprocessedEvents returns pending events oldest first so publish order
// follows creation order.
func (m *mongoOutboxRepository) UnprocessedEvents(ctx context.Context, limit int64) ([]domain.OutboxEvent, error) {
	filter := bson.M{"processed_at": nil}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]domain.OutboxEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode outbox events: %w", err)
	}

	return events, nil
}

func (m *mongoOutboxRepository) MarkEventProcessed(ctx context.Context, eventID string) error {
	now := time.Now()
	filter := bson.M{"_id": eventID}
	update := bson.M{"$set": bson.M{"processed_at": now}}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event processed: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("outbox event %s not found", eventID)
	}

	return nil
}

func (m *mongoOutboxRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "processed_at", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create outbox indexes: %w", err)
	}

	return nil
}
