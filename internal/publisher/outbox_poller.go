// Package publisher drains the order outbox into Kafka. Delivery is
// at-least-once: an event is only marked processed after a successful
// write, so consumers must tolerate duplicates.
package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/getbarcodesolutions-star/GBS/internal/domain"
	"github.com/getbarcodesolutions-star/GBS/internal/repository"
	"github.com/segmentio/kafka-go"
)

const orderEventsTopic = "order-events"

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type OutboxPoller struct {
	timeout   time.Duration
	eventTick time.Duration
	batchSize int64
	repo      repository.OutboxRepository
	writer    kafkaWriter
}

func NewOutboxPoller(repo repository.OutboxRepository, brokers ...string) *OutboxPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  orderEventsTopic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &OutboxPoller{
		timeout:   5 * time.Second,
		eventTick: time.Second,
		batchSize: 100,
		repo:      repo,
		writer:    w,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.eventTick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.UnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		slog.Error("failed to fetch outbox events", "error", err)
		return
	}

	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			slog.Error("failed to publish outbox event", "event_id", event.ID, "error", err)
			continue
		}

		if err := p.repo.MarkEventProcessed(ctx, event.ID); err != nil {
			slog.Error("failed to mark outbox event processed", "event_id", event.ID, "error", err)
			continue
		}
	}
}

func (p *OutboxPoller) publish(ctx context.Context, event domain.OutboxEvent) error {
	writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
			{Key: "user-id", Value: []byte(event.UserID)},
		},
	})
}
