package domain

import "time"

const EventOrderPlaced = "order.placed"

// OutboxEvent is a pending integration event. Events are written alongside
// the order and published to Kafka by a background poller, so downstream
// consumers see every placed order at least once even if the process dies
// between order creation and cart clearing.
type OutboxEvent struct {
	ID          string     `bson:"_id"`
	OrderID     string     `bson:"order_id"`
	UserID      string     `bson:"user_id"`
	Type        string     `bson:"type"`
	Payload     []byte     `bson:"payload"`
	CreatedAt   time.Time  `bson:"created_at"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty"`
}
