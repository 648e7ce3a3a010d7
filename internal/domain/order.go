package domain

import "time"

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "Order Placed"
	OrderStatusPacked         OrderStatus = "Packed"
	OrderStatusShipped        OrderStatus = "Shipped"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

// IsValid reports whether s is one of the known statuses. Transitions are
// deliberately unconstrained: an admin may move an order to any known
// status, including backwards.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPacked, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a frozen copy of a product at order time. Catalog changes
// after placement must not affect existing orders.
type OrderItem struct {
	ProductID   int64   `bson:"product_id" json:"product_id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	ImageURL    string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Quantity    int     `bson:"quantity" json:"quantity"`
}

type Address struct {
	FirstName string `bson:"first_name" json:"firstName" validate:"required"`
	LastName  string `bson:"last_name" json:"lastName" validate:"required"`
	Email     string `bson:"email" json:"email" validate:"required,email"`
	Street    string `bson:"street" json:"street" validate:"required"`
	City      string `bson:"city" json:"city" validate:"required"`
	Zip       string `bson:"zip" json:"zip" validate:"required"`
	Company   string `bson:"company,omitempty" json:"company,omitempty"`
	Phone     string `bson:"phone" json:"phone" validate:"required"`
	GST       string `bson:"gst,omitempty" json:"gst,omitempty"`
}

type Order struct {
	ID             string      `bson:"_id" json:"id"`
	UserID         string      `bson:"user_id" json:"user_id"`
	Items          []OrderItem `bson:"items" json:"items"`
	Address        Address     `bson:"address" json:"address"`
	Amount         float64     `bson:"amount" json:"amount"`
	PaymentMethod  string      `bson:"payment_method" json:"payment_method"`
	Payment        bool        `bson:"payment" json:"payment"`
	Status         OrderStatus `bson:"status" json:"status"`
	IdempotencyKey string      `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt      time.Time   `bson:"created_at" json:"created_at"`
}
