package domain

import "time"

// Cart is the server-side mirror of a user's cart. Quantities are always
// integers in [0, MaxItemQuantity]; an item with quantity 0 is removed, not
// stored.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type CartItem struct {
	ProductID int64     `bson:"product_id" json:"product_id"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

const MaxItemQuantity = 100

// ClampQuantity floors q into the allowed [0, MaxItemQuantity] range.
func ClampQuantity(q int) int {
	if q < 0 {
		return 0
	}
	if q > MaxItemQuantity {
		return MaxItemQuantity
	}
	return q
}

// Quantity returns the stored quantity for productID, 0 when absent.
func (c *Cart) Quantity(productID int64) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Quantities flattens the cart into a productID -> quantity map.
func (c *Cart) Quantities() map[int64]int {
	out := make(map[int64]int, len(c.Items))
	for _, item := range c.Items {
		if item.Quantity > 0 {
			out[item.ProductID] = item.Quantity
		}
	}
	return out
}

func (c *Cart) IsEmpty() bool {
	for _, item := range c.Items {
		if item.Quantity > 0 {
			return false
		}
	}
	return true
}
