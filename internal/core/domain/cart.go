package domain

import (
	"errors"
	"time"
)

var ErrCartNotFound = errors.New("cart not found")

// LineItem is a (product reference, quantity) pair. Quantity is always >= 1;
// a cart never holds two line items for the same product.
type LineItem struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

// Cart is the single mutable basket a user owns. It is created lazily on the
// first add and deleted wholesale when converted into an order.
type Cart struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Items     []LineItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// AddItem merges quantity into an existing line for the product or appends a
// new line. Adding a then b for the same product yields one line with a+b.
func (c *Cart) AddItem(productID string, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, LineItem{ProductID: productID, Quantity: quantity})
}

// RemoveItem filters out the line for productID. Removing an absent line is
// a no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
