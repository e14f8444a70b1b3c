package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart represents a shopping cart keyed by the owning user.
type Cart struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem represents a single movie line in the cart. Title and Price are
// snapshots taken at the time the item was added.
type CartItem struct {
	MovieID  string          `json:"movie_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// LineTotal returns the price of this line (unit price times quantity).
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TotalAmount calculates the total price of all items in the cart.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount returns the total number of units in the cart.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the cart item matching the given movie ID.
// Returns -1 if not found. This provides O(n) search but centralizes the logic
// for easier optimization later.
func (c *Cart) FindItemIndex(movieID string) int {
	for i := range c.Items {
		if c.Items[i].MovieID == movieID {
			return i
		}
	}
	return -1
}
