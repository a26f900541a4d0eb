package cart

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Item is one cart line. Price is a snapshot of the catalog price at
// the time the item was added.
type Item struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
}

// Cart is an in-progress order. Lines are keyed by product: adding a
// product already present increments its quantity instead of appending
// a duplicate line.
type Cart struct {
	items []Item
}

// New returns an empty cart
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the product. An existing line is
// incremented; otherwise a new line with quantity 1 is appended.
func (c *Cart) AddItem(productID uuid.UUID, name string, price int64, image string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Image:     image,
		Quantity:  1,
	})
}

// RemoveItem removes the product's line entirely, whatever its quantity
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line quantity. A quantity below 1 removes the
// line. Updating an absent product is a no-op.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the cart lines in insertion order
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the sum of price * quantity over all lines
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Count returns the total number of units across all lines
func (c *Cart) Count() int {
	var count int
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// MarshalJSON encodes the cart as its item list
func (c *Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.items)
}

// UnmarshalJSON decodes an item list into the cart
func (c *Cart) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	c.items = items
	return nil
}

// Load parses a stored cart payload. Corrupt payloads yield an empty
// cart and the parse error so callers can log and continue.
func Load(data []byte) (*Cart, error) {
	c := New()
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, c); err != nil {
		return New(), err
	}
	return c, nil
}
