// Package collection implements the line-item collection engine behind
// the shopper's cart, wishlist and compare list. One engine, three
// configurations: the cart carries quantities, wishlist and compare
// are presence-only, and compare is bounded to a small capacity.
package collection

import (
	"errors"

	"tabreed-backend/internal/domain"
)

// ErrCapacityExceeded is returned by Add when the collection is full.
// It is the only domain-level failure: every other operation treats
// "not found" as a no-op so stale UI actions cannot error.
var ErrCapacityExceeded = errors.New("collection is full")

// Config parameterizes a Collection.
type Config struct {
	// Capacity is the maximum number of distinct entries; 0 means
	// unbounded.
	Capacity int
	// QuantityBearing enables per-entry quantities. When false,
	// quantity is fixed at 1, Add is idempotent and UpdateQuantity
	// only acts as removal (qty <= 0).
	QuantityBearing bool
}

// Cart, Wishlist and Compare are the three storefront configurations.
var (
	Cart     = Config{QuantityBearing: true}
	Wishlist = Config{}
	Compare  = Config{Capacity: 4}
)

// LineItem pairs a product snapshot with a quantity. The snapshot is
// frozen at add time; catalog changes are not retroactive.
type LineItem struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Collection is an ordered set of line items, unique by product id.
// It is a pure in-memory mutation engine; persistence and listener
// broadcast live in Store.
type Collection struct {
	cfg   Config
	items []LineItem
}

func New(cfg Config) *Collection {
	return &Collection{cfg: cfg}
}

// Add inserts the product or merges into an existing entry. For a
// quantity-bearing collection an existing entry's quantity grows by
// qty; otherwise adding a present item is a no-op. qty values below 1
// are treated as 1. Insertion order is preserved for display
// stability. A full collection rejects with ErrCapacityExceeded and
// mutates nothing.
func (c *Collection) Add(p domain.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			if c.cfg.QuantityBearing {
				c.items[i].Quantity += qty
			}
			return nil
		}
	}
	if c.cfg.Capacity > 0 && len(c.items) >= c.cfg.Capacity {
		return ErrCapacityExceeded
	}
	if !c.cfg.QuantityBearing {
		qty = 1
	}
	c.items = append(c.items, LineItem{Product: p, Quantity: qty})
	return nil
}

// Remove deletes the entry for productID. Absent ids are a silent
// no-op. It reports whether an entry was removed.
func (c *Collection) Remove(productID string) bool {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity sets the quantity for productID. A quantity of zero
// or less removes the entry. Absent ids are a silent no-op. It
// reports whether the collection changed.
func (c *Collection) UpdateQuantity(productID string, qty int) bool {
	if qty <= 0 {
		return c.Remove(productID)
	}
	if !c.cfg.QuantityBearing {
		return false
	}
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			changed := c.items[i].Quantity != qty
			c.items[i].Quantity = qty
			return changed
		}
	}
	return false
}

// Clear empties the collection unconditionally.
func (c *Collection) Clear() {
	c.items = nil
}

// Quantity returns the quantity held for productID, 0 when absent.
func (c *Collection) Quantity(productID string) int {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return c.items[i].Quantity
		}
	}
	return 0
}

func (c *Collection) Contains(productID string) bool {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of distinct entries.
func (c *Collection) Count() int {
	return len(c.items)
}

// TotalQuantity sums the quantities of all entries.
func (c *Collection) TotalQuantity() int {
	total := 0
	for i := range c.items {
		total += c.items[i].Quantity
	}
	return total
}

// TotalPrice recomputes the sum of quantity * unit price on every
// call; it is never cached. Price-on-request items (price 0)
// contribute nothing.
func (c *Collection) TotalPrice() float64 {
	var total float64
	for i := range c.items {
		total += float64(c.items[i].Quantity) * c.items[i].Product.Price
	}
	return total
}

// Items returns a copy of the entries in insertion order.
func (c *Collection) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Restore replaces the contents from persisted state, re-applying the
// invariants: duplicates collapse into the first entry, quantities
// below 1 are clamped (or fixed at 1 for presence-only collections),
// and entries beyond capacity are dropped. Tolerating rule-breaking
// input here means a slot written by an older build still hydrates.
func (c *Collection) Restore(items []LineItem) {
	c.items = nil
	for _, it := range items {
		if it.Product.ID == "" {
			continue
		}
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if err := c.Add(it.Product, it.Quantity); err != nil {
			break // at capacity; drop the rest
		}
	}
}
