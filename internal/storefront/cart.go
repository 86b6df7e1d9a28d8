// Package storefront holds the shopper-side state: the current catalog, the
// cart and the checkout form, plus a client for the order gateway.
package storefront

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/decalcomanie/colorstore/internal/domain"
)

// Cart keeps selected items in insertion order. Ids are unique.
type Cart struct {
	mu    sync.RWMutex
	items []domain.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add appends item unless an item with the same id is already in the cart.
// It reports whether the cart changed.
func (c *Cart) Add(item domain.CartItem) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(item.ID) >= 0 {
		return false
	}
	c.items = append(c.items, item)
	return true
}

// Remove drops the item with id and reports whether it was present
func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Cart) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// Items returns a copy of the cart contents
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Total is the display total with two decimals. Unparseable prices count as zero;
// the gateway rejects them at checkout.
func (c *Cart) Total() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := decimal.Zero
	for _, it := range c.items {
		if p, err := decimal.NewFromString(it.Price); err == nil {
			total = total.Add(p)
		}
	}
	return total.StringFixed(2)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *Cart) indexOf(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
