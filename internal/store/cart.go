package store

import (
	"context"
	"sync"

	"github.com/delphine/shop/internal/domain"
)

const cartKey = "delphine-cart"

// Cart holds the current session's line items plus the drawer visibility
// flag. The flag is presentation state, but adding an item flips it open, so
// the store exposes it as an observable state change.
type Cart struct {
	mu    sync.RWMutex
	state Persister

	items  []domain.CartItem
	isOpen bool
}

func NewCart(state Persister) *Cart { return &Cart{state: state} }

type cartSnapshot struct {
	Items  []domain.CartItem `json:"items"`
	IsOpen bool              `json:"isOpen"`
}

func (c *Cart) Rehydrate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var snap cartSnapshot
	if rehydrate(ctx, c.state, cartKey, &snap) {
		c.items = snap.Items
		c.isOpen = snap.IsOpen
	}
}

func (c *Cart) persist(ctx context.Context) {
	persist(ctx, c.state, cartKey, cartSnapshot{Items: c.items, IsOpen: c.isOpen})
}

// AddItem merges into an existing line with the same variant id, otherwise
// appends, and opens the drawer either way.
func (c *Cart) AddItem(ctx context.Context, item domain.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	merged := false
	for i := range c.items {
		if c.items[i].VariantID == item.VariantID {
			c.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, item)
	}
	c.isOpen = true
	c.persist(ctx)
}

// RemoveItem drops the matching line; absent ids are a no-op.
func (c *Cart) RemoveItem(ctx context.Context, variantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(ctx, variantID)
}

func (c *Cart) removeLocked(ctx context.Context, variantID string) {
	out := c.items[:0]
	for _, it := range c.items {
		if it.VariantID != variantID {
			out = append(out, it)
		}
	}
	c.items = out
	c.persist(ctx)
}

// UpdateQuantity sets the quantity for a line. Anything below 1 behaves as a
// removal. The store enforces no upper bound.
func (c *Cart) UpdateQuantity(ctx context.Context, variantID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity < 1 {
		c.removeLocked(ctx, variantID)
		return
	}
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items[i].Quantity = quantity
			break
		}
	}
	c.persist(ctx)
}

func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist(ctx)
}

func (c *Cart) Open(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = true
	c.persist(ctx)
}

func (c *Cart) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
	c.persist(ctx)
}

func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isOpen
}

// ItemCount is the sum of line quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Subtotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
