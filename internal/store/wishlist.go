package store

import (
	"context"
	"sync"
)

const wishlistKey = "delphine-wishlist"

// Wishlist is an ordered set of product ids. Adds are idempotent: a re-add
// neither duplicates nor reorders.
type Wishlist struct {
	mu    sync.RWMutex
	state Persister

	items []string
}

func NewWishlist(state Persister) *Wishlist { return &Wishlist{state: state} }

func (w *Wishlist) Rehydrate(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var items []string
	if rehydrate(ctx, w.state, wishlistKey, &items) {
		w.items = items
	}
}

func (w *Wishlist) persist(ctx context.Context) {
	persist(ctx, w.state, wishlistKey, w.items)
}

func (w *Wishlist) Add(ctx context.Context, productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.items {
		if id == productID {
			return
		}
	}
	w.items = append(w.items, productID)
	w.persist(ctx)
}

func (w *Wishlist) Remove(ctx context.Context, productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.items[:0]
	for _, id := range w.items {
		if id != productID {
			out = append(out, id)
		}
	}
	w.items = out
	w.persist(ctx)
}

// Toggle adds the id when absent and removes it when present; it reports
// whether the id is in the wishlist afterwards.
func (w *Wishlist) Toggle(ctx context.Context, productID string) bool {
	if w.Contains(productID) {
		w.Remove(ctx, productID)
		return false
	}
	w.Add(ctx, productID)
	return true
}

func (w *Wishlist) Contains(productID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, id := range w.items {
		if id == productID {
			return true
		}
	}
	return false
}

func (w *Wishlist) Clear(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = nil
	w.persist(ctx)
}

func (w *Wishlist) Items() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.items))
	copy(out, w.items)
	return out
}

func (w *Wishlist) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.items)
}
