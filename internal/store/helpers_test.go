package store_test

import (
	"context"
	"sync"

	"github.com/delphine/shop/internal/domain"
)

// memState is an in-memory Persister for tests.
type memState struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemState() *memState { return &memState{m: map[string][]byte{}} }

func (s *memState) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (s *memState) Save(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

func lineItem(productID, color, size string, price float64, qty int) domain.CartItem {
	return domain.CartItem{
		ProductID:   productID,
		ProductName: "Product " + productID,
		VariantID:   domain.VariantID(productID, color, size),
		VariantName: color + " / " + size,
		Size:        size,
		Color:       color,
		Price:       price,
		Quantity:    qty,
	}
}
