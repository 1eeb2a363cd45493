package cart

import (
	"sync"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
)

// Store keeps carts in process memory, keyed by user id. Carts live for
// the session only and are lost on restart; nothing is persisted.
type Store struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Item)}
}

// Add increments the existing line for the product or appends a new one.
// Quantity is never clamped to stock; no stock field exists.
func (s *Store) Add(userID string, p catalog.Product, qty int) Summary {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == p.ID {
			items[i].Quantity += qty
			s.carts[userID] = items
			return Summarize(items)
		}
	}
	items = append(items, Item{Product: p, Quantity: qty})
	s.carts[userID] = items
	return Summarize(items)
}

// UpdateQuantity replaces a line's quantity; a value <= 0 removes the
// line, so no resting line ever holds a non-positive quantity.
func (s *Store) UpdateQuantity(userID, productID string, qty int) Summary {
	if qty <= 0 {
		return s.Remove(userID, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = qty
			break
		}
	}
	s.carts[userID] = items
	return Summarize(items)
}

// Remove drops the matching line; no-op when absent.
func (s *Store) Remove(userID, productID string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.carts[userID]
	for i := range items {
		if items[i].Product.ID == productID {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}
	s.carts[userID] = items
	return Summarize(items)
}

func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

func (s *Store) Get(userID string) Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[userID]
	out := make([]Item, len(items))
	copy(out, items)
	return Summarize(out)
}
