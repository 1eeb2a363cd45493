package wishlist

import (
	"sync"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
)

// Store keeps per-user wishlists in process memory with set semantics
// keyed by product id. Like the cart, a wishlist lives only for the
// session.
type Store struct {
	mu    sync.RWMutex
	lists map[string][]catalog.Product
}

func NewStore() *Store {
	return &Store{lists: make(map[string][]catalog.Product)}
}

// Toggle adds the product when absent and removes it when present.
// Toggling twice restores the original set. The returned flag reports
// whether the product is in the wishlist afterwards.
func (s *Store) Toggle(userID string, p catalog.Product) (bool, []catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[userID]
	for i := range list {
		if list[i].ID == p.ID {
			list = append(list[:i], list[i+1:]...)
			s.lists[userID] = list
			return false, copyList(list)
		}
	}
	list = append(list, p)
	s.lists[userID] = list
	return true, copyList(list)
}

func (s *Store) List(userID string) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyList(s.lists[userID])
}

func copyList(list []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(list))
	copy(out, list)
	return out
}
