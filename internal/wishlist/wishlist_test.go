package wishlist

import (
	"testing"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	s := NewStore()
	p := catalog.Product{ID: "p1", Name: "Vitamin C Serum"}

	added, list := s.Toggle("u1", p)
	if !added {
		t.Fatal("first toggle should add")
	}
	if len(list) != 1 || list[0].ID != "p1" {
		t.Fatalf("unexpected list after add: %+v", list)
	}

	added, list = s.Toggle("u1", p)
	if added {
		t.Fatal("second toggle should remove")
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after double toggle, got %d entries", len(list))
	}
}

func TestToggleNeverDuplicates(t *testing.T) {
	s := NewStore()
	p := catalog.Product{ID: "p1"}

	s.Toggle("u1", p)
	s.Toggle("u1", p)
	_, list := s.Toggle("u1", p)

	if len(list) != 1 {
		t.Fatalf("expected at most one entry per product, got %d", len(list))
	}
}

func TestListsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	s.Toggle("u1", catalog.Product{ID: "p1"})
	s.Toggle("u2", catalog.Product{ID: "p2"})

	if got := s.List("u1"); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected u1 list: %+v", got)
	}
	if got := s.List("u2"); len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("unexpected u2 list: %+v", got)
	}
}
