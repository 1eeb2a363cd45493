package cart

import (
	"testing"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
)

func product(id string, price int) catalog.Product {
	return catalog.Product{ID: id, Name: "Product " + id, Price: price}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	s := NewStore()
	s.Add("u1", product("p1", 1000), 1)
	summary := s.Add("u1", product("p1", 1000), 2)

	if len(summary.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(summary.Items))
	}
	if summary.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", summary.Items[0].Quantity)
	}
	if summary.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", summary.ItemCount)
	}
}

func TestItemCountMatchesQuantitySum(t *testing.T) {
	s := NewStore()
	s.Add("u1", product("p1", 1000), 2)
	s.Add("u1", product("p2", 500), 1)
	s.UpdateQuantity("u1", "p1", 4)
	s.Add("u1", product("p3", 750), 3)
	summary := s.Remove("u1", "p3")

	want := 0
	for _, it := range summary.Items {
		if it.Quantity <= 0 {
			t.Fatalf("line %s has non-positive quantity %d", it.Product.ID, it.Quantity)
		}
		want += it.Quantity
	}
	if summary.ItemCount != want {
		t.Fatalf("item count %d != quantity sum %d", summary.ItemCount, want)
	}
	if summary.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", summary.ItemCount)
	}
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	s := NewStore()
	s.Add("u1", product("p1", 1000), 2)
	summary := s.UpdateQuantity("u1", "p1", 0)

	if len(summary.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(summary.Items))
	}

	s.Add("u1", product("p2", 800), 1)
	summary = s.UpdateQuantity("u1", "p2", -3)
	if len(summary.Items) != 0 {
		t.Fatalf("negative quantity should remove the line, got %d lines", len(summary.Items))
	}
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	s := NewStore()
	s.Add("u1", product("p1", 1000), 1)
	summary := s.Remove("u1", "nope")

	if len(summary.Items) != 1 {
		t.Fatalf("expected 1 line after removing absent product, got %d", len(summary.Items))
	}
}

func TestShippingThresholds(t *testing.T) {
	cases := []struct {
		name     string
		items    []Item
		subtotal int
		shipping int
	}{
		{"empty cart ships free", nil, 0, 0},
		{"below threshold pays flat fee", []Item{{Product: product("p1", 1500), Quantity: 1}}, 1500, 200},
		{"just below threshold", []Item{{Product: product("p1", 1999), Quantity: 1}}, 1999, 200},
		{"at threshold ships free", []Item{{Product: product("p1", 2000), Quantity: 1}}, 2000, 0},
		{"above threshold ships free", []Item{{Product: product("p1", 1500), Quantity: 2}}, 3000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.items)
			if got.Subtotal != tc.subtotal {
				t.Fatalf("subtotal = %d, want %d", got.Subtotal, tc.subtotal)
			}
			if got.Shipping != tc.shipping {
				t.Fatalf("shipping = %d, want %d", got.Shipping, tc.shipping)
			}
			if got.Total != tc.subtotal+tc.shipping {
				t.Fatalf("total = %d, want %d", got.Total, tc.subtotal+tc.shipping)
			}
		})
	}
}

func TestTwoItemCartTotals(t *testing.T) {
	s := NewStore()
	s.Add("u1", product("p1", 1200), 1)
	summary := s.Add("u1", product("p2", 900), 2)

	if summary.Subtotal != 3000 {
		t.Fatalf("subtotal = %d, want 3000", summary.Subtotal)
	}
	if summary.Shipping != 0 {
		t.Fatalf("shipping = %d, want 0", summary.Shipping)
	}
	if summary.Total != 3000 {
		t.Fatalf("total = %d, want 3000", summary.Total)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	s.Add("u1", product("p1", 1000), 1)
	s.Add("u2", product("p2", 500), 2)

	if got := s.Get("u1").ItemCount; got != 1 {
		t.Fatalf("u1 item count = %d, want 1", got)
	}
	if got := s.Get("u2").ItemCount; got != 2 {
		t.Fatalf("u2 item count = %d, want 2", got)
	}

	s.Clear("u1")
	if got := s.Get("u1").ItemCount; got != 0 {
		t.Fatalf("u1 item count after clear = %d, want 0", got)
	}
	if got := s.Get("u2").ItemCount; got != 2 {
		t.Fatalf("u2 cart should be untouched, item count = %d", got)
	}
}
