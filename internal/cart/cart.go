package cart

import "github.com/Dant324/bare-and-beautiful/internal/catalog"

// Item is a cart line. Product is a snapshot taken at add time; later
// catalog edits do not change lines already in a cart.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Summary is the derived view of a cart.
type Summary struct {
	Items     []Item `json:"items"`
	ItemCount int    `json:"itemCount"`
	Subtotal  int    `json:"subtotal"`
	Shipping  int    `json:"shipping"`
	Total     int    `json:"total"`
}

// Flat shipping: free above the threshold and for empty carts.
const (
	FreeShippingThreshold = 2000
	FlatShippingFee       = 200
)

// Summarize computes the derived values for a set of cart lines.
func Summarize(items []Item) Summary {
	s := Summary{Items: items}
	if s.Items == nil {
		s.Items = []Item{}
	}
	for _, it := range items {
		s.ItemCount += it.Quantity
		s.Subtotal += it.Product.Price * it.Quantity
	}
	if s.Subtotal > 0 && s.Subtotal < FreeShippingThreshold {
		s.Shipping = FlatShippingFee
	}
	s.Total = s.Subtotal + s.Shipping
	return s
}
