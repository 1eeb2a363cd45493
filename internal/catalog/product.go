package catalog

import "time"

// Product represents a catalog item. IDs are store-assigned and opaque.
// OriginalPrice is display-only: it is never validated against Price, so
// consumers must treat a discount that isn't one defensively.
type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Brand         string    `json:"brand" bson:"brand"`
	Price         int       `json:"price" bson:"price"`
	OriginalPrice *int      `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Category      string    `json:"category" bson:"category"`
	SkinType      *string   `json:"skinType,omitempty" bson:"skinType,omitempty"`
	Description   string    `json:"description" bson:"description"`
	Ingredients   []string  `json:"ingredients,omitempty" bson:"ingredients,omitempty"`
	Benefits      []string  `json:"benefits,omitempty" bson:"benefits,omitempty"`
	Image         string    `json:"image" bson:"image"`
	Images        []string  `json:"images,omitempty" bson:"images,omitempty"`
	Featured      bool      `json:"featured" bson:"featured"`
	Rating        float64   `json:"rating" bson:"rating"`
	ReviewCount   int       `json:"reviewCount" bson:"reviewCount"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// AllowedCategories contains the supported catalog categories.
var AllowedCategories = []string{
	"skincare",
	"fragrance",
	"haircare",
	"bodycare",
}

// AllowedSkinTypes contains the supported skin-type facet values.
var AllowedSkinTypes = []string{
	"Oily",
	"Dry",
	"Sensitive",
	"Combination",
	"Normal",
}

// Filter describes the optional, AND-combined catalog filters.
// Zero values mean "no constraint"; MaxPrice == 0 means unbounded.
type Filter struct {
	Category string
	Query    string
	Brand    string
	SkinType string
	MinPrice int
	MaxPrice int
}

// Sort keys accepted by List. SortFeatured is the default and preserves
// the fetched order.
const (
	SortFeatured  = "featured"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortBrand     = "brand"
	SortRating    = "rating"
	SortNewest    = "newest"
)

func validCategory(c string) bool {
	for _, allowed := range AllowedCategories {
		if c == allowed {
			return true
		}
	}
	return false
}

func validSkinType(s string) bool {
	for _, allowed := range AllowedSkinTypes {
		if s == allowed {
			return true
		}
	}
	return false
}
