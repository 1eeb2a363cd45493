package review

import "time"

// Review is a single user's review of a product. The intended invariant is
// at most one review per (userEmail, productId) pair; Submit enforces it by
// updating in place when one already exists.
type Review struct {
	ID        string    `json:"id" bson:"_id"`
	ProductID string    `json:"productId" bson:"productId"`
	UserEmail string    `json:"userEmail" bson:"userEmail"`
	UserName  string    `json:"userName" bson:"userName"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	Date      time.Time `json:"date" bson:"date"`
}

// Summary contains the aggregate rating for a product.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// TestimonialMinRating and TestimonialLimit define the homepage
// testimonials query: best recent reviews, newest first.
const (
	TestimonialMinRating = 4
	TestimonialLimit     = 4
)
