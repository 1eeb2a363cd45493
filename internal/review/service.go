package review

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/Dant324/bare-and-beautiful/internal/catalog"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyComment    = errors.New("comment is required")
)

// ProductStore is the slice of the catalog the review subsystem needs:
// existence checks, the seed rating fallback and the denormalized
// rating/reviewCount write-back. catalog.Repository satisfies it.
type ProductStore interface {
	GetByID(ctx context.Context, id string) (catalog.Product, error)
	SetRating(ctx context.Context, id string, rating float64, reviewCount int) error
}

// Identity is the authenticated author of a review.
type Identity struct {
	Email string
	Name  string
}

type Service struct {
	repo     Repository
	products ProductStore
}

func NewService(repo Repository, products ProductStore) *Service {
	return &Service{repo: repo, products: products}
}

// Submit upserts the caller's review of a product: if the same email
// already reviewed it, rating/comment/date are updated in place,
// otherwise a new review is inserted. The returned flag reports which
// branch ran (true for an insert). The product's denormalized rating
// and review count are recomputed afterwards.
func (s *Service) Submit(ctx context.Context, productID string, author Identity, rating int, comment string) (Review, bool, error) {
	if rating < 1 || rating > 5 {
		return Review{}, false, ErrInvalidRating
	}
	if comment == "" {
		return Review{}, false, ErrEmptyComment
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return Review{}, false, ErrProductNotFound
	}

	now := time.Now().UTC()

	existing, err := s.repo.GetByProductAndEmail(ctx, productID, author.Email)
	if err == nil {
		existing.Rating = rating
		existing.Comment = comment
		existing.Date = now
		updated, err := s.repo.Update(ctx, existing.ID, existing)
		if err != nil {
			return Review{}, false, err
		}
		s.refreshProductRating(ctx, productID)
		return updated, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Review{}, false, err
	}

	created, err := s.repo.Create(ctx, Review{
		ProductID: productID,
		UserEmail: author.Email,
		UserName:  author.Name,
		Rating:    rating,
		Comment:   comment,
		Date:      now,
	})
	if err != nil {
		return Review{}, false, err
	}
	s.refreshProductRating(ctx, productID)
	return created, true, nil
}

// ListByProduct returns the reviews for a product, newest first. Read
// failures degrade to an empty list.
func (s *Service) ListByProduct(ctx context.Context, productID string) []Review {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		log.Printf("review: list failed for product %s: %v", productID, err)
		return []Review{}
	}
	return reviews
}

// Summarize computes the aggregate rating for a product. When no reviews
// exist the product's seed rating is reported with a zero count.
func (s *Service) Summarize(ctx context.Context, productID string) (Summary, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return Summary{}, ErrProductNotFound
	}

	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	if len(reviews) == 0 {
		return Summary{Average: p.Rating, Count: 0}, nil
	}
	return Summary{Average: averageRating(reviews), Count: len(reviews)}, nil
}

// Testimonials selects the homepage quotes: rating >= 4, newest first,
// at most 4 entries.
func (s *Service) Testimonials(ctx context.Context) []Review {
	reviews, err := s.repo.ListTopRated(ctx, TestimonialMinRating, TestimonialLimit)
	if err != nil {
		log.Printf("review: testimonials fetch failed: %v", err)
		return []Review{}
	}
	return reviews
}

// Delete removes a review (admin moderation) and refreshes the product's
// denormalized rating.
func (s *Service) Delete(ctx context.Context, id string) error {
	rev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshProductRating(ctx, rev.ProductID)
	return nil
}

// refreshProductRating writes the recomputed aggregate back onto the
// product document. When the last review disappears only the count is
// reset; the stored rating keeps its previous value so reads still have
// a fallback.
func (s *Service) refreshProductRating(ctx context.Context, productID string) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		log.Printf("review: rating refresh fetch failed for product %s: %v", productID, err)
		return
	}
	if len(reviews) == 0 {
		p, err := s.products.GetByID(ctx, productID)
		if err != nil {
			log.Printf("review: rating reset fetch failed for product %s: %v", productID, err)
			return
		}
		if err := s.products.SetRating(ctx, productID, p.Rating, 0); err != nil {
			log.Printf("review: rating reset failed for product %s: %v", productID, err)
		}
		return
	}
	if err := s.products.SetRating(ctx, productID, averageRating(reviews), len(reviews)); err != nil {
		log.Printf("review: rating write-back failed for product %s: %v", productID, err)
	}
}

// averageRating is the mean of the ratings rounded to two decimals, the
// display convention used across the storefront.
func averageRating(reviews []Review) float64 {
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*100) / 100
}
