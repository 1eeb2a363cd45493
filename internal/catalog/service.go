package catalog

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List fetches the catalog and applies the filter and sort in memory,
// matching the storefront's fetch-once-then-filter model. A fetch failure
// is logged and degrades to an empty result set.
func (s *Service) List(ctx context.Context, f Filter, sortBy string) []Product {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("catalog: list failed: %v", err)
		return []Product{}
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if matches(p, f) {
			filtered = append(filtered, p)
		}
	}

	sortProducts(filtered, sortBy)
	return filtered
}

// Featured returns the homepage promotion set.
func (s *Service) Featured(ctx context.Context) []Product {
	products, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("catalog: featured fetch failed: %v", err)
		return []Product{}
	}
	out := make([]Product, 0)
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p Product) (Product, error) {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	normalizeImages(&p)
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id string, p Product) (Product, error) {
	p.UpdatedAt = time.Now().UTC()
	normalizeImages(&p)
	return s.repo.Update(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func matches(p Product, f Filter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			return false
		}
	}
	if f.Brand != "" && p.Brand != f.Brand {
		return false
	}
	if f.SkinType != "" && (p.SkinType == nil || *p.SkinType != f.SkinType) {
		return false
	}
	if p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	return true
}

func sortProducts(products []Product, sortBy string) {
	switch sortBy {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case SortBrand:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Brand < products[j].Brand })
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Rating > products[j].Rating })
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	default:
		// "featured" and unknown keys keep the fetched order
	}
}

// normalizeImages keeps the gallery convention: the primary image is the
// first gallery entry and vice versa.
func normalizeImages(p *Product) {
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
	if p.Image != "" && len(p.Images) == 0 {
		p.Images = []string{p.Image}
	}
}
