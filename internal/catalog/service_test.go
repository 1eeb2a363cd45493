package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func seedService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	fixtures := []Product{
		{Name: "Vitamin C Serum", Brand: "GlowSecrets", Price: 1500, Category: "skincare", SkinType: strptr("Oily"), Rating: 4.8, Featured: true, CreatedAt: now.Add(-3 * time.Hour)},
		{Name: "Rose Mist", Brand: "Bare and Beautiful", Price: 950, Category: "fragrance", Rating: 4.2, CreatedAt: now.Add(-2 * time.Hour)},
		{Name: "Argan Hair Oil", Brand: "DerStore", Price: 2200, Category: "haircare", Rating: 3.9, Featured: true, CreatedAt: now.Add(-1 * time.Hour)},
		{Name: "Shea Body Butter", Brand: "GlowSecrets", Price: 1200, Category: "bodycare", SkinType: strptr("Dry"), Rating: 4.5, CreatedAt: now},
	}
	repo := NewInMemoryRepository(nil)
	for _, p := range fixtures {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}
	return NewService(repo)
}

func names(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestListFiltersByCategory(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{Category: "skincare"}, SortFeatured)
	require.Len(t, got, 1)
	assert.Equal(t, "Vitamin C Serum", got[0].Name)
}

func TestListSearchMatchesNameAndBrand(t *testing.T) {
	svc := seedService(t)

	byName := svc.List(context.Background(), Filter{Query: "serum"}, SortFeatured)
	require.Len(t, byName, 1)
	assert.Equal(t, "Vitamin C Serum", byName[0].Name)

	byBrand := svc.List(context.Background(), Filter{Query: "glowsec"}, SortFeatured)
	assert.Len(t, byBrand, 2)
}

func TestListNoMatchReturnsEmptySlice(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{Query: "nonexistent"}, SortFeatured)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListCombinesFilters(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{Brand: "GlowSecrets", MinPrice: 1300}, SortFeatured)
	require.Len(t, got, 1)
	assert.Equal(t, "Vitamin C Serum", got[0].Name)
}

func TestListPriceRange(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{MinPrice: 1000, MaxPrice: 2000}, SortPriceLow)
	assert.Equal(t, []string{"Shea Body Butter", "Vitamin C Serum"}, names(got))
}

func TestSortPriceLowToHigh(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{}, SortPriceLow)
	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortPriceHighToLow(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{}, SortPriceHigh)
	require.Len(t, got, 4)
	assert.Equal(t, "Argan Hair Oil", got[0].Name)
	assert.Equal(t, "Rose Mist", got[3].Name)
}

func TestSortRating(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{}, SortRating)
	assert.Equal(t, []string{"Vitamin C Serum", "Shea Body Butter", "Rose Mist", "Argan Hair Oil"}, names(got))
}

func TestSortNewest(t *testing.T) {
	svc := seedService(t)

	got := svc.List(context.Background(), Filter{}, SortNewest)
	require.Len(t, got, 4)
	assert.Equal(t, "Shea Body Butter", got[0].Name)
	assert.Equal(t, "Vitamin C Serum", got[3].Name)
}

func TestFeaturedReturnsOnlyFlagged(t *testing.T) {
	svc := seedService(t)

	got := svc.Featured(context.Background())
	require.Len(t, got, 2)
	for _, p := range got {
		assert.True(t, p.Featured)
	}
}

func TestCreateMirrorsPrimaryImageIntoGallery(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Create(context.Background(), Product{
		Name: "Clay Mask", Brand: "GlowSecrets", Price: 800, Category: "skincare",
		Image: "https://cdn.example.com/clay.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/clay.jpg"}, created.Images)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Product{Name: "Clay Mask", Brand: "GlowSecrets", Price: 800, Category: "skincare"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, Product{Name: "Clay Mask Pro", Brand: "GlowSecrets", Price: 900, Category: "skincare"})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Clay Mask Pro", updated.Name)
}

func TestUpdatePreservesDenormalizedRating(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Product{Name: "Clay Mask", Brand: "GlowSecrets", Price: 800, Category: "skincare"})
	require.NoError(t, err)
	require.NoError(t, repo.SetRating(ctx, created.ID, 4.5, 7))

	// an admin edit payload never carries rating/reviewCount
	updated, err := svc.Update(ctx, created.ID, Product{Name: "Clay Mask Pro", Brand: "GlowSecrets", Price: 900, Category: "skincare"})
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, 7, updated.ReviewCount)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, stored.Rating)
	assert.Equal(t, 7, stored.ReviewCount)
}

func TestGetByIDUnknownProduct(t *testing.T) {
	svc := seedService(t)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
