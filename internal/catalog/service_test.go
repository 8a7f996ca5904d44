package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/acewig/storefront/internal/storeapi"
)

type stubAPI struct {
	listProducts     func(ctx context.Context, filters storeapi.ListFilters, cursor string) (*storeapi.ProductPage, error)
	searchProducts   func(ctx context.Context, q string, limit int) ([]storeapi.Product, error)
	productBySlug    func(ctx context.Context, slug string) (*storeapi.Product, error)
	relatedProducts  func(ctx context.Context, slug string, limit int) ([]storeapi.Product, error)
	listCategories   func(ctx context.Context) ([]storeapi.Category, error)
	categoryBySlug   func(ctx context.Context, slug string) (*storeapi.Category, error)
	categoryProducts func(ctx context.Context, slug string, limit int) ([]storeapi.Product, error)
}

func (s *stubAPI) ListProducts(ctx context.Context, filters storeapi.ListFilters, cursor string) (*storeapi.ProductPage, error) {
	return s.listProducts(ctx, filters, cursor)
}

func (s *stubAPI) SearchProducts(ctx context.Context, q string, limit int) ([]storeapi.Product, error) {
	return s.searchProducts(ctx, q, limit)
}

func (s *stubAPI) ProductBySlug(ctx context.Context, slug string) (*storeapi.Product, error) {
	return s.productBySlug(ctx, slug)
}

func (s *stubAPI) RelatedProducts(ctx context.Context, slug string, limit int) ([]storeapi.Product, error) {
	return s.relatedProducts(ctx, slug, limit)
}

func (s *stubAPI) ListCategories(ctx context.Context) ([]storeapi.Category, error) {
	return s.listCategories(ctx)
}

func (s *stubAPI) CategoryBySlug(ctx context.Context, slug string) (*storeapi.Category, error) {
	return s.categoryBySlug(ctx, slug)
}

func (s *stubAPI) CategoryProducts(ctx context.Context, slug string, limit int) ([]storeapi.Product, error) {
	return s.categoryProducts(ctx, slug, limit)
}

type memoryCache struct {
	entries map[string]string
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	m.entries[key] = value
	m.sets++
}

func TestNewServiceRequiresAPI(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error for missing api")
	}
}

func TestListProductsCachesPages(t *testing.T) {
	calls := 0
	api := &stubAPI{
		listProducts: func(ctx context.Context, filters storeapi.ListFilters, cursor string) (*storeapi.ProductPage, error) {
			calls++
			return &storeapi.ProductPage{
				Products: []storeapi.Product{{ID: "p1", Price: 1000}},
				HasMore:  false,
			}, nil
		},
	}
	cache := newMemoryCache()
	svc, err := NewService(ServiceParams{API: api, Cache: cache, TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	filters := Filters{Limit: 12}

	first, err := svc.ListProducts(ctx, filters, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ListProducts(ctx, filters, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
	if len(first.Products) != 1 || len(second.Products) != 1 {
		t.Fatalf("expected cached page to match fetched page")
	}
	if !second.Products[0].Price.Equal(first.Products[0].Price) {
		t.Fatalf("cached price diverged: %s vs %s", second.Products[0].Price, first.Products[0].Price)
	}
}

func TestListProductsDistinctFiltersDistinctKeys(t *testing.T) {
	calls := 0
	api := &stubAPI{
		listProducts: func(ctx context.Context, filters storeapi.ListFilters, cursor string) (*storeapi.ProductPage, error) {
			calls++
			return &storeapi.ProductPage{}, nil
		},
	}
	svc, err := NewService(ServiceParams{API: api, Cache: newMemoryCache(), TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.ListProducts(ctx, Filters{Limit: 12}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ListProducts(ctx, Filters{Limit: 12, InStockOnly: true}, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected two upstream calls for distinct filters, got %d", calls)
	}
}

func TestListProductsWithoutCache(t *testing.T) {
	api := &stubAPI{
		listProducts: func(ctx context.Context, filters storeapi.ListFilters, cursor string) (*storeapi.ProductPage, error) {
			return &storeapi.ProductPage{Products: []storeapi.Product{{ID: "p1"}}}, nil
		},
	}
	svc, err := NewService(ServiceParams{API: api})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page, err := svc.ListProducts(context.Background(), Filters{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Products) != 1 {
		t.Fatalf("expected one product, got %d", len(page.Products))
	}
}

func TestCategoriesCached(t *testing.T) {
	calls := 0
	api := &stubAPI{
		listCategories: func(ctx context.Context) ([]storeapi.Category, error) {
			calls++
			return []storeapi.Category{{ID: "c1", Name: "Wigs", Slug: "wigs"}}, nil
		},
	}
	svc, err := NewService(ServiceParams{API: api, Cache: newMemoryCache(), TTL: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		categories, err := svc.Categories(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(categories) != 1 || categories[0].Slug != "wigs" {
			t.Fatalf("unexpected categories %+v", categories)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one upstream call, got %d", calls)
	}
}
