package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/acewig/storefront/internal/storeapi"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// Filters describe the listing knobs consumers may set. Price bounds are in
// the minor unit, matching the wire contract. Changing any filter restarts
// pagination from the first page.
type Filters struct {
	Limit        int
	MinPrice     int64
	MaxPrice     int64
	InStockOnly  bool
	CategorySlug string
}

func (f Filters) toAPI() storeapi.ListFilters {
	return storeapi.ListFilters{
		Limit:        f.Limit,
		MinPrice:     f.MinPrice,
		MaxPrice:     f.MaxPrice,
		InStockOnly:  f.InStockOnly,
		CategorySlug: f.CategorySlug,
	}
}

func (f Filters) cacheKey(cursor string) string {
	parts := []string{
		"limit=" + strconv.Itoa(f.Limit),
		"min=" + strconv.FormatInt(f.MinPrice, 10),
		"max=" + strconv.FormatInt(f.MaxPrice, 10),
		"stock=" + strconv.FormatBool(f.InStockOnly),
		"cat=" + f.CategorySlug,
		"cursor=" + cursor,
	}
	return "products:" + strings.Join(parts, "|")
}

type storefrontAPI interface {
	ListProducts(ctx context.Context, filters storeapi.ListFilters, cursor string) (*storeapi.ProductPage, error)
	SearchProducts(ctx context.Context, q string, limit int) ([]storeapi.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*storeapi.Product, error)
	RelatedProducts(ctx context.Context, slug string, limit int) ([]storeapi.Product, error)
	ListCategories(ctx context.Context) ([]storeapi.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*storeapi.Category, error)
	CategoryProducts(ctx context.Context, slug string, limit int) ([]storeapi.Product, error)
}

// Cache is the optional read-through cache in front of catalog reads. Both
// methods are best-effort; a miss or failure falls through to a direct fetch.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	API    storefrontAPI
	Cache  Cache
	TTL    time.Duration
	Logger *logger.Logger
}

// Service fetches and normalizes catalog data, with optional caching.
type Service struct {
	api    storefrontAPI
	cache  Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewService builds a catalog service. Cache may be nil.
func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront api is required")
	}
	return &Service{
		api:    params.API,
		cache:  params.Cache,
		ttl:    params.TTL,
		logger: params.Logger,
	}, nil
}

// ListProducts returns one normalized listing page.
func (s *Service) ListProducts(ctx context.Context, filters Filters, cursor string) (*Page, error) {
	key := filters.cacheKey(cursor)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var page Page
		if err := json.Unmarshal([]byte(cached), &page); err == nil {
			return &page, nil
		}
	}

	wire, err := s.api.ListProducts(ctx, filters.toAPI(), cursor)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Products:   NormalizeProducts(wire.Products),
		NextCursor: wire.NextCursor,
		HasMore:    wire.HasMore,
	}
	s.cacheSet(ctx, key, page)
	return page, nil
}

// Search returns normalized results for a bounded free-text query.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	key := fmt.Sprintf("search:q=%s|limit=%d", query, limit)
	if cached, ok := s.cacheGet(ctx, key); ok {
		var results []Product
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			return results, nil
		}
	}

	wire, err := s.api.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	results := NormalizeProducts(wire)
	s.cacheSet(ctx, key, results)
	return results, nil
}

// ProductBySlug returns full normalized detail for one product.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*Product, error) {
	wire, err := s.api.ProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	product := NormalizeProduct(*wire)
	return &product, nil
}

// Related returns normalized related products for a slug.
func (s *Service) Related(ctx context.Context, slug string, limit int) ([]Product, error) {
	wire, err := s.api.RelatedProducts(ctx, slug, limit)
	if err != nil {
		return nil, err
	}
	return NormalizeProducts(wire), nil
}

// Categories returns the flat normalized category list.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	const key = "categories"
	if cached, ok := s.cacheGet(ctx, key); ok {
		var categories []Category
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			return categories, nil
		}
	}

	wire, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(wire))
	for _, c := range wire {
		categories = append(categories, NormalizeCategory(c))
	}
	s.cacheSet(ctx, key, categories)
	return categories, nil
}

// CategoryBySlug returns one normalized category.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	wire, err := s.api.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	category := NormalizeCategory(*wire)
	return &category, nil
}

// CategoryProducts returns normalized products within a category.
func (s *Service) CategoryProducts(ctx context.Context, slug string, limit int) ([]Product, error) {
	wire, err := s.api.CategoryProducts(ctx, slug, limit)
	if err != nil {
		return nil, err
	}
	return NormalizeProducts(wire), nil
}

func (s *Service) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	return s.cache.Get(ctx, key)
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn(s.logger.WithField(ctx, "cache_key", key), "failed to encode cache entry")
		}
		return
	}
	s.cache.Set(ctx, key, string(encoded), s.ttl)
}
