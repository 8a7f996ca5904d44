package catalog

import (
	"context"
	"sync"
)

// ProductList accumulates listing pages for one filter set. Filters and
// pagination are coupled: changing filters discards accumulated pages and
// restarts from page one.
type ProductList struct {
	svc *Service

	mu          sync.Mutex
	filters     Filters
	products    []Product
	cursor      *string
	hasMore     bool
	loading     bool
	loadingMore bool
	err         error
}

// ListSnapshot is a point-in-time copy of the list state for rendering.
type ListSnapshot struct {
	Products    []Product
	HasMore     bool
	Loading     bool
	LoadingMore bool
	Err         error
}

// NewProductList builds an empty list for the given filters. Call Refresh to
// populate the first page.
func NewProductList(svc *Service, filters Filters) *ProductList {
	return &ProductList{
		svc:     svc,
		filters: filters,
		hasMore: true,
	}
}

// Refresh discards accumulated pages and fetches page one for the current
// filters.
func (l *ProductList) Refresh(ctx context.Context) error {
	l.mu.Lock()
	filters := l.filters
	l.loading = true
	l.err = nil
	l.mu.Unlock()

	page, err := l.svc.ListProducts(ctx, filters, "")

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false
	if err != nil {
		l.err = err
		return err
	}
	if l.filters != filters {
		// Filters changed while the fetch was in flight; that change's own
		// Refresh owns the state now.
		return nil
	}
	l.products = page.Products
	l.cursor = page.NextCursor
	l.hasMore = page.HasMore
	return nil
}

// LoadMore appends the next page. It is a no-op when no more pages exist, no
// continuation cursor remains, or a load is already in flight.
func (l *ProductList) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if !l.hasMore || l.cursor == nil || l.loadingMore || l.loading {
		l.mu.Unlock()
		return nil
	}
	l.loadingMore = true
	filters := l.filters
	cursor := *l.cursor
	l.mu.Unlock()

	page, err := l.svc.ListProducts(ctx, filters, cursor)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loadingMore = false
	if err != nil {
		l.err = err
		return err
	}
	if l.filters != filters {
		return nil
	}
	l.products = append(l.products, page.Products...)
	l.cursor = page.NextCursor
	l.hasMore = page.HasMore
	return nil
}

// SetFilters swaps the filter set, discards accumulated pages, and restarts
// pagination from the first page.
func (l *ProductList) SetFilters(ctx context.Context, filters Filters) error {
	l.mu.Lock()
	l.filters = filters
	l.products = nil
	l.cursor = nil
	l.hasMore = true
	l.err = nil
	l.mu.Unlock()

	return l.Refresh(ctx)
}

// Snapshot returns a copy of the current state.
func (l *ProductList) Snapshot() ListSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	products := make([]Product, len(l.products))
	copy(products, l.products)
	return ListSnapshot{
		Products:    products,
		HasMore:     l.hasMore,
		Loading:     l.loading,
		LoadingMore: l.loadingMore,
		Err:         l.err,
	}
}
