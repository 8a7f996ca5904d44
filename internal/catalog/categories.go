package catalog

import (
	"context"
	"sync"
)

// CategoryList holds the flat category collection. There is no pagination;
// consumers resolve names from slugs by linear lookup.
type CategoryList struct {
	svc *Service

	mu         sync.Mutex
	categories []Category
	loading    bool
	err        error
}

// NewCategoryList builds an empty list. Call Refresh to populate it.
func NewCategoryList(svc *Service) *CategoryList {
	return &CategoryList{svc: svc}
}

// Refresh replaces the collection with a fresh fetch.
func (c *CategoryList) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	categories, err := c.svc.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	c.err = nil
	c.categories = categories
	return nil
}

// Categories returns a copy of the current collection.
func (c *CategoryList) Categories() []Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	categories := make([]Category, len(c.categories))
	copy(categories, c.categories)
	return categories
}

// ResolveName returns the display name for a category slug.
func (c *CategoryList) ResolveName(slug string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, category := range c.categories {
		if category.Slug == slug {
			return category.Name, true
		}
	}
	return "", false
}
