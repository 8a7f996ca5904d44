// Package wishlist keeps the saved-products set in the durable local store.
// The wishlist is device-local and holds full product snapshots so saved
// items render without a catalog round trip; membership is keyed by id.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/pkg/localstore"
	"github.com/acewig/storefront/pkg/logger"
)

// Key is the well-known local store entry holding the wishlist.
const Key = "acewig_wishlist"

const envelopeVersion = 1

// envelope is the persisted shape. The version field leaves room for a
// future migration without guessing at raw payloads.
type envelope struct {
	Version int               `json:"version"`
	Items   []catalog.Product `json:"items"`
}

// List is the in-memory wishlist backed by the local store. Reads are served
// from memory; every mutation writes through. Persistence failures keep the
// in-memory state authoritative for the session.
type List struct {
	store  *localstore.Store
	logger *logger.Logger

	mu    sync.Mutex
	items []catalog.Product
}

// Load reads the persisted wishlist. A missing or unreadable entry starts an
// empty list rather than failing; the wishlist is a convenience, not a record.
func Load(ctx context.Context, store *localstore.Store, logg *logger.Logger) (*List, error) {
	if store == nil {
		return nil, errors.New("wishlist store is required")
	}

	list := &List{store: store, logger: logg}

	value, err := store.Get(ctx, Key)
	if err != nil {
		if !errors.Is(err, localstore.ErrNotFound) && logg != nil {
			logg.Warn(ctx, "wishlist read failed, starting empty")
		}
		return list, nil
	}

	var persisted envelope
	if err := json.Unmarshal([]byte(value), &persisted); err != nil || persisted.Version != envelopeVersion {
		if logg != nil {
			logg.Warn(ctx, "stored wishlist unreadable, starting empty")
		}
		return list, nil
	}

	list.items = persisted.Items
	return list, nil
}

// Add saves a product snapshot. Adding an already-saved product is a no-op.
func (l *List) Add(ctx context.Context, product catalog.Product) {
	if product.ID == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.containsLocked(product.ID) {
		return
	}
	l.items = append(l.items, product)
	l.persistLocked(ctx)
}

// Remove drops a product by id. Removing an absent id is a no-op.
func (l *List) Remove(ctx context.Context, productID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID == productID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.persistLocked(ctx)
			return
		}
	}
}

// Toggle flips membership and reports whether the product is now saved.
func (l *List) Toggle(ctx context.Context, product catalog.Product) bool {
	if product.ID == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].ID == product.ID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.persistLocked(ctx)
			return false
		}
	}
	l.items = append(l.items, product)
	l.persistLocked(ctx)
	return true
}

// Contains reports whether a product is saved.
func (l *List) Contains(productID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.containsLocked(productID)
}

// Items returns the saved product snapshots in insertion order.
func (l *List) Items() []catalog.Product {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]catalog.Product, len(l.items))
	copy(items, l.items)
	return items
}

// Count returns the number of saved products.
func (l *List) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) containsLocked(productID string) bool {
	for i := range l.items {
		if l.items[i].ID == productID {
			return true
		}
	}
	return false
}

// persistLocked writes the current items through to the local store. Write
// failures are logged and swallowed; the in-memory list stays usable.
func (l *List) persistLocked(ctx context.Context) {
	encoded, err := json.Marshal(envelope{Version: envelopeVersion, Items: l.items})
	if err != nil {
		if l.logger != nil {
			l.logger.Warn(ctx, "wishlist encode failed")
		}
		return
	}
	if err := l.store.Put(ctx, Key, string(encoded)); err != nil && l.logger != nil {
		l.logger.Warn(ctx, "wishlist write failed")
	}
}
