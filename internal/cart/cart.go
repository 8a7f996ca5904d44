// Package cart keeps a session-scoped shopping cart in sync with the remote
// store. The server owns the cart contents; every mutation is a remote write
// followed by a full refetch, and the local snapshot only ever changes as a
// whole.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/internal/storeapi"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// Snapshot is the normalized cart state. A session with no server-side cart
// yet renders as an empty snapshot with a blank ID.
type Snapshot struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Items       []Item          `json:"items"`
}

// Item is one cart line keyed by variant.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	MaxStock  int             `json:"maxStock"`
	Total     decimal.Decimal `json:"total"`
}

type storefrontAPI interface {
	Cart(ctx context.Context, sessionID string) (*storeapi.Cart, error)
	AddCartItem(ctx context.Context, sessionID, productID, variantID string, quantity int) (bool, error)
	UpdateCartItem(ctx context.Context, cartID, variantID string, quantity int) (bool, error)
	RemoveCartItem(ctx context.Context, cartID, variantID string) (bool, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	API       storefrontAPI
	SessionID string
	Logger    *logger.Logger
}

// Service owns the cart snapshot for one session. Mutations are serialized so
// two concurrent writes can never interleave their refetches.
type Service struct {
	api       storefrontAPI
	sessionID string
	logger    *logger.Logger

	writeMu sync.Mutex

	mu       sync.Mutex
	snapshot Snapshot
	updating bool
	err      error
}

// NewService builds a cart service bound to a session.
func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storefront api is required")
	}
	if params.SessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return &Service{
		api:       params.API,
		sessionID: params.SessionID,
		logger:    params.Logger,
	}, nil
}

// Refresh refetches the cart from the server and replaces the snapshot. A
// session without a cart yet produces an empty snapshot, not an error.
func (s *Service) Refresh(ctx context.Context) error {
	snapshot, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err
		return err
	}
	s.err = nil
	s.snapshot = snapshot
	return nil
}

// AddItem adds a product variant to the cart and refetches. Returns false
// when the server rejects the write; the snapshot is untouched on failure.
func (s *Service) AddItem(ctx context.Context, productID, variantID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return s.mutate(ctx, func(ctx context.Context) (bool, error) {
		return s.api.AddCartItem(ctx, s.sessionID, productID, variantID, quantity)
	})
}

// UpdateItem sets the quantity of an existing line. It requires a cart to
// exist already; with no cart there is nothing to update.
func (s *Service) UpdateItem(ctx context.Context, variantID string, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	cartID := s.cartID()
	if cartID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "no cart to update")
	}
	return s.mutate(ctx, func(ctx context.Context) (bool, error) {
		return s.api.UpdateCartItem(ctx, cartID, variantID, quantity)
	})
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, variantID string) (bool, error) {
	cartID := s.cartID()
	if cartID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "no cart to update")
	}
	return s.mutate(ctx, func(ctx context.Context) (bool, error) {
		return s.api.RemoveCartItem(ctx, cartID, variantID)
	})
}

// Snapshot returns a copy of the current cart state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.snapshot
	snapshot.Items = make([]Item, len(s.snapshot.Items))
	copy(snapshot.Items, s.snapshot.Items)
	return snapshot
}

// Updating reports whether a mutation round-trip is in flight.
func (s *Service) Updating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

// Err returns the last refresh or mutation error, if any.
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// mutate serializes write-then-refetch rounds. The refetch only replaces the
// snapshot when both the write and the read succeed.
func (s *Service) mutate(ctx context.Context, write func(ctx context.Context) (bool, error)) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.setUpdating(true)
	defer s.setUpdating(false)

	ok, err := write(ctx)
	if err != nil {
		s.setErr(err)
		return false, err
	}
	if !ok {
		return false, nil
	}

	snapshot, err := s.fetch(ctx)
	if err != nil {
		// The write landed but the refetch failed; keep the stale snapshot
		// rather than guessing at the server state.
		if s.logger != nil {
			s.logger.Warn(s.logger.WithField(ctx, "session_id", s.sessionID), "cart refetch after write failed")
		}
		s.setErr(err)
		return true, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
	s.snapshot = snapshot
	return true, nil
}

func (s *Service) fetch(ctx context.Context) (Snapshot, error) {
	wire, err := s.api.Cart(ctx, s.sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	if wire == nil {
		return Snapshot{TotalAmount: decimal.Zero, Items: []Item{}}, nil
	}
	return normalize(*wire), nil
}

func (s *Service) cartID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.ID
}

func (s *Service) setUpdating(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updating = v
}

func (s *Service) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func normalize(wire storeapi.Cart) Snapshot {
	items := make([]Item, 0, len(wire.Items))
	for _, item := range wire.Items {
		items = append(items, Item{
			ID:        item.ID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Name:      item.Name,
			Image:     item.Image,
			Price:     catalog.MajorUnits(item.Price),
			Quantity:  item.Quantity,
			MaxStock:  item.MaxStock,
			Total:     catalog.MajorUnits(item.Total),
		})
	}
	return Snapshot{
		ID:          wire.ID,
		TotalAmount: catalog.MajorUnits(wire.TotalAmount),
		TotalItems:  wire.TotalItems,
		Items:       items,
	}
}
