// Package uistate holds ephemeral presentation state: which overlay is open,
// what the quick-view is showing, and the active toast queue. Nothing here is
// persisted; a restart starts clean.
package uistate

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/pkg/enums"
)

// DefaultToastDuration is how long a toast stays visible when the caller does
// not pick a duration.
const DefaultToastDuration = 4 * time.Second

// Toast is one transient notification.
type Toast struct {
	ID      string          `json:"id"`
	Kind    enums.ToastKind `json:"kind"`
	Message string          `json:"message"`
}

// Snapshot is a point-in-time copy of the presentation state.
type Snapshot struct {
	Modal           enums.Modal
	QuickView       *catalog.Product
	SelectedVariant *catalog.ProductVariant
	LastOrderID     string
	Toasts          []Toast
}

// Listener is notified after every state change.
type Listener func(Snapshot)

// Store is the single owner of modal and toast state. At most one modal is
// open at a time; opening any modal closes whatever was open before.
type Store struct {
	mu              sync.Mutex
	modal           enums.Modal
	quickView       *catalog.Product
	selectedVariant *catalog.ProductVariant
	lastOrderID     string
	toasts          []Toast
	timers          map[string]*time.Timer
	listeners       []Listener
}

// NewStore builds an empty presentation state store.
func NewStore() *Store {
	return &Store{timers: map[string]*time.Timer{}}
}

// Subscribe registers a listener for state changes. Listeners run outside the
// store lock, in registration order.
func (s *Store) Subscribe(listener Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// OpenCart presents the cart drawer.
func (s *Store) OpenCart() {
	s.mu.Lock()
	s.open(enums.ModalCart)
	s.notifyLocked()
}

// OpenQuickView presents one product and resolves its initial variant
// selection: the flagged default, else the first variant, else none.
func (s *Store) OpenQuickView(product catalog.Product) {
	s.mu.Lock()
	s.open(enums.ModalQuickView)
	s.quickView = &product
	s.selectedVariant = catalog.DefaultVariant(product)
	s.notifyLocked()
}

// SelectVariant changes the quick-view selection. Unknown variant ids are
// ignored.
func (s *Store) SelectVariant(variantID string) {
	s.mu.Lock()
	if s.quickView == nil {
		s.mu.Unlock()
		return
	}
	for i := range s.quickView.Variants {
		if s.quickView.Variants[i].ID == variantID {
			s.selectedVariant = &s.quickView.Variants[i]
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// OpenCheckout presents the checkout form.
func (s *Store) OpenCheckout() {
	s.mu.Lock()
	s.open(enums.ModalCheckout)
	s.notifyLocked()
}

// OpenConfirmation presents the post-checkout confirmation for an order.
func (s *Store) OpenConfirmation(orderID string) {
	s.mu.Lock()
	s.open(enums.ModalConfirmation)
	s.lastOrderID = orderID
	s.notifyLocked()
}

// OpenTracking presents the order tracking form.
func (s *Store) OpenTracking() {
	s.mu.Lock()
	s.open(enums.ModalTracking)
	s.notifyLocked()
}

// CloseAll dismisses any open modal and clears modal-scoped state. Toasts
// are unaffected.
func (s *Store) CloseAll() {
	s.mu.Lock()
	s.open(enums.ModalNone)
	s.notifyLocked()
}

// open switches the active modal and clears state owned by the previous one.
// Callers hold the lock.
func (s *Store) open(modal enums.Modal) {
	if s.modal == enums.ModalQuickView && modal != enums.ModalQuickView {
		s.quickView = nil
		s.selectedVariant = nil
	}
	if s.modal == enums.ModalConfirmation && modal != enums.ModalConfirmation {
		s.lastOrderID = ""
	}
	s.modal = modal
}

// ShowToast queues a notification and returns its id. A positive duration
// schedules automatic removal; zero uses the default; a negative duration
// keeps the toast until removed explicitly.
func (s *Store) ShowToast(kind enums.ToastKind, message string, duration time.Duration) string {
	if duration == 0 {
		duration = DefaultToastDuration
	}

	toast := Toast{ID: uuid.NewString(), Kind: kind, Message: message}

	s.mu.Lock()
	s.toasts = append(s.toasts, toast)
	if duration > 0 {
		s.timers[toast.ID] = time.AfterFunc(duration, func() {
			s.RemoveToast(toast.ID)
		})
	}
	s.notifyLocked()
	return toast.ID
}

// RemoveToast dismisses a toast. Removing an already-gone toast is a no-op,
// so an explicit dismiss racing the auto-expiry is harmless.
func (s *Store) RemoveToast(id string) {
	s.mu.Lock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i, toast := range s.toasts {
		if toast.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			s.notifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	toasts := make([]Toast, len(s.toasts))
	copy(toasts, s.toasts)
	return Snapshot{
		Modal:           s.modal,
		QuickView:       s.quickView,
		SelectedVariant: s.selectedVariant,
		LastOrderID:     s.lastOrderID,
		Toasts:          toasts,
	}
}

// notifyLocked releases the lock and fans the new snapshot out to listeners.
func (s *Store) notifyLocked() {
	snapshot := s.snapshotLocked()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}
