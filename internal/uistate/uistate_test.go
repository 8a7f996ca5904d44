package uistate

import (
	"testing"
	"time"

	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/pkg/enums"
)

func productWithVariants(defaultIdx int) catalog.Product {
	variants := []catalog.ProductVariant{
		{ID: "v1", Name: "12 inch"},
		{ID: "v2", Name: "14 inch"},
	}
	if defaultIdx >= 0 {
		variants[defaultIdx].IsDefault = true
	}
	return catalog.Product{ID: "p1", Name: "Lace Front", Variants: variants}
}

func TestModalExclusivity(t *testing.T) {
	store := NewStore()

	store.OpenCart()
	if got := store.Snapshot().Modal; got != enums.ModalCart {
		t.Fatalf("expected cart modal, got %q", got)
	}

	store.OpenCheckout()
	snap := store.Snapshot()
	if snap.Modal != enums.ModalCheckout {
		t.Fatalf("expected checkout modal, got %q", snap.Modal)
	}

	store.CloseAll()
	if got := store.Snapshot().Modal; got != enums.ModalNone {
		t.Fatalf("expected no modal, got %q", got)
	}
}

func TestQuickViewVariantSelection(t *testing.T) {
	store := NewStore()

	store.OpenQuickView(productWithVariants(1))
	snap := store.Snapshot()
	if snap.Modal != enums.ModalQuickView {
		t.Fatalf("expected quick view, got %q", snap.Modal)
	}
	if snap.SelectedVariant == nil || snap.SelectedVariant.ID != "v2" {
		t.Fatalf("expected flagged default selected, got %+v", snap.SelectedVariant)
	}

	store.SelectVariant("v1")
	if got := store.Snapshot().SelectedVariant; got == nil || got.ID != "v1" {
		t.Fatalf("expected v1 selected, got %+v", got)
	}

	// Unknown ids leave the selection alone.
	store.SelectVariant("nope")
	if got := store.Snapshot().SelectedVariant; got == nil || got.ID != "v1" {
		t.Fatalf("expected selection unchanged, got %+v", got)
	}
}

func TestQuickViewFirstVariantFallback(t *testing.T) {
	store := NewStore()
	store.OpenQuickView(productWithVariants(-1))
	if got := store.Snapshot().SelectedVariant; got == nil || got.ID != "v1" {
		t.Fatalf("expected first variant fallback, got %+v", got)
	}
}

func TestQuickViewNoVariants(t *testing.T) {
	store := NewStore()
	store.OpenQuickView(catalog.Product{ID: "p1"})
	if got := store.Snapshot().SelectedVariant; got != nil {
		t.Fatalf("expected no selection, got %+v", got)
	}
}

func TestSwitchingModalClearsQuickView(t *testing.T) {
	store := NewStore()
	store.OpenQuickView(productWithVariants(0))
	store.OpenCart()

	snap := store.Snapshot()
	if snap.QuickView != nil || snap.SelectedVariant != nil {
		t.Fatalf("expected quick view state cleared, got %+v", snap)
	}
}

func TestConfirmationHoldsOrderID(t *testing.T) {
	store := NewStore()

	store.OpenConfirmation("ord-42")
	snap := store.Snapshot()
	if snap.Modal != enums.ModalConfirmation || snap.LastOrderID != "ord-42" {
		t.Fatalf("unexpected confirmation state %+v", snap)
	}

	store.CloseAll()
	if got := store.Snapshot().LastOrderID; got != "" {
		t.Fatalf("expected order id cleared on close, got %q", got)
	}
}

func TestToastsAutoExpire(t *testing.T) {
	store := NewStore()

	id := store.ShowToast(enums.ToastSuccess, "added to cart", 20*time.Millisecond)
	snap := store.Snapshot()
	if len(snap.Toasts) != 1 || snap.Toasts[0].ID != id {
		t.Fatalf("unexpected toasts %+v", snap.Toasts)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(store.Snapshot().Toasts) == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("toast never expired")
}

func TestRemoveToastIdempotent(t *testing.T) {
	store := NewStore()

	id := store.ShowToast(enums.ToastError, "checkout failed", -1)
	other := store.ShowToast(enums.ToastInfo, "order shipped", -1)

	store.RemoveToast(id)
	store.RemoveToast(id)

	snap := store.Snapshot()
	if len(snap.Toasts) != 1 || snap.Toasts[0].ID != other {
		t.Fatalf("expected only second toast left, got %+v", snap.Toasts)
	}
}

func TestToastsSurviveModalChanges(t *testing.T) {
	store := NewStore()
	store.ShowToast(enums.ToastWarning, "low stock", -1)

	store.OpenCart()
	store.CloseAll()

	if got := len(store.Snapshot().Toasts); got != 1 {
		t.Fatalf("expected toast retained across modal changes, got %d", got)
	}
}

func TestListenersObserveChanges(t *testing.T) {
	store := NewStore()

	var seen []enums.Modal
	store.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.Modal)
	})

	store.OpenCart()
	store.CloseAll()

	if len(seen) != 2 || seen[0] != enums.ModalCart || seen[1] != enums.ModalNone {
		t.Fatalf("unexpected listener sequence %v", seen)
	}
}
