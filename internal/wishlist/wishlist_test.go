package wishlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/acewig/storefront/internal/catalog"
	"github.com/acewig/storefront/pkg/config"
	"github.com/acewig/storefront/pkg/localstore"
)

func openTestStore(t *testing.T, path string) *localstore.Store {
	t.Helper()
	store, err := localstore.Open(context.Background(), config.LocalStoreConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func product(id, name string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Price: decimal.NewFromInt(45)}
}

func TestLoadEmptyStore(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "w.db"))

	list, err := Load(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if list.Count() != 0 {
		t.Fatalf("expected empty wishlist, got %d", list.Count())
	}
}

func TestAddRemoveContains(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "w.db"))
	ctx := context.Background()

	list, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	list.Add(ctx, product("p1", "Lace Front"))
	list.Add(ctx, product("p2", "Bob Wig"))
	list.Add(ctx, product("p1", "Lace Front (duplicate)"))

	if !list.Contains("p1") || !list.Contains("p2") {
		t.Fatal("expected both products saved")
	}
	got := list.Items()
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected deduplicated insertion order, got %v", got)
	}
	if got[0].Name != "Lace Front" {
		t.Fatalf("expected first snapshot kept on duplicate add, got %q", got[0].Name)
	}

	list.Remove(ctx, "p1")
	list.Remove(ctx, "p1")
	if list.Contains("p1") {
		t.Fatal("expected p1 removed")
	}
	if list.Count() != 1 {
		t.Fatalf("expected one item, got %d", list.Count())
	}
}

func TestToggle(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "w.db"))
	ctx := context.Background()

	list, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if saved := list.Toggle(ctx, product("p1", "Lace Front")); !saved {
		t.Fatal("expected toggle to save")
	}
	if saved := list.Toggle(ctx, product("p1", "Lace Front")); saved {
		t.Fatal("expected toggle to remove")
	}
	if list.Count() != 0 {
		t.Fatalf("expected empty wishlist, got %d", list.Count())
	}
}

func TestWishlistSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.db")
	ctx := context.Background()

	store, err := localstore.Open(ctx, config.LocalStoreConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	list, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	list.Add(ctx, product("p1", "Lace Front"))
	list.Add(ctx, product("p2", "Bob Wig"))
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openTestStore(t, path)
	restored, err := Load(ctx, reopened, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := restored.Items()
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected persisted wishlist, got %v", got)
	}
	if got[1].Name != "Bob Wig" || !got[1].Price.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected full snapshot persisted, got %+v", got[1])
	}
}

func TestCorruptEntryStartsEmpty(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "w.db"))
	ctx := context.Background()

	if err := store.Put(ctx, Key, "{not json"); err != nil {
		t.Fatalf("put: %v", err)
	}

	list, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if list.Count() != 0 {
		t.Fatalf("expected empty wishlist after corrupt entry, got %d", list.Count())
	}

	// The next write replaces the corrupt payload.
	list.Add(ctx, product("p1", "Lace Front"))
	reloaded, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.Contains("p1") {
		t.Fatal("expected rewritten wishlist to persist")
	}
}

func TestUnknownVersionStartsEmpty(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "w.db"))
	ctx := context.Background()

	if err := store.Put(ctx, Key, `{"version":99,"items":[{"id":"p1"}]}`); err != nil {
		t.Fatalf("put: %v", err)
	}

	list, err := Load(ctx, store, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if list.Count() != 0 {
		t.Fatalf("expected unknown version ignored, got %d items", list.Count())
	}
}
