package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/acewig/storefront/pkg/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), config.LocalStoreConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestGetMissingKeyReturnsNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutThenGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "acewig_session_id", "abc-123"); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, err := store.Get(ctx, "acewig_session_id")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "abc-123" {
		t.Fatalf("expected stored value, got %q", value)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}
	value, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "v2" {
		t.Fatalf("expected overwritten value, got %q", value)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestValueSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	store, err := Open(ctx, config.LocalStoreConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Put(ctx, "acewig_session_id", "stable-id"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, config.LocalStoreConfig{Path: path}, nil)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get(ctx, "acewig_session_id")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if value != "stable-id" {
		t.Fatalf("expected persisted value, got %q", value)
	}
}
