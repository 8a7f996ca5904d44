package session

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/acewig/storefront/pkg/localstore"
	"github.com/acewig/storefront/pkg/logger"
)

// Key is the well-known local store entry holding the session identity.
const Key = "acewig_session_id"

// Manager owns the client-generated identity that scopes the anonymous cart.
// The id is created once and reused for as long as the local store survives.
type Manager struct {
	store *localstore.Store
	id    string
}

// Load returns a manager with the persisted session id, generating and
// persisting a fresh one when none exists or the stored value is unreadable.
func Load(ctx context.Context, store *localstore.Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}

	value, err := store.Get(ctx, Key)
	if err == nil {
		if _, parseErr := uuid.Parse(value); parseErr == nil {
			return &Manager{store: store, id: value}, nil
		}
		if logg != nil {
			logg.Warn(ctx, "stored session id unreadable, regenerating")
		}
	} else if !errors.Is(err, localstore.ErrNotFound) {
		return nil, err
	}

	id := uuid.NewString()
	if err := store.Put(ctx, Key, id); err != nil {
		return nil, err
	}
	if logg != nil {
		logg.Info(logg.WithSessionID(ctx, id), "session identity created")
	}
	return &Manager{store: store, id: id}, nil
}

// ID returns the stable session identifier.
func (m *Manager) ID() string {
	if m == nil {
		return ""
	}
	return m.id
}
