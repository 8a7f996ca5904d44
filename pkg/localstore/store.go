package localstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/acewig/storefront/pkg/config"
	pkgerrors "github.com/acewig/storefront/pkg/errors"
	"github.com/acewig/storefront/pkg/logger"
)

// ErrNotFound is returned when a key has no entry.
var ErrNotFound = errors.New("localstore: key not found")

// Entry is a single durable key-value row. The layer stores opaque JSON blobs
// (session id, wishlist envelope) under well-known keys.
type Entry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of GORM's pluralization.
func (Entry) TableName() string {
	return "entries"
}

// Store wraps the SQLite-backed durable key-value store.
type Store struct {
	conn *gorm.DB
}

// Open boots the store at the configured path and migrates the entries table.
func Open(ctx context.Context, cfg config.LocalStoreConfig, logg *logger.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("local store path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	if err := conn.WithContext(ctx).AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrating local store: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "path", cfg.Path), "local store opened")
	}

	return &Store{conn: conn}, nil
}

// Get returns the value stored at key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var entry Entry
	err := s.conn.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "read local store")
	}
	return entry.Value, nil
}

// Put upserts the value at key.
func (s *Store) Put(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.conn.WithContext(ctx).Save(&entry).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "write local store")
	}
	return nil
}

// Delete removes the entry at key. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "delete local store entry")
	}
	return nil
}

// Ping verifies the datasource is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close shuts down the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
