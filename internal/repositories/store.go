package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mvx/internal/shared"
	"github.com/redis/go-redis/v9"
)

// KeyValueStore is a string key-value store holding serialized documents.
type KeyValueStore interface {
	// Get returns the value for key. The boolean is false when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources owned by the store.
	Close() error
}

var (
	_ KeyValueStore = (*SQLiteStore)(nil)
	_ KeyValueStore = (*RedisStore)(nil)
)

// SQLiteStore implements [KeyValueStore] on the local_storage table.
//
// The database handle is owned by the caller; Close is a no-op.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore with the given database connection
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get reads one key from local_storage.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read key %s: %w", shared.ErrStorage, key, err)
	}
	return value, true, nil
}

// Set upserts one key into local_storage.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("%w: failed to write key %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}

// Delete removes one key from local_storage.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM local_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("%w: failed to delete key %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return nil }

// RedisStore implements [KeyValueStore] on plain redis string keys, namespaced by a prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedisStore connects to the server described by cfg and verifies it answers PING.
func DialRedisStore(ctx context.Context, cfg shared.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to reach redis at %s: %w", shared.ErrStorage, cfg.Address, err)
	}

	return NewRedisStore(client, cfg.Prefix), nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: failed to read key %s: %w", shared.ErrStorage, key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to write key %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete key %s: %w", shared.ErrStorage, key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// OpenStore returns the [KeyValueStore] selected by cfg.Storage.Driver.
//
// The sqlite driver reuses db, which must already be migrated.
func OpenStore(ctx context.Context, cfg *shared.Config, db *sql.DB) (KeyValueStore, error) {
	switch cfg.Storage.Driver {
	case "", "sqlite":
		if db == nil {
			return nil, fmt.Errorf("%w: sqlite driver needs an open database", shared.ErrStorage)
		}
		return NewSQLiteStore(db), nil
	case "redis":
		return DialRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownStorage, cfg.Storage.Driver)
	}
}
