package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dollro/authclient/core/persist"
)

// defaultKeyPrefix namespaces session snapshot keys in a shared Redis.
const defaultKeyPrefix = "authclient:"

// Store persists session snapshots in Redis, implementing persist.Store.
// It suits headless processes that share one session across a fleet, where a
// local state file would not be visible to every instance.
type Store struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides the key prefix. Defaults to "authclient:".
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		s.key = prefix + persist.DefaultNamespace
	}
}

// WithTTL expires the snapshot after the given duration. Zero (the default)
// keeps it until cleared.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore creates a Redis-backed snapshot store on an established client.
func NewStore(client *redis.Client, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		key:    defaultKeyPrefix + persist.DefaultNamespace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements persist.Store.
func (s *Store) Load(ctx context.Context) (persist.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return persist.Snapshot{}, persist.ErrNotFound
	}
	if err != nil {
		return persist.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snap persist.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return persist.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save implements persist.Store.
func (s *Store) Save(ctx context.Context, snap persist.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Clear implements persist.Store.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
