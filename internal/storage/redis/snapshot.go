// Package redis caches in-progress career snapshots in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/cory-johannsen/umacareer/internal/config"
	"github.com/cory-johannsen/umacareer/internal/game/career"
)

// Key pattern: career:snapshot:{career_id}
const snapshotKeyPrefix = "career:snapshot:"

// DefaultTTL applies when a store is built with a non-positive TTL.
const DefaultTTL = 24 * time.Hour

// ErrSnapshotNotFound is returned when no snapshot is cached for a career.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// NewClient connects to the Redis server described by cfg.
//
// Precondition: cfg.Enabled().
// Postcondition: Returns a client that answered PING, or an error.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("redis: addr is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// SnapshotStore caches career.State values with a TTL.
type SnapshotStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewSnapshotStore creates a SnapshotStore.
//
// Precondition: client must be non-nil.
func NewSnapshotStore(client goredis.Cmdable, ttl time.Duration) *SnapshotStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SnapshotStore{client: client, ttl: ttl}
}

func snapshotKey(id uuid.UUID) string {
	return snapshotKeyPrefix + id.String()
}

// Put stores state under its career ID, replacing any previous snapshot and
// resetting the TTL.
func (s *SnapshotStore) Put(ctx context.Context, state career.State) error {
	if state.ID == uuid.Nil {
		return errors.New("put snapshot: career id must be set")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := s.client.Set(ctx, snapshotKey(state.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing snapshot %s: %w", state.ID, err)
	}
	return nil
}

// Get returns the cached snapshot for career id.
//
// Postcondition: Returns ErrSnapshotNotFound when absent or expired.
func (s *SnapshotStore) Get(ctx context.Context, id uuid.UUID) (career.State, error) {
	data, err := s.client.Get(ctx, snapshotKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return career.State{}, ErrSnapshotNotFound
		}
		return career.State{}, fmt.Errorf("loading snapshot %s: %w", id, err)
	}
	var state career.State
	if err := json.Unmarshal(data, &state); err != nil {
		return career.State{}, fmt.Errorf("decoding snapshot %s: %w", id, err)
	}
	return state, nil
}

// Delete removes the snapshot for career id. Deleting an absent snapshot is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, snapshotKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", id, err)
	}
	return nil
}
