package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"itinerary-engine/internal/platform/obs"
	"itinerary-engine/internal/ports"
)

// RedisDocumentStore implements the DocumentStore port over Redis, holding
// JSON documents (trip plans, fatigue snapshots) keyed by the caller.
//
// Corrupt stored JSON is reported as absent, never as an error: the engine
// reinitializes defaults instead of failing the caller.
type RedisDocumentStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDocumentStore connects to Redis at addr. A zero ttl stores
// documents without expiry.
func NewRedisDocumentStore(addr string, ttl time.Duration) (*RedisDocumentStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis document store: ping %s: %w", addr, err)
	}

	return &RedisDocumentStore{client: client, ttl: ttl}, nil
}

// Get unmarshals the document at key into v, or returns ports.ErrNotFound.
func (s *RedisDocumentStore) Get(ctx context.Context, key string, v any) (err error) {
	defer obs.Time(ctx, "docstore.Get")(&err)

	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("document store get %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		// Treat corrupt persisted state as absent so callers reinitialize.
		log.Printf("document store: corrupt JSON at key=%s, treating as absent: %v", key, err)
		return ports.ErrNotFound
	}
	return nil
}

// Set marshals v and stores it at key, replacing any prior value.
func (s *RedisDocumentStore) Set(ctx context.Context, key string, v any) (err error) {
	defer obs.Time(ctx, "docstore.Set")(&err)

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("document store set %q: marshal: %w", key, err)
	}

	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("document store set %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisDocumentStore) Close() error { return s.client.Close() }
