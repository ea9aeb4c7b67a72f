package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLPrefs   = 5 * time.Minute // preference lists (mutes, ignores, allow-list)
	TTLOptions = 5 * time.Minute // per-member PM option flags
	TTLDefault = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixMutes     = "prefs:mutes:"
	PrefixIgnores   = "prefs:ignores:"
	PrefixAllowList = "prefs:allowlist:"
	PrefixOptions   = "prefs:options:"
)

// ErrCacheMiss is returned when a key is not present
var ErrCacheMiss = errors.New("cache miss")

// Service Redis cache for preference reads.
// The communication screener never reads from here: it always loads a fresh
// snapshot per evaluation. Only the preference list/read endpoints are cached,
// and every preference write invalidates the owner's keys.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// InvalidateMemberPrefs drops every cached preference entry for a member
	InvalidateMemberPrefs(ctx context.Context, userID string) error
}

type service struct {
	client *redis.Client
}

// NewService creates a cache service backed by the given Redis client
func NewService(client *redis.Client) Service {
	return &service{client: client}
}

// Get reads a JSON value into dest
func (s *service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get failed: %w", err)
	}
	return json.Unmarshal(data, dest)
}

// Set stores a value as JSON with the given TTL
func (s *service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys
func (s *service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// InvalidateMemberPrefs drops every cached preference entry for a member
func (s *service) InvalidateMemberPrefs(ctx context.Context, userID string) error {
	return s.Delete(ctx,
		PrefixMutes+userID,
		PrefixIgnores+userID,
		PrefixAllowList+userID,
		PrefixOptions+userID,
	)
}
