// Package redis keeps the optional Redis-backed state: the per-owner
// search cache and the revoked token list.
package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSearchTTL bounds how long a cached search survives (10 minutes)
	DefaultSearchTTL = 10 * time.Minute
	// DefaultGenerationTTL keeps idle owners from pinning a counter forever (30 days)
	DefaultGenerationTTL = 30 * 24 * time.Hour
)

// Store handles Redis operations for the search cache and token denylist
type Store struct {
	client    *redis.Client
	searchTTL time.Duration
}

// NewStore creates a new Redis store. A non-positive searchTTL selects
// DefaultSearchTTL.
func NewStore(client *redis.Client, searchTTL time.Duration) *Store {
	if searchTTL <= 0 {
		searchTTL = DefaultSearchTTL
	}
	return &Store{
		client:    client,
		searchTTL: searchTTL,
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
