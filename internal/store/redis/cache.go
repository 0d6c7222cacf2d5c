package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// LookupSearch returns the cached result of q. The returned key must be
// passed to FillSearch on a miss: it pins the generation observed before
// the store was queried, so a write landing in between is never hidden.
func (s *Store) LookupSearch(ctx context.Context, q domain.Query) (results []*domain.Bookmark, key string, hit bool, err error) {
	gen, err := s.generation(ctx, q.OwnerID)
	if err != nil {
		return nil, "", false, err
	}
	key = SearchKey(q.OwnerID, gen, fingerprint(q))

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, key, false, nil // Cache miss
		}
		return nil, key, false, fmt.Errorf("failed to get cached search: %w", err)
	}

	if err := json.Unmarshal(data, &results); err != nil {
		return nil, key, false, fmt.Errorf("failed to unmarshal cached search: %w", err)
	}
	return results, key, true, nil
}

// FillSearch stores results under a key obtained from LookupSearch
func (s *Store) FillSearch(ctx context.Context, key string, results []*domain.Bookmark) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to marshal search results: %w", err)
	}
	if err := s.client.Set(ctx, key, data, s.searchTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache search: %w", err)
	}
	return nil
}

// InvalidateOwner bumps the owner's generation, orphaning every cached
// search. Orphans expire on their own TTL.
func (s *Store) InvalidateOwner(ctx context.Context, ownerID string) error {
	key := GenerationKey(ownerID)

	pipe := s.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, DefaultGenerationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate search cache: %w", err)
	}
	return nil
}

func (s *Store) generation(ctx context.Context, ownerID string) (int64, error) {
	gen, err := s.client.Get(ctx, GenerationKey(ownerID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// fingerprint identifies the user supplied parts of q.
func fingerprint(q domain.Query) string {
	h := sha256.New()
	h.Write([]byte(q.Collection))
	h.Write([]byte{0})
	if q.Hostname != nil {
		h.Write([]byte(q.Hostname.Raw))
	}
	h.Write([]byte{0})
	if q.Keyword != nil {
		h.Write([]byte(q.Keyword.Raw))
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
