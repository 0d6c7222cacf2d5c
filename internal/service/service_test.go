package service

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/store/memory"
)

type env struct {
	db          *memory.DB
	bookmarks   *BookmarkService
	collections *CollectionService
	cache       *fakeCache
}

// newEnv wires the services over a fresh memory store with a clock that
// advances one second per call.
func newEnv(withCache bool) *env {
	db := memory.New()
	e := &env{db: db}

	var cache SearchCache
	if withCache {
		e.cache = newFakeCache()
		cache = e.cache
	}
	e.collections = NewCollectionService(memory.NewCollectionRepo(db), cache, logger.Nop())
	e.bookmarks = NewBookmarkService(memory.NewBookmarkRepo(db), e.collections, cache, logger.Nop())

	clock := tickingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	e.bookmarks.now = clock
	e.collections.now = clock
	return e
}

func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// fakeCache is a SearchCache with the same generation semantics as the
// Redis implementation.
type fakeCache struct {
	mu      sync.Mutex
	gen     map[string]int
	entries map[string][]*domain.Bookmark

	lookups, hits, invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{gen: map[string]int{}, entries: map[string][]*domain.Bookmark{}}
}

func (c *fakeCache) key(q domain.Query) string {
	k := q.OwnerID + "|" + q.Collection
	if q.Hostname != nil {
		k += "|h=" + q.Hostname.Raw
	}
	if q.Keyword != nil {
		k += "|k=" + q.Keyword.Raw
	}
	return k + "|" + string(rune('0'+c.gen[q.OwnerID]))
}

func (c *fakeCache) LookupSearch(_ context.Context, q domain.Query) ([]*domain.Bookmark, string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	k := c.key(q)
	v, ok := c.entries[k]
	if ok {
		c.hits++
	}
	return v, k, ok, nil
}

func (c *fakeCache) FillSearch(_ context.Context, key string, results []*domain.Bookmark) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = results
	return nil
}

func (c *fakeCache) InvalidateOwner(_ context.Context, ownerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen[ownerID]++
	c.invalidations++
	return nil
}

func hrefs(bs []*domain.Bookmark) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.Href)
	}
	return out
}
