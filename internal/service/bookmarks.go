package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/store"
)

// SearchCache memoises search results per owner. LookupSearch returns a
// key to pass to FillSearch on a miss.
type SearchCache interface {
	LookupSearch(ctx context.Context, q domain.Query) ([]*domain.Bookmark, string, bool, error)
	FillSearch(ctx context.Context, key string, results []*domain.Bookmark) error
	InvalidateOwner(ctx context.Context, ownerID string) error
}

// BookmarkInput is the user supplied part of a bookmark save.
type BookmarkInput struct {
	Href        string
	Title       string
	Description string
	// Collections are paths of existing collections of the owner.
	Collections []string
	// NewCollection, when set, names a collection to create (or reuse)
	// and add the bookmark to.
	NewCollection string
}

// BookmarkService runs the bookmark write path and owner-scoped searches.
type BookmarkService struct {
	bookmarks   store.Bookmarks
	collections *CollectionService
	cache       SearchCache
	log         logger.Logger
	now         func() time.Time
}

// NewBookmarkService constructs a BookmarkService. cache may be nil.
func NewBookmarkService(bookmarks store.Bookmarks, collections *CollectionService, cache SearchCache, log logger.Logger) *BookmarkService {
	return &BookmarkService{
		bookmarks:   bookmarks,
		collections: collections,
		cache:       cache,
		log:         log,
		now:         time.Now,
	}
}

// Create normalizes and stores a new bookmark. Title defaults to the href.
func (s *BookmarkService) Create(ctx context.Context, ownerID string, in BookmarkInput) (*domain.Bookmark, error) {
	paths, err := s.checkCollections(ctx, ownerID, in.Collections)
	if err != nil {
		return nil, err
	}
	b, err := domain.NewBookmark(ownerID, in.Href, in.Title, in.Description, paths).Prepare()
	if err != nil {
		return nil, err
	}
	if b.Collections, err = s.addNewCollection(ctx, ownerID, in.NewCollection, b.Collections); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	b.ID = uuid.NewString()
	b.Created = now
	b.Updated = now

	if err := s.bookmarks.Create(ctx, &b); err != nil {
		return nil, fmt.Errorf("create bookmark: %w", err)
	}
	invalidate(ctx, s.cache, s.log, ownerID)
	s.log.Debug("bookmark created",
		logger.String("id", b.ID),
		logger.String("hostname", b.URL.Hostname))
	return &b, nil
}

// Update overwrites the user supplied fields of an owned bookmark. An
// empty title falls back to the href, as on creation.
func (s *BookmarkService) Update(ctx context.Context, ownerID, id string, in BookmarkInput) (*domain.Bookmark, error) {
	cur, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	paths, err := s.checkCollections(ctx, ownerID, in.Collections)
	if err != nil {
		return nil, err
	}

	edited := domain.NewBookmark(ownerID, in.Href, in.Title, in.Description, paths)
	next := *cur
	next.Href = edited.Href
	next.Title = edited.Title
	next.Description = edited.Description
	next.Collections = edited.Collections

	b, err := next.Prepare()
	if err != nil {
		return nil, err
	}
	if b.Collections, err = s.addNewCollection(ctx, ownerID, in.NewCollection, b.Collections); err != nil {
		return nil, err
	}
	b.Updated = s.now().UTC()

	if err := s.bookmarks.Update(ctx, &b); err != nil {
		return nil, err
	}
	invalidate(ctx, s.cache, s.log, ownerID)
	return &b, nil
}

// Delete removes an owned bookmark.
func (s *BookmarkService) Delete(ctx context.Context, ownerID, id string) error {
	if !issuedID(id) {
		return errs.ErrNotFound
	}
	if err := s.bookmarks.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log, ownerID)
	return nil
}

// Get loads one owned bookmark.
func (s *BookmarkService) Get(ctx context.Context, ownerID, id string) (*domain.Bookmark, error) {
	if !issuedID(id) {
		return nil, errs.ErrNotFound
	}
	return s.bookmarks.Get(ctx, ownerID, id)
}

// issuedID reports whether id has the shape of an id Create hands out.
// Anything else cannot resolve, whatever the backend.
func issuedID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Search builds the owner-scoped query for params and executes it, newest
// first. Cache failures are logged and fall through to the store.
func (s *BookmarkService) Search(ctx context.Context, ownerID string, params domain.SearchParams) ([]*domain.Bookmark, error) {
	q := domain.BuildQuery(ownerID, params)
	if s.cache == nil {
		return s.search(ctx, q)
	}

	cached, key, hit, err := s.cache.LookupSearch(ctx, q)
	switch {
	case err != nil:
		s.log.Warn("search cache lookup failed", logger.Error(err))
		return s.search(ctx, q)
	case hit:
		return cached, nil
	}

	out, err := s.search(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.cache.FillSearch(ctx, key, out); err != nil {
		s.log.Warn("search cache fill failed", logger.Error(err))
	}
	return out, nil
}

func (s *BookmarkService) search(ctx context.Context, q domain.Query) ([]*domain.Bookmark, error) {
	out, err := s.bookmarks.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search bookmarks: %w", err)
	}
	return out, nil
}

// Hostnames lists the distinct hostnames of the owner's bookmarks.
func (s *BookmarkService) Hostnames(ctx context.Context, ownerID string) ([]string, error) {
	return s.bookmarks.Hostnames(ctx, ownerID)
}

// checkCollections cleans paths and rejects any the owner has no
// collection for.
func (s *BookmarkService) checkCollections(ctx context.Context, ownerID string, paths []string) ([]string, error) {
	paths = domain.CleanPaths(paths)
	missing, err := s.collections.unknown(ctx, ownerID, paths)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, errs.Invalid("collections", "unknown collection "+strings.Join(missing, ", "))
	}
	return paths, nil
}

// addNewCollection creates (or reuses) the named collection and appends
// its path. It runs after the bookmark validated, and is not rolled back
// if the bookmark write then fails.
func (s *BookmarkService) addNewCollection(ctx context.Context, ownerID, name string, paths []string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return paths, nil
	}
	c, err := s.collections.Ensure(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	return domain.CleanPaths(append(paths, c.Path)), nil
}

// invalidate drops the owner's cached searches. A failure is logged and
// otherwise ignored; stale entries expire with the cache TTL.
func invalidate(ctx context.Context, cache SearchCache, log logger.Logger, ownerID string) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateOwner(ctx, ownerID); err != nil {
		log.Warn("search cache invalidation failed, results may be stale until the cache TTL",
			logger.String("owner_id", ownerID),
			logger.Error(err))
	}
}
