package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/store"
)

// CollectionInput is the user supplied part of a collection.
type CollectionInput struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// CollectionService manages the owner's collections.
type CollectionService struct {
	collections store.Collections
	cache       SearchCache
	log         logger.Logger
	now         func() time.Time
}

// NewCollectionService constructs a CollectionService. cache may be nil.
func NewCollectionService(collections store.Collections, cache SearchCache, log logger.Logger) *CollectionService {
	return &CollectionService{collections: collections, cache: cache, log: log, now: time.Now}
}

// Create saves a new collection. A second collection whose name slugs to
// an existing path fails validation.
func (s *CollectionService) Create(ctx context.Context, ownerID string, in CollectionInput) (*domain.Collection, error) {
	c, err := domain.Collection{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
	}.Prepare()
	if err != nil {
		return nil, err
	}
	c.ID = uuid.NewString()
	c.Created = s.now().UTC()

	if err := s.collections.Create(ctx, &c); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return nil, errs.NewValidationError().
				Add("name", fmt.Sprintf("a collection with path %q already exists", c.Path)).
				Wrap(err)
		}
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &c, nil
}

// Ensure returns the owner's collection for name, creating it when the
// slugged path is not taken yet.
func (s *CollectionService) Ensure(ctx context.Context, ownerID, name string) (*domain.Collection, error) {
	path := domain.Slugify(name)
	if path != "" {
		existing, err := s.collections.Get(ctx, ownerID, path)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, errs.ErrNotFound) {
			return nil, fmt.Errorf("load collection: %w", err)
		}
	}
	c, err := s.Create(ctx, ownerID, CollectionInput{Name: name})
	if errors.Is(err, errs.ErrAlreadyExists) {
		// lost a race with a concurrent create
		return s.collections.Get(ctx, ownerID, path)
	}
	return c, err
}

// Update renames or re-describes a collection. Its path never changes.
func (s *CollectionService) Update(ctx context.Context, ownerID, path string, in CollectionInput) (*domain.Collection, error) {
	cur, err := s.collections.Get(ctx, ownerID, path)
	if err != nil {
		return nil, err
	}
	next := *cur
	next.Name = in.Name
	next.Description = strings.TrimSpace(in.Description)

	c, err := next.Prepare()
	if err != nil {
		return nil, err
	}
	if err := s.collections.Update(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the collection and its path from every member bookmark.
func (s *CollectionService) Delete(ctx context.Context, ownerID, path string) error {
	if err := s.collections.Delete(ctx, ownerID, path); err != nil {
		return err
	}
	invalidate(ctx, s.cache, s.log, ownerID)
	return nil
}

// Get loads one collection.
func (s *CollectionService) Get(ctx context.Context, ownerID, path string) (*domain.Collection, error) {
	return s.collections.Get(ctx, ownerID, path)
}

// List returns the owner's collections ordered by name.
func (s *CollectionService) List(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	return s.collections.List(ctx, ownerID)
}

// unknown returns the entries of paths the owner has no collection for.
func (s *CollectionService) unknown(ctx context.Context, ownerID string, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	all, err := s.collections.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	have := make(map[string]struct{}, len(all))
	for _, c := range all {
		have[c.Path] = struct{}{}
	}
	var missing []string
	for _, p := range paths {
		if _, ok := have[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing, nil
}
