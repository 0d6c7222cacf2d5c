package memory

import (
	"context"
	"sort"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
)

// CollectionRepo implements store.Collections.
type CollectionRepo struct{ db *DB }

// NewCollectionRepo constructs a collection repository over db.
func NewCollectionRepo(db *DB) *CollectionRepo { return &CollectionRepo{db: db} }

// Create stores c unless the owner already uses its path.
func (r *CollectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := collectionKey(c.OwnerID, c.Path)
	if _, exists := r.db.collections[key]; exists {
		return errs.ErrAlreadyExists
	}
	r.db.collections[key] = cloneCollection(c)
	return nil
}

// Update changes name and description. The path is the lookup key and
// cannot change.
func (r *CollectionRepo) Update(ctx context.Context, c *domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.collections[collectionKey(c.OwnerID, c.Path)]
	if !ok {
		return errs.ErrNotFound
	}
	cur.Name = c.Name
	cur.Description = c.Description
	return nil
}

// Delete removes the collection and its path from the owner's bookmarks.
func (r *CollectionRepo) Delete(ctx context.Context, ownerID, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := collectionKey(ownerID, path)
	if _, ok := r.db.collections[key]; !ok {
		return errs.ErrNotFound
	}
	delete(r.db.collections, key)

	for _, b := range r.db.bookmarks {
		if b.OwnerID == ownerID {
			b.RemoveCollection(path)
		}
	}
	return nil
}

// Get returns the owner's collection with path.
func (r *CollectionRepo) Get(ctx context.Context, ownerID, path string) (*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.collections[collectionKey(ownerID, path)]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return cloneCollection(c), nil
}

// List returns the owner's collections ordered by name.
func (r *CollectionRepo) List(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*domain.Collection, 0)
	for _, c := range r.db.collections {
		if c.OwnerID == ownerID {
			out = append(out, cloneCollection(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
