package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
)

// BookmarkRepo implements store.Bookmarks.
type BookmarkRepo struct{ db *DB }

// NewBookmarkRepo constructs a bookmark repository over db.
func NewBookmarkRepo(db *DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

// Create stores a copy of b.
func (r *BookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.bookmarks[b.ID]; exists {
		return fmt.Errorf("bookmark %s: %w", b.ID, errs.ErrAlreadyExists)
	}
	r.db.bookmarks[b.ID] = cloneBookmark(b)
	r.db.order = append(r.db.order, b.ID)
	return nil
}

// Update replaces the stored bookmark. Created is never overwritten.
func (r *BookmarkRepo) Update(ctx context.Context, b *domain.Bookmark) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.bookmarks[b.ID]
	if !ok || cur.OwnerID != b.OwnerID {
		return errs.ErrNotFound
	}
	next := cloneBookmark(b)
	next.Created = cur.Created
	r.db.bookmarks[b.ID] = next
	return nil
}

// Delete removes the bookmark.
func (r *BookmarkRepo) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	cur, ok := r.db.bookmarks[id]
	if !ok || cur.OwnerID != ownerID {
		return errs.ErrNotFound
	}
	delete(r.db.bookmarks, id)
	for i, v := range r.db.order {
		if v == id {
			r.db.order = append(r.db.order[:i], r.db.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the bookmark.
func (r *BookmarkRepo) Get(ctx context.Context, ownerID, id string) (*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	b, ok := r.db.bookmarks[id]
	if !ok || b.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return cloneBookmark(b), nil
}

// Search evaluates q over the owner's bookmarks in insertion order, then
// sorts newest first.
func (r *BookmarkRepo) Search(ctx context.Context, q domain.Query) ([]*domain.Bookmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*domain.Bookmark, 0)
	for _, id := range r.db.order {
		b := r.db.bookmarks[id]
		if q.Match(b) {
			out = append(out, cloneBookmark(b))
		}
	}
	domain.SortNewestFirst(out)
	return out, nil
}

// Hostnames returns the owner's distinct hostnames, sorted.
func (r *BookmarkRepo) Hostnames(ctx context.Context, ownerID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, b := range r.db.bookmarks {
		if b.OwnerID == ownerID && b.URL.Hostname != "" {
			seen[b.URL.Hostname] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	sort.Strings(out)
	return out, nil
}
