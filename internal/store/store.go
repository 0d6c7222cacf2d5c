// Package store defines the persistence contracts implemented by the
// memory and postgres backends. Every method is scoped to an owner.
package store

import (
	"context"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// Bookmarks persists bookmarks. Implementations return errs.ErrNotFound
// when an id does not resolve under the given owner.
type Bookmarks interface {
	// Create inserts a prepared bookmark. ID and Created must be set.
	Create(ctx context.Context, b *domain.Bookmark) error
	// Update overwrites a prepared bookmark, last write wins.
	Update(ctx context.Context, b *domain.Bookmark) error
	// Delete removes a bookmark.
	Delete(ctx context.Context, ownerID, id string) error
	// Get loads a single bookmark.
	Get(ctx context.Context, ownerID, id string) (*domain.Bookmark, error)
	// Search executes q, newest first.
	Search(ctx context.Context, q domain.Query) ([]*domain.Bookmark, error)
	// Hostnames lists the distinct url hostnames of the owner's bookmarks.
	Hostnames(ctx context.Context, ownerID string) ([]string, error)
}

// Collections persists collections. Create returns errs.ErrAlreadyExists
// when the owner already has a collection with the same path.
type Collections interface {
	Create(ctx context.Context, c *domain.Collection) error
	Update(ctx context.Context, c *domain.Collection) error
	// Delete removes the collection and strips its path from the owner's
	// bookmarks.
	Delete(ctx context.Context, ownerID, path string) error
	Get(ctx context.Context, ownerID, path string) (*domain.Collection, error)
	List(ctx context.Context, ownerID string) ([]*domain.Collection, error)
}

// Users persists accounts. Create returns errs.ErrAlreadyExists for a
// taken username.
type Users interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}
