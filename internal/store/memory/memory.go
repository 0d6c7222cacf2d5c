// Package memory is an in-process implementation of the store contracts.
// It backs MARKS_STORE=memory and the service and handler tests.
package memory

import (
	"context"
	"sync"

	"github.com/MrSnakeDoc/marks/internal/domain"
)

// DB holds every record behind one lock so that cross-entity operations
// (collection delete cleaning bookmarks) stay consistent.
type DB struct {
	mu sync.RWMutex

	bookmarks map[string]*domain.Bookmark // ID -> Bookmark
	order     []string                    // bookmark IDs in insertion order

	collections map[string]*domain.Collection // owner/path -> Collection
	users       map[string]*domain.User       // ID -> User
}

// New creates an empty database.
func New() *DB {
	return &DB{
		bookmarks:   make(map[string]*domain.Bookmark),
		collections: make(map[string]*domain.Collection),
		users:       make(map[string]*domain.User),
	}
}

// Ping always succeeds.
func (db *DB) Ping(context.Context) error { return nil }

// Counts returns the number of stored bookmarks, collections and users.
func (db *DB) Counts() (bookmarks, collections, users int) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.bookmarks), len(db.collections), len(db.users)
}

func collectionKey(ownerID, path string) string {
	return ownerID + "/" + path
}

func cloneBookmark(b *domain.Bookmark) *domain.Bookmark {
	c := *b
	c.Collections = append([]string(nil), b.Collections...)
	return &c
}

func cloneCollection(c *domain.Collection) *domain.Collection {
	cp := *c
	return &cp
}

func cloneUser(u *domain.User) *domain.User {
	cp := *u
	cp.PasswordHash = append([]byte(nil), u.PasswordHash...)
	cp.Salt = append([]byte(nil), u.Salt...)
	return &cp
}
