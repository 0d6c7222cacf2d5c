package memory

import (
	"context"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
)

// UserRepo implements store.Users.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository over db.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create stores u unless the username is taken.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.users {
		if existing.Username == u.Username {
			return errs.ErrAlreadyExists
		}
	}
	r.db.users[u.ID] = cloneUser(u)
	return nil
}

// GetByID loads a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return cloneUser(u), nil
}

// GetByUsername loads a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, errs.ErrNotFound
}
