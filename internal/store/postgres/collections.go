package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
)

// CollectionRepo implements store.Collections using PostgreSQL.
type CollectionRepo struct{ db *DB }

// NewCollectionRepo constructs a collection repository.
func NewCollectionRepo(db *DB) *CollectionRepo { return &CollectionRepo{db: db} }

const collectionColumns = `id::text, owner_id::text, name, description, path, created_at`

// Create inserts a collection; (owner_id, path) is unique.
func (r *CollectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	const q = `
INSERT INTO collections (id, owner_id, name, description, path, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.OwnerID, c.Name, c.Description, c.Path, c.Created)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Update renames or re-describes a collection. The path never changes.
func (r *CollectionRepo) Update(ctx context.Context, c *domain.Collection) error {
	const q = `UPDATE collections SET name = $3, description = $4 WHERE owner_id = $1 AND path = $2`
	tag, err := r.db.Pool.Exec(ctx, q, c.OwnerID, c.Path, c.Name, c.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the collection and strips its path from the owner's
// bookmarks in one transaction.
func (r *CollectionRepo) Delete(ctx context.Context, ownerID, path string) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const del = `DELETE FROM collections WHERE owner_id = $1 AND path = $2`
	const strip = `
UPDATE bookmarks SET collections = array_remove(collections, $2)
WHERE owner_id = $1 AND $2 = ANY(collections)`

	tag, err := tx.Exec(ctx, del, ownerID, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	_, err = tx.Exec(ctx, strip, ownerID, path)
	return err
}

// Get selects the owner's collection by path.
func (r *CollectionRepo) Get(ctx context.Context, ownerID, path string) (*domain.Collection, error) {
	q := `SELECT ` + collectionColumns + ` FROM collections WHERE owner_id = $1 AND path = $2`
	c, err := scanCollection(r.db.Pool.QueryRow(ctx, q, ownerID, path))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return c, err
}

// List returns the owner's collections ordered by name.
func (r *CollectionRepo) List(ctx context.Context, ownerID string) ([]*domain.Collection, error) {
	q := `SELECT ` + collectionColumns + ` FROM collections WHERE owner_id = $1 ORDER BY name`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCollection(row pgx.Row) (*domain.Collection, error) {
	var c domain.Collection
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Description, &c.Path, &c.Created); err != nil {
		return nil, err
	}
	return &c, nil
}
