package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
)

// BookmarkRepo implements store.Bookmarks using PostgreSQL.
type BookmarkRepo struct{ db *DB }

// NewBookmarkRepo constructs a bookmark repository.
func NewBookmarkRepo(db *DB) *BookmarkRepo { return &BookmarkRepo{db: db} }

// Create inserts a new bookmark row.
func (r *BookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	const q = `
INSERT INTO bookmarks (id, owner_id, href, title, description, url, collections, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	urlDoc, err := json.Marshal(b.URL)
	if err != nil {
		return fmt.Errorf("marshal url: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, q,
		b.ID, b.OwnerID, b.Href, b.Title, b.Description, urlDoc, nonNil(b.Collections), b.Created, b.Updated)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Update overwrites the mutable columns of an owned bookmark.
func (r *BookmarkRepo) Update(ctx context.Context, b *domain.Bookmark) error {
	const q = `
UPDATE bookmarks
SET href = $3, title = $4, description = $5, url = $6, collections = $7, updated_at = $8
WHERE id = $1 AND owner_id = $2`
	urlDoc, err := json.Marshal(b.URL)
	if err != nil {
		return fmt.Errorf("marshal url: %w", err)
	}
	tag, err := r.db.Pool.Exec(ctx, q,
		b.ID, b.OwnerID, b.Href, b.Title, b.Description, urlDoc, nonNil(b.Collections), b.Updated)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an owned bookmark.
func (r *BookmarkRepo) Delete(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM bookmarks WHERE id = $1 AND owner_id = $2`
	tag, err := r.db.Pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Get selects one owned bookmark.
func (r *BookmarkRepo) Get(ctx context.Context, ownerID, id string) (*domain.Bookmark, error) {
	q := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE id = $1 AND owner_id = $2`
	b, err := scanBookmark(r.db.Pool.QueryRow(ctx, q, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	return b, err
}

// Search executes q. When PostgreSQL rejects a pattern that Go accepted,
// the query is retried with every pattern matched literally.
func (r *BookmarkRepo) Search(ctx context.Context, q domain.Query) ([]*domain.Bookmark, error) {
	out, err := r.search(ctx, q)
	if isInvalidRegex(err) {
		return r.search(ctx, q.Literal())
	}
	return out, err
}

func (r *BookmarkRepo) search(ctx context.Context, q domain.Query) ([]*domain.Bookmark, error) {
	sql, args := compileSearch(q)
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.Bookmark, 0)
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Hostnames returns the owner's distinct hostnames, sorted.
func (r *BookmarkRepo) Hostnames(ctx context.Context, ownerID string) ([]string, error) {
	const q = `
SELECT DISTINCT url->>'hostname' AS hostname
FROM bookmarks
WHERE owner_id = $1 AND url->>'hostname' <> ''
ORDER BY hostname`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanBookmark(row pgx.Row) (*domain.Bookmark, error) {
	var (
		b      domain.Bookmark
		urlDoc []byte
	)
	if err := row.Scan(&b.ID, &b.OwnerID, &b.Href, &b.Title, &b.Description,
		&urlDoc, &b.Collections, &b.Created, &b.Updated); err != nil {
		return nil, err
	}
	if len(urlDoc) > 0 {
		if err := json.Unmarshal(urlDoc, &b.URL); err != nil {
			return nil, fmt.Errorf("unmarshal url of bookmark %s: %w", b.ID, err)
		}
	}
	return &b, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
