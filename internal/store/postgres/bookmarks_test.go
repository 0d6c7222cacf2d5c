package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

var bookmarkRowColumns = []string{
	"id", "owner_id", "href", "title", "description", "url", "collections", "created_at", "updated_at",
}

func sampleBookmark(t *testing.T) *domain.Bookmark {
	t.Helper()
	b, err := domain.NewBookmark("u1", "https://go.dev/doc", "Go docs", "", []string{"dev-tools"}).Prepare()
	require.NoError(t, err)
	b.ID = "b1"
	b.Created = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	b.Updated = b.Created
	return &b
}

func bookmarkRow(t *testing.T, rows *pgxmock.Rows, b *domain.Bookmark) *pgxmock.Rows {
	t.Helper()
	doc, err := json.Marshal(b.URL)
	require.NoError(t, err)
	return rows.AddRow(b.ID, b.OwnerID, b.Href, b.Title, b.Description, doc, b.Collections, b.Created, b.Updated)
}

func TestBookmarkRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)
	ctx := context.Background()
	b := sampleBookmark(t)

	mock.ExpectExec(`INSERT INTO bookmarks`).
		WithArgs(b.ID, b.OwnerID, b.Href, b.Title, b.Description, pgxmock.AnyArg(), b.Collections, b.Created, b.Updated).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, b))

	mock.ExpectExec(`INSERT INTO bookmarks`).
		WithArgs(b.ID, b.OwnerID, b.Href, b.Title, b.Description, pgxmock.AnyArg(), b.Collections, b.Created, b.Updated).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, b), errs.ErrAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepo_Update_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)
	b := sampleBookmark(t)

	mock.ExpectExec(`UPDATE bookmarks`).
		WithArgs(b.ID, b.OwnerID, b.Href, b.Title, b.Description, pgxmock.AnyArg(), b.Collections, b.Updated).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(context.Background(), b), errs.ErrNotFound)
}

func TestBookmarkRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("b1", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, "u1", "b1"))

	mock.ExpectExec(`DELETE FROM bookmarks WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("b1", "u2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, "u2", "b1"), errs.ErrNotFound)
}

func TestBookmarkRepo_Get(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)
	ctx := context.Background()
	b := sampleBookmark(t)

	mock.ExpectQuery(`FROM bookmarks WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(b.ID, b.OwnerID).
		WillReturnRows(bookmarkRow(t, pgxmock.NewRows(bookmarkRowColumns), b))
	got, err := r.Get(ctx, b.OwnerID, b.ID)
	require.NoError(t, err)
	require.Equal(t, b.URL, got.URL)
	require.Equal(t, []string{"dev-tools"}, got.Collections)

	mock.ExpectQuery(`FROM bookmarks WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(b.ID, "u2").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, "u2", b.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBookmarkRepo_Search(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)
	b := sampleBookmark(t)

	q := domain.BuildQuery("u1", domain.SearchParams{Hostname: `go\.dev`})
	mock.ExpectQuery(`url->>'hostname' ~ \$2 ORDER BY created_at DESC`).
		WithArgs("u1", `go\.dev`).
		WillReturnRows(bookmarkRow(t, pgxmock.NewRows(bookmarkRowColumns), b))

	got, err := r.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "go.dev", got[0].URL.Hostname)
}

// Go's RE2 accepts some expressions PostgreSQL rejects; those are retried
// as literal text.
func TestBookmarkRepo_Search_RetriesLiteral(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)

	q := domain.BuildQuery("u1", domain.SearchParams{Hostname: `\pL+`})
	mock.ExpectQuery(`url->>'hostname' ~ \$2`).
		WithArgs("u1", `\pL+`).
		WillReturnError(&pgconn.PgError{Code: "2201B"})
	mock.ExpectQuery(`url->>'hostname' ~ \$2`).
		WithArgs("u1", `\\pL\+`).
		WillReturnRows(pgxmock.NewRows(bookmarkRowColumns))

	got, err := r.Search(context.Background(), q)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookmarkRepo_Hostnames(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewBookmarkRepo(db)

	mock.ExpectQuery(`SELECT DISTINCT url->>'hostname'`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"hostname"}).AddRow("example.com").AddRow("go.dev"))

	got, err := r.Hostnames(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, []string{"example.com", "go.dev"}, got)
}
