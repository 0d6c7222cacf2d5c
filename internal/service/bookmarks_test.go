package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/logger"
)

func TestBookmarkService_Create(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	b, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "HTTPS://Example.COM/a?x=1#top"})
	require.NoError(t, err)
	require.NotEmpty(t, b.ID)
	require.Equal(t, "HTTPS://Example.COM/a?x=1#top", b.Title, "title defaults to href")
	require.Equal(t, "https:", b.URL.Protocol)
	require.Equal(t, "example.com", b.URL.Hostname)
	require.Equal(t, "/a", b.URL.Pathname)
	require.Equal(t, "?x=1", b.URL.Search)
	require.Equal(t, "#top", b.URL.Hash)
	require.Equal(t, b.Created, b.Updated)

	again, err := domain.Normalize(b.URL.Href)
	require.NoError(t, err)
	require.Equal(t, b.URL, again)
}

func TestBookmarkService_Create_MalformedLeavesStoreUnchanged(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	for _, href := range []string{"", "not a url", "example.com/path", "mailto:someone@example.com"} {
		_, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: href, NewCollection: "Dev Tools"})
		require.Error(t, err, href)
	}
	bookmarks, collections, _ := e.db.Counts()
	require.Zero(t, bookmarks)
	require.Zero(t, collections, "inline collection must not be created for an invalid bookmark")
}

func TestBookmarkService_Create_UnknownCollection(t *testing.T) {
	e := newEnv(false)

	_, err := e.bookmarks.Create(context.Background(), "u1", BookmarkInput{
		Href:        "https://go.dev/",
		Collections: []string{"nope"},
	})
	require.True(t, errs.IsValidation(err))
}

func TestBookmarkService_InlineNewCollection(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	_, err := e.collections.Create(ctx, "u1", CollectionInput{Name: "Reading"})
	require.NoError(t, err)

	b, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{
		Href:          "https://go.dev/",
		Collections:   []string{"reading", "reading"},
		NewCollection: "Dev Tools",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"reading", "dev-tools"}, b.Collections)

	// the same name is reused instead of failing
	b2, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://pkg.go.dev/", NewCollection: "dev tools"})
	require.NoError(t, err)
	require.Equal(t, []string{"dev-tools"}, b2.Collections)

	list, err := e.collections.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	members, err := e.bookmarks.Search(ctx, "u1", domain.SearchParams{Collection: "dev-tools"})
	require.NoError(t, err)
	require.Equal(t, []string{"https://pkg.go.dev/", "https://go.dev/"}, hrefs(members))
}

func TestBookmarkService_Update(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	b, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://example.com/", Title: "Example"})
	require.NoError(t, err)

	updated, err := e.bookmarks.Update(ctx, "u1", b.ID, BookmarkInput{Href: "https://other.example.org/x", Description: "d"})
	require.NoError(t, err)
	require.Equal(t, "other.example.org", updated.URL.Hostname)
	require.Equal(t, "https://other.example.org/x", updated.Title)
	require.Equal(t, b.Created, updated.Created)
	require.True(t, updated.Updated.After(b.Updated))

	_, err = e.bookmarks.Update(ctx, "u1", b.ID, BookmarkInput{Href: "::bad::"})
	require.Error(t, err)
	got, err := e.bookmarks.Get(ctx, "u1", b.ID)
	require.NoError(t, err)
	require.Equal(t, "https://other.example.org/x", got.Href, "failed update must not change the record")

	_, err = e.bookmarks.Update(ctx, "u2", b.ID, BookmarkInput{Href: "https://example.com/"})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBookmarkService_Delete(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	b, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://example.com/"})
	require.NoError(t, err)

	require.ErrorIs(t, e.bookmarks.Delete(ctx, "u2", b.ID), errs.ErrNotFound)
	require.NoError(t, e.bookmarks.Delete(ctx, "u1", b.ID))
	_, err = e.bookmarks.Get(ctx, "u1", b.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBookmarkService_MalformedIDIsNotFound(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	_, err := e.bookmarks.Get(ctx, "u1", "add")
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = e.bookmarks.Update(ctx, "u1", "1; drop", BookmarkInput{Href: "https://example.com/"})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.ErrorIs(t, e.bookmarks.Delete(ctx, "u1", ""), errs.ErrNotFound)
}

func TestBookmarkService_Search(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	for _, in := range []BookmarkInput{
		{Href: "https://example.com/"},
		{Href: "https://sub.example.com/docs"},
		{Href: "https://exampleXcom.net/"},
		{Href: "http://git-scm.com", Title: "SCM"},
		{Href: "https://book.example.org/", Title: "Git Book"},
	} {
		_, err := e.bookmarks.Create(ctx, "u1", in)
		require.NoError(t, err)
	}
	_, err := e.bookmarks.Create(ctx, "u2", BookmarkInput{Href: "https://example.com/theirs"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		params domain.SearchParams
		want   []string
	}{
		{
			name:   "empty returns everything owned, newest first",
			params: domain.SearchParams{},
			want: []string{
				"https://book.example.org/",
				"http://git-scm.com",
				"https://exampleXcom.net/",
				"https://sub.example.com/docs",
				"https://example.com/",
			},
		},
		{
			name:   "hostname regex",
			params: domain.SearchParams{Hostname: `example\.com`},
			want:   []string{"https://sub.example.com/docs", "https://example.com/"},
		},
		{
			name:   "keyword matches title and href",
			params: domain.SearchParams{Keyword: "git"},
			want:   []string{"https://book.example.org/", "http://git-scm.com"},
		},
		{
			name:   "invalid regex does not fail",
			params: domain.SearchParams{Hostname: "example["},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.bookmarks.Search(ctx, "u1", tt.params)
			require.NoError(t, err)
			require.Equal(t, tt.want, hrefs(got))
		})
	}
}

func TestBookmarkService_Search_Cache(t *testing.T) {
	e := newEnv(true)
	ctx := context.Background()

	_, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://example.com/"})
	require.NoError(t, err)

	first, err := e.bookmarks.Search(ctx, "u1", domain.SearchParams{})
	require.NoError(t, err)
	second, err := e.bookmarks.Search(ctx, "u1", domain.SearchParams{})
	require.NoError(t, err)
	require.Equal(t, hrefs(first), hrefs(second))
	require.Equal(t, 1, e.cache.hits)

	_, err = e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://go.dev/"})
	require.NoError(t, err)

	third, err := e.bookmarks.Search(ctx, "u1", domain.SearchParams{})
	require.NoError(t, err)
	require.Len(t, third, 2, "writes must invalidate the owner's cache")
}

type failingCache struct{ *fakeCache }

func (failingCache) LookupSearch(context.Context, domain.Query) ([]*domain.Bookmark, string, bool, error) {
	return nil, "", false, errors.New("redis down")
}

func TestBookmarkService_Search_CacheErrorFallsThrough(t *testing.T) {
	e := newEnv(false)
	e.bookmarks.cache = failingCache{newFakeCache()}
	ctx := context.Background()

	_, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://example.com/"})
	require.NoError(t, err)

	got, err := e.bookmarks.Search(ctx, "u1", domain.SearchParams{})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

type staleCache struct{ *fakeCache }

func (staleCache) InvalidateOwner(context.Context, string) error {
	return errors.New("redis read only")
}

func TestBookmarkService_InvalidationFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	e := newEnv(false)
	e.bookmarks.cache = staleCache{newFakeCache()}
	e.bookmarks.log = logger.FromZap(zap.New(core))

	_, err := e.bookmarks.Create(context.Background(), "u1", BookmarkInput{Href: "https://example.com/"})
	require.NoError(t, err, "a cache failure must not fail the write")

	entries := logs.FilterMessageSnippet("invalidation failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "u1", entries[0].ContextMap()["owner_id"])
}
