package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/marks/internal/errs"
)

func TestCollectionService_Create(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	c, err := e.collections.Create(ctx, "u1", CollectionInput{Name: "Dev Tools"})
	require.NoError(t, err)
	require.Equal(t, "dev-tools", c.Path)

	_, err = e.collections.Create(ctx, "u1", CollectionInput{Name: "dev tools"})
	require.True(t, errs.IsValidation(err))
	require.ErrorIs(t, err, errs.ErrAlreadyExists)

	// paths are unique per owner only
	_, err = e.collections.Create(ctx, "u2", CollectionInput{Name: "Dev Tools"})
	require.NoError(t, err)

	_, err = e.collections.Create(ctx, "u1", CollectionInput{Name: "???"})
	require.True(t, errs.IsValidation(err))
}

func TestCollectionService_Update_KeepsPath(t *testing.T) {
	e := newEnv(false)
	ctx := context.Background()

	_, err := e.collections.Create(ctx, "u1", CollectionInput{Name: "Dev Tools"})
	require.NoError(t, err)

	c, err := e.collections.Update(ctx, "u1", "dev-tools", CollectionInput{Name: "Tooling", Description: "cli"})
	require.NoError(t, err)
	require.Equal(t, "dev-tools", c.Path)
	require.Equal(t, "Tooling", c.Name)

	_, err = e.collections.Update(ctx, "u2", "dev-tools", CollectionInput{Name: "x"})
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = e.collections.Update(ctx, "u1", "dev-tools", CollectionInput{Name: " "})
	require.True(t, errs.IsValidation(err))
}

func TestCollectionService_Delete_CleansBookmarks(t *testing.T) {
	e := newEnv(true)
	ctx := context.Background()

	b, err := e.bookmarks.Create(ctx, "u1", BookmarkInput{Href: "https://go.dev/", NewCollection: "Dev Tools"})
	require.NoError(t, err)
	require.Equal(t, []string{"dev-tools"}, b.Collections)

	before := e.cache.invalidations
	require.NoError(t, e.collections.Delete(ctx, "u1", "dev-tools"))
	require.Greater(t, e.cache.invalidations, before)

	got, err := e.bookmarks.Get(ctx, "u1", b.ID)
	require.NoError(t, err)
	require.Empty(t, got.Collections)

	require.ErrorIs(t, e.collections.Delete(ctx, "u1", "dev-tools"), errs.ErrNotFound)
}
