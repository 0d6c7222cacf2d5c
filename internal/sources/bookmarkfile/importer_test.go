package bookmarkfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/marks/internal/domain"
	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/logger"
	"github.com/MrSnakeDoc/marks/internal/service"
	"github.com/MrSnakeDoc/marks/internal/store/memory"
)

func TestImporter_Import(t *testing.T) {
	db := memory.New()
	collections := service.NewCollectionService(memory.NewCollectionRepo(db), nil, logger.Nop())
	bookmarks := service.NewBookmarkService(memory.NewBookmarkRepo(db), collections, nil, logger.Nop())
	im := NewImporter(bookmarks, collections, logger.Nop())
	ctx := context.Background()

	f := File{
		Collections: []CollectionEntry{{Name: "Dev Tools", Description: "daily"}},
		Bookmarks: []Entry{
			{Href: "https://go.dev/", Title: "Go", Collections: []string{"Dev Tools"}},
			{Href: "not a url"},
			{Href: "https://reddit.com/", Collections: []string{"Social", "dev tools"}},
		},
	}

	res, err := im.Import(ctx, "u1", f)
	require.NoError(t, err)
	require.Equal(t, 2, res.Created)
	require.Len(t, res.Failed, 1)
	require.Equal(t, 1, res.Failed[0].Index)
	require.ErrorIs(t, res.Failed[0], errs.ErrMalformedURL)

	dev, err := collections.Get(ctx, "u1", "dev-tools")
	require.NoError(t, err)
	require.Equal(t, "daily", dev.Description)

	social, err := bookmarks.Search(ctx, "u1", domain.SearchParams{Collection: "social"})
	require.NoError(t, err)
	require.Len(t, social, 1)
	require.Equal(t, []string{"social", "dev-tools"}, social[0].Collections)

	others, err := bookmarks.Search(ctx, "u2", domain.SearchParams{})
	require.NoError(t, err)
	require.Empty(t, others)
}

func TestImporter_Import_UnsluggableCollectionIsSkipped(t *testing.T) {
	db := memory.New()
	collections := service.NewCollectionService(memory.NewCollectionRepo(db), nil, logger.Nop())
	bookmarks := service.NewBookmarkService(memory.NewBookmarkRepo(db), collections, nil, logger.Nop())
	im := NewImporter(bookmarks, collections, logger.Nop())

	f := File{
		Collections: []CollectionEntry{{Name: "!!!"}, {Name: "Reading"}},
		Bookmarks:   []Entry{{Href: "https://go.dev/", Collections: []string{"Reading"}}},
	}

	res, err := im.Import(context.Background(), "u1", f)
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)
	require.Equal(t, 1, res.Collections)
	require.Len(t, res.Failed, 1)
	require.Equal(t, "!!!", res.Failed[0].Collection)
	require.True(t, errs.IsValidation(res.Failed[0]))
	require.Contains(t, res.Failed[0].Error(), "collection #1")
}
