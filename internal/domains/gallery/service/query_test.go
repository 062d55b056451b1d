package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/repository/repotest"
	"gallery-backend/internal/domains/gallery/service"
)

func TestQueryService(t *testing.T) {
	store := repotest.NewSQLiteStore(t)
	c := service.NewCoordinator(store, repotest.DefaultCategoryID)
	q := service.NewQueryService(store)
	ctx := context.Background()
	g := seed(t, c)

	t.Run("titles by category", func(t *testing.T) {
		titles, err := q.ListArtworkTitlesByCategory(ctx, g.category.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Elegant Script"}, titles)
	})

	t.Run("empty category is not found", func(t *testing.T) {
		_, err := q.ListArtworkTitlesByCategory(ctx, repotest.DefaultCategoryID)
		assert.ErrorIs(t, err, model.ErrNoArtworksInGroup)
	})

	t.Run("artworks by unknown artist is empty", func(t *testing.T) {
		artworks, err := q.ListArtworksByArtist(ctx, 999)
		require.NoError(t, err)
		assert.Empty(t, artworks)
	})

	t.Run("artworks by artist", func(t *testing.T) {
		artworks, err := q.ListArtworksByArtist(ctx, g.artist.ID)
		require.NoError(t, err)
		require.Len(t, artworks, 1)
		assert.Equal(t, "Portrait", artworks[0].CategoryName)
	})

	t.Run("find rejects non-positive ids", func(t *testing.T) {
		_, err := q.FindArtist(ctx, 0)
		assert.ErrorIs(t, err, model.ErrArtistNotFound)
		_, err = q.FindCategory(ctx, -1)
		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
		_, err = q.FindArtwork(ctx, 0)
		assert.ErrorIs(t, err, model.ErrArtworkNotFound)
	})

	t.Run("lists", func(t *testing.T) {
		artists, err := q.ListArtists(ctx)
		require.NoError(t, err)
		require.Len(t, artists, 1)
		assert.Equal(t, []string{"Elegant Script"}, artists[0].ArtworkTitles)

		categories, err := q.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 2, "seeded default plus Portrait")

		require.NoError(t, q.Ping(ctx))
	})
}
