package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/repository"
)

var posted = time.Date(2024, 2, 14, 9, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// runStoreContract exercises behaviour every Store implementation must share.
// newStore must return an empty, migrated store.
func runStoreContract(t *testing.T, newStore func(t *testing.T) repository.Store) {
	ctx := context.Background()

	t.Run("insert assigns ids and version", func(t *testing.T) {
		store := newStore(t)

		first := &model.Artist{Name: "Alice Smith", Email: strPtr("alice@example.com")}
		id1, err := store.InsertArtist(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, id1, first.ID)
		assert.Equal(t, 1, first.Version)

		second := &model.Artist{Name: "Bob"}
		id2, err := store.InsertArtist(ctx, second)
		require.NoError(t, err)
		assert.Greater(t, id2, id1)

		got, err := store.GetArtist(ctx, id1)
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", got.Name)
		require.NotNil(t, got.Email)
		assert.Equal(t, "alice@example.com", *got.Email)
		assert.Nil(t, got.Bio)
	})

	t.Run("insert rejects missing required field", func(t *testing.T) {
		store := newStore(t)

		_, err := store.InsertArtist(ctx, &model.Artist{})
		assert.True(t, model.IsValidation(err))

		_, err = store.InsertCategory(ctx, &model.Category{DateCreated: posted})
		assert.True(t, model.IsValidation(err))

		_, err = store.InsertArtwork(ctx, &model.Artwork{DatePosted: posted, ArtistID: 1, CategoryID: 1})
		assert.True(t, model.IsValidation(err))
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		store := newStore(t)

		c := &model.Category{Name: "Portrait", DateCreated: posted}
		id, err := store.InsertCategory(ctx, c)
		require.NoError(t, err)
		require.NoError(t, store.DeleteCategory(ctx, id))

		next := &model.Category{Name: "Landscape", DateCreated: posted}
		nextID, err := store.InsertCategory(ctx, next)
		require.NoError(t, err)
		assert.Greater(t, nextID, id)
	})

	t.Run("replace checks version", func(t *testing.T) {
		store := newStore(t)

		a := &model.Artist{Name: "Alice"}
		_, err := store.InsertArtist(ctx, a)
		require.NoError(t, err)

		a.Name = "Alice Smith"
		require.NoError(t, store.ReplaceArtist(ctx, a))
		assert.Equal(t, 2, a.Version)

		stale := *a
		stale.Version = 1
		stale.Name = "Lost update"
		assert.ErrorIs(t, store.ReplaceArtist(ctx, &stale), repository.ErrStaleVersion)

		got, err := store.GetArtist(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice Smith", got.Name)
		assert.Equal(t, 2, got.Version)

		missing := &model.Artist{ID: a.ID + 1000, Name: "Ghost", Version: 1}
		assert.ErrorIs(t, store.ReplaceArtist(ctx, missing), model.ErrArtistNotFound)
	})

	t.Run("delete unknown id", func(t *testing.T) {
		store := newStore(t)

		assert.ErrorIs(t, store.DeleteArtist(ctx, 9999), model.ErrArtistNotFound)
		assert.ErrorIs(t, store.DeleteCategory(ctx, 9999), model.ErrCategoryNotFound)
		assert.ErrorIs(t, store.DeleteArtwork(ctx, 9999), model.ErrArtworkNotFound)

		_, err := store.GetArtwork(ctx, 9999)
		assert.ErrorIs(t, err, model.ErrArtworkNotFound)
	})

	t.Run("projections join names and titles", func(t *testing.T) {
		store := newStore(t)
		artist, category, artwork := seedGraph(t, store)

		second := &model.Artwork{Title: "Quiet Lines", DatePosted: posted, ArtistID: artist.ID, CategoryID: category.ID}
		_, err := store.InsertArtwork(ctx, second)
		require.NoError(t, err)

		views, err := store.ListArtworks(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, artwork.ID, views[0].ID)
		assert.Equal(t, "Alice Smith", views[0].ArtistName)
		assert.Equal(t, "Portrait", views[0].CategoryName)
		assert.True(t, posted.Equal(views[0].DatePosted))

		av, err := store.FindArtist(ctx, artist.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, av.TotalArtworks)
		assert.Equal(t, []string{"Elegant Script", "Quiet Lines"}, av.ArtworkTitles)

		cv, err := store.FindCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Elegant Script", "Quiet Lines"}, cv.ArtworkTitles)

		titles, err := store.ListArtworkTitlesByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Elegant Script", "Quiet Lines"}, titles)

		ids, err := store.ListArtworkIDsByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{artwork.ID, second.ID}, ids)
	})

	t.Run("empty relations are empty lists", func(t *testing.T) {
		store := newStore(t)

		a := &model.Artist{Name: "Loner"}
		_, err := store.InsertArtist(ctx, a)
		require.NoError(t, err)

		av, err := store.FindArtist(ctx, a.ID)
		require.NoError(t, err)
		assert.NotNil(t, av.ArtworkTitles)
		assert.Empty(t, av.ArtworkTitles)
		assert.Zero(t, av.TotalArtworks)

		byArtist, err := store.ListArtworksByArtist(ctx, a.ID)
		require.NoError(t, err)
		assert.NotNil(t, byArtist)
		assert.Empty(t, byArtist)

		_, err = store.FindArtist(ctx, a.ID+1000)
		assert.ErrorIs(t, err, model.ErrArtistNotFound)
	})

	t.Run("delete does not cascade", func(t *testing.T) {
		store := newStore(t)
		_, category, artwork := seedGraph(t, store)

		require.NoError(t, store.DeleteCategory(ctx, category.ID))

		got, err := store.GetArtwork(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Equal(t, category.ID, got.CategoryID)

		view, err := store.FindArtwork(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Equal(t, "", view.CategoryName)
		assert.Equal(t, "Alice Smith", view.ArtistName)
	})

	t.Run("set artwork category", func(t *testing.T) {
		store := newStore(t)
		_, _, artwork := seedGraph(t, store)

		other := &model.Category{Name: "Abstract", DateCreated: posted}
		_, err := store.InsertCategory(ctx, other)
		require.NoError(t, err)

		require.NoError(t, store.SetArtworkCategory(ctx, artwork.ID, other.ID, artwork.Version))
		got, err := store.GetArtwork(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.CategoryID)
		assert.Equal(t, artwork.Version+1, got.Version)

		err = store.SetArtworkCategory(ctx, artwork.ID, other.ID, artwork.Version)
		assert.ErrorIs(t, err, repository.ErrStaleVersion)

		err = store.SetArtworkCategory(ctx, artwork.ID+1000, other.ID, 1)
		assert.ErrorIs(t, err, model.ErrArtworkNotFound)
	})

	t.Run("with tx rolls back on error", func(t *testing.T) {
		store := newStore(t)
		boom := errors.New("boom")

		var insertedID int64
		err := store.WithTx(ctx, func(tx repository.Tx) error {
			a := &model.Artist{Name: "Transient"}
			id, err := tx.InsertArtist(ctx, a)
			if err != nil {
				return err
			}
			insertedID = id
			return boom
		})
		assert.ErrorIs(t, err, boom)
		require.NotZero(t, insertedID)

		_, err = store.GetArtist(ctx, insertedID)
		assert.ErrorIs(t, err, model.ErrArtistNotFound)
	})

	t.Run("with tx commits and sees references", func(t *testing.T) {
		store := newStore(t)
		artist, category, _ := seedGraph(t, store)

		err := store.WithTx(ctx, func(tx repository.Tx) error {
			ok, err := tx.ArtistExists(ctx, artist.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = tx.CategoryExists(ctx, category.ID+1000)
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = tx.InsertArtwork(ctx, &model.Artwork{
				Title: "In Tx", DatePosted: posted, ArtistID: artist.ID, CategoryID: category.ID,
			})
			return err
		})
		require.NoError(t, err)

		titles, err := store.ListArtworkTitlesByCategory(ctx, category.ID)
		require.NoError(t, err)
		assert.Contains(t, titles, "In Tx")
	})
}

// seedGraph creates Alice Smith, Portrait and one artwork referencing both.
func seedGraph(t *testing.T, store repository.Store) (*model.Artist, *model.Category, *model.Artwork) {
	t.Helper()
	ctx := context.Background()

	artist := &model.Artist{Name: "Alice Smith"}
	_, err := store.InsertArtist(ctx, artist)
	require.NoError(t, err)

	category := &model.Category{Name: "Portrait", DateCreated: posted}
	_, err = store.InsertCategory(ctx, category)
	require.NoError(t, err)

	artwork := &model.Artwork{
		Title:       "Elegant Script",
		DatePosted:  posted,
		Description: strPtr("ink on paper"),
		ArtistID:    artist.ID,
		CategoryID:  category.ID,
	}
	_, err = store.InsertArtwork(ctx, artwork)
	require.NoError(t, err)

	return artist, category, artwork
}
