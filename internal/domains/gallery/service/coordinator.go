package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/repository"
)

// coordinator implements CoordinatorInterface.
//
// Updates are optimistic: the row is read outside any transaction and the
// write only succeeds if the row's version is still the one that was read.
// Reference checks for artworks run in the same transaction as the write.
type coordinator struct {
	store             repository.Store
	defaultCategoryID int64
	now               func() time.Time
}

// Option customizes a coordinator.
type Option func(*coordinator)

// WithClock overrides the clock used for default timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *coordinator) { c.now = now }
}

// NewCoordinator creates the mutation coordinator. defaultCategoryID is where
// UnlinkArtwork moves an artwork.
func NewCoordinator(store repository.Store, defaultCategoryID int64, opts ...Option) CoordinatorInterface {
	c := &coordinator{
		store:             store,
		defaultCategoryID: defaultCategoryID,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ========================================
// ADD
// ========================================

func (c *coordinator) AddArtist(ctx context.Context, req model.CreateArtistRequest) (*model.Artist, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	artist := req.ToEntity()
	if _, err := c.store.InsertArtist(ctx, artist); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("artist_id", artist.ID).Msg("[COORDINATOR] Artist added")
	return artist, nil
}

func (c *coordinator) AddCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := req.ToEntity(c.now())
	if _, err := c.store.InsertCategory(ctx, category); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("category_id", category.ID).Msg("[COORDINATOR] Category added")
	return category, nil
}

func (c *coordinator) AddArtwork(ctx context.Context, req model.CreateArtworkRequest) (*model.Artwork, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	artwork := req.ToEntity(c.now())
	err := c.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := checkReferences(ctx, tx, artwork.ArtistID, artwork.CategoryID); err != nil {
			return err
		}
		_, err := tx.InsertArtwork(ctx, artwork)
		return err
	})
	if err != nil {
		if model.IsNotFound(err) {
			zerolog.Ctx(ctx).Warn().Err(err).
				Int64("artist_id", artwork.ArtistID).
				Int64("category_id", artwork.CategoryID).
				Msg("[COORDINATOR] Artwork rejected")
		}
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int64("artwork_id", artwork.ID).Msg("[COORDINATOR] Artwork added")
	return artwork, nil
}

// ========================================
// UPDATE
// ========================================

func (c *coordinator) UpdateArtist(ctx context.Context, id int64, req model.UpdateArtistRequest) error {
	if req.ID != id {
		return model.ErrIDMismatch
	}
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := c.store.GetArtist(ctx, id)
	if err != nil {
		return err
	}
	if err := checkVersion(req.Version, current.Version); err != nil {
		return err
	}

	req.ApplyToEntity(current)
	err = c.store.ReplaceArtist(ctx, current)
	return c.resolveConflict(ctx, err, "artist", id, func(ctx context.Context) error {
		_, err := c.store.GetArtist(ctx, id)
		return err
	})
}

func (c *coordinator) UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) error {
	if req.ID != id {
		return model.ErrIDMismatch
	}
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := c.store.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := checkVersion(req.Version, current.Version); err != nil {
		return err
	}

	req.ApplyToEntity(current, c.now())
	err = c.store.ReplaceCategory(ctx, current)
	return c.resolveConflict(ctx, err, "category", id, func(ctx context.Context) error {
		_, err := c.store.GetCategory(ctx, id)
		return err
	})
}

func (c *coordinator) UpdateArtwork(ctx context.Context, id int64, req model.UpdateArtworkRequest) error {
	if req.ID != id {
		return model.ErrIDMismatch
	}
	if err := req.Validate(); err != nil {
		return err
	}

	current, err := c.store.GetArtwork(ctx, id)
	if err != nil {
		return err
	}
	if err := checkVersion(req.Version, current.Version); err != nil {
		return err
	}

	req.ApplyToEntity(current, c.now())
	err = c.store.WithTx(ctx, func(tx repository.Tx) error {
		if err := checkReferences(ctx, tx, current.ArtistID, current.CategoryID); err != nil {
			return err
		}
		return tx.ReplaceArtwork(ctx, current)
	})
	return c.resolveConflict(ctx, err, "artwork", id, c.artworkExists(id))
}

// ========================================
// DELETE
// ========================================

// Deletes do not look at dependent artworks. An artwork whose artist or
// category is deleted keeps the now dangling id.

func (c *coordinator) DeleteArtist(ctx context.Context, id int64) error {
	if err := c.store.DeleteArtist(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Int64("artist_id", id).Msg("[COORDINATOR] Artist deleted")
	return nil
}

func (c *coordinator) DeleteCategory(ctx context.Context, id int64) error {
	if err := c.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Int64("category_id", id).Msg("[COORDINATOR] Category deleted")
	return nil
}

func (c *coordinator) DeleteArtwork(ctx context.Context, id int64) error {
	if err := c.store.DeleteArtwork(ctx, id); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Int64("artwork_id", id).Msg("[COORDINATOR] Artwork deleted")
	return nil
}

// ========================================
// LINK / UNLINK
// ========================================

// LinkArtwork points the artwork at categoryID. Linking to the category the
// artwork already has succeeds without a write.
func (c *coordinator) LinkArtwork(ctx context.Context, artworkID, categoryID int64) error {
	artwork, err := c.store.GetArtwork(ctx, artworkID)
	if err != nil {
		return err
	}

	err = c.store.WithTx(ctx, func(tx repository.Tx) error {
		exists, err := tx.CategoryExists(ctx, categoryID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrCategoryNotFound
		}
		if artwork.CategoryID == categoryID {
			return nil
		}
		return tx.SetArtworkCategory(ctx, artworkID, categoryID, artwork.Version)
	})
	if err = c.resolveConflict(ctx, err, "artwork", artworkID, c.artworkExists(artworkID)); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int64("artwork_id", artworkID).Int64("category_id", categoryID).Msg("[COORDINATOR] Artwork linked")
	return nil
}

// UnlinkArtwork removes the artwork from categoryID by moving it to the
// default category. An artwork is never left without a category.
func (c *coordinator) UnlinkArtwork(ctx context.Context, artworkID, categoryID int64) error {
	exists, err := c.store.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrCategoryNotFound
	}

	members, err := c.store.ListArtworkIDsByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if !slices.Contains(members, artworkID) {
		return model.ErrArtworkNotLinked
	}
	if categoryID == c.defaultCategoryID {
		return model.ErrUnlinkFromDefault
	}

	artwork, err := c.store.GetArtwork(ctx, artworkID)
	if err != nil {
		return err
	}
	if artwork.CategoryID != categoryID {
		// Moved between the membership check and the read.
		return model.ErrArtworkNotLinked
	}

	err = c.store.WithTx(ctx, func(tx repository.Tx) error {
		exists, err := tx.CategoryExists(ctx, c.defaultCategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return model.ErrDefaultCategoryMissing
		}
		return tx.SetArtworkCategory(ctx, artworkID, c.defaultCategoryID, artwork.Version)
	})
	if err = c.resolveConflict(ctx, err, "artwork", artworkID, c.artworkExists(artworkID)); err != nil {
		if errors.Is(err, model.ErrDefaultCategoryMissing) {
			zerolog.Ctx(ctx).Error().Int64("default_category_id", c.defaultCategoryID).Msg("[COORDINATOR] Default category is missing")
		}
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Int64("artwork_id", artworkID).
		Int64("from_category_id", categoryID).
		Int64("to_category_id", c.defaultCategoryID).
		Msg("[COORDINATOR] Artwork unlinked")
	return nil
}

// ========================================
// HELPERS
// ========================================

// resolveConflict turns a stale write into ErrConcurrencyConflict, unless
// the row has since been deleted, in which case probe's not-found error wins.
func (c *coordinator) resolveConflict(ctx context.Context, err error, kind string, id int64, probe func(ctx context.Context) error) error {
	if !errors.Is(err, repository.ErrStaleVersion) {
		return err
	}

	if probeErr := probe(ctx); probeErr != nil {
		if model.IsNotFound(probeErr) {
			zerolog.Ctx(ctx).Warn().Str("kind", kind).Int64("id", id).Msg("[COORDINATOR] Row deleted during update")
			return probeErr
		}
		return fmt.Errorf("failed to re-check %s %d after conflict: %w", kind, id, probeErr)
	}

	zerolog.Ctx(ctx).Warn().Str("kind", kind).Int64("id", id).Msg("[COORDINATOR] Concurrent update detected")
	return model.ErrConcurrencyConflict
}

func (c *coordinator) artworkExists(id int64) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := c.store.GetArtwork(ctx, id)
		return err
	}
}

// checkReferences resolves an artwork's artist and category inside tx.
func checkReferences(ctx context.Context, tx repository.Tx, artistID, categoryID int64) error {
	ok, err := tx.ArtistExists(ctx, artistID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrArtistReferenceNotFound
	}

	ok, err = tx.CategoryExists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrCategoryReferenceNotFound
	}
	return nil
}

// checkVersion compares the version the client last saw, if any.
func checkVersion(expected *int, current int) error {
	if expected != nil && *expected != current {
		return model.ErrConcurrencyConflict
	}
	return nil
}
