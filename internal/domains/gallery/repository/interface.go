package repository

import (
	"context"
	"errors"

	"gallery-backend/internal/domains/gallery/model"
)

// ErrStaleVersion is returned by the Replace*/SetArtworkCategory methods when
// the row exists but its version no longer matches the expected one.
// The service layer maps it to model.ErrConcurrencyConflict.
var ErrStaleVersion = errors.New("row version is stale")

// Reader covers key lookups and join projections. No method mutates.
type Reader interface {
	// GetArtist returns model.ErrArtistNotFound if the row does not exist.
	GetArtist(ctx context.Context, id int64) (*model.Artist, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	GetArtwork(ctx context.Context, id int64) (*model.Artwork, error)

	// ArtistExists / CategoryExists check presence. Inside a PostgreSQL
	// transaction the row is share-locked until commit so it cannot be
	// deleted under a pending reference.
	ArtistExists(ctx context.Context, id int64) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)

	// Join projections, ordered by id (insertion order).
	ListArtists(ctx context.Context) ([]model.ArtistView, error)
	FindArtist(ctx context.Context, id int64) (*model.ArtistView, error)
	ListCategories(ctx context.Context) ([]model.CategoryView, error)
	FindCategory(ctx context.Context, id int64) (*model.CategoryView, error)
	ListArtworks(ctx context.Context) ([]model.ArtworkView, error)
	FindArtwork(ctx context.Context, id int64) (*model.ArtworkView, error)

	// Foreign-key lookups
	ListArtworksByArtist(ctx context.Context, artistID int64) ([]model.ArtworkView, error)
	ListArtworkTitlesByCategory(ctx context.Context, categoryID int64) ([]string, error)
	ListArtworkIDsByCategory(ctx context.Context, categoryID int64) ([]int64, error)
}

// Writer covers inserts, version-checked replaces and deletes.
// Inserts assign id and version=1 on the passed entity.
// Replaces use the entity's Version as the expected version and bump it on
// success; they return the kind's not-found error when the row is absent and
// ErrStaleVersion when the version moved. Deletes never cascade.
type Writer interface {
	InsertArtist(ctx context.Context, a *model.Artist) (int64, error)
	ReplaceArtist(ctx context.Context, a *model.Artist) error
	DeleteArtist(ctx context.Context, id int64) error

	InsertCategory(ctx context.Context, c *model.Category) (int64, error)
	ReplaceCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	InsertArtwork(ctx context.Context, a *model.Artwork) (int64, error)
	ReplaceArtwork(ctx context.Context, a *model.Artwork) error
	DeleteArtwork(ctx context.Context, id int64) error

	// SetArtworkCategory moves one artwork to categoryID if its version is
	// still expectedVersion.
	SetArtworkCategory(ctx context.Context, artworkID, categoryID int64, expectedVersion int) error
}

// Tx is a transactional handle. It is only valid inside WithTx.
type Tx interface {
	Reader
	Writer
}

// Store is the entity store. Each call outside WithTx runs in its own
// implicit transaction.
type Store interface {
	Reader
	Writer

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. fn must only use the Tx it is given.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Ping(ctx context.Context) error
	Close() error
}
