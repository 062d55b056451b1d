package service

import (
	"context"

	"gallery-backend/internal/domains/gallery/model"
)

// CoordinatorInterface is the only write path into the gallery store.
// Every method either commits fully or leaves no trace.
type CoordinatorInterface interface {
	AddArtist(ctx context.Context, req model.CreateArtistRequest) (*model.Artist, error)
	AddCategory(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	AddArtwork(ctx context.Context, req model.CreateArtworkRequest) (*model.Artwork, error)

	// Update* fail with model.ErrIDMismatch when id differs from req.ID,
	// before the row is looked up.
	UpdateArtist(ctx context.Context, id int64, req model.UpdateArtistRequest) error
	UpdateCategory(ctx context.Context, id int64, req model.UpdateCategoryRequest) error
	UpdateArtwork(ctx context.Context, id int64, req model.UpdateArtworkRequest) error

	DeleteArtist(ctx context.Context, id int64) error
	DeleteCategory(ctx context.Context, id int64) error
	DeleteArtwork(ctx context.Context, id int64) error

	LinkArtwork(ctx context.Context, artworkID, categoryID int64) error
	UnlinkArtwork(ctx context.Context, artworkID, categoryID int64) error
}

// QueryInterface serves the read projections straight from the store.
type QueryInterface interface {
	ListArtists(ctx context.Context) ([]model.ArtistView, error)
	FindArtist(ctx context.Context, id int64) (*model.ArtistView, error)
	ListCategories(ctx context.Context) ([]model.CategoryView, error)
	FindCategory(ctx context.Context, id int64) (*model.CategoryView, error)
	ListArtworks(ctx context.Context) ([]model.ArtworkView, error)
	FindArtwork(ctx context.Context, id int64) (*model.ArtworkView, error)

	// ListArtworkTitlesByCategory fails with model.ErrNoArtworksInGroup
	// instead of returning an empty list.
	ListArtworkTitlesByCategory(ctx context.Context, categoryID int64) ([]string, error)
	ListArtworksByArtist(ctx context.Context, artistID int64) ([]model.ArtworkView, error)

	Ping(ctx context.Context) error
}
