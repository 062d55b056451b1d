package service

import (
	"context"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/internal/domains/gallery/repository"
)

// queryService implements QueryInterface. Every call reads the store fresh.
type queryService struct {
	store repository.Reader
	ping  func(ctx context.Context) error
}

func NewQueryService(store repository.Store) QueryInterface {
	return &queryService{store: store, ping: store.Ping}
}

func (s *queryService) ListArtists(ctx context.Context) ([]model.ArtistView, error) {
	return s.store.ListArtists(ctx)
}

func (s *queryService) FindArtist(ctx context.Context, id int64) (*model.ArtistView, error) {
	if id <= 0 {
		return nil, model.ErrArtistNotFound
	}
	return s.store.FindArtist(ctx, id)
}

func (s *queryService) ListCategories(ctx context.Context) ([]model.CategoryView, error) {
	return s.store.ListCategories(ctx)
}

func (s *queryService) FindCategory(ctx context.Context, id int64) (*model.CategoryView, error) {
	if id <= 0 {
		return nil, model.ErrCategoryNotFound
	}
	return s.store.FindCategory(ctx, id)
}

func (s *queryService) ListArtworks(ctx context.Context) ([]model.ArtworkView, error) {
	return s.store.ListArtworks(ctx)
}

func (s *queryService) FindArtwork(ctx context.Context, id int64) (*model.ArtworkView, error) {
	if id <= 0 {
		return nil, model.ErrArtworkNotFound
	}
	return s.store.FindArtwork(ctx, id)
}

func (s *queryService) ListArtworkTitlesByCategory(ctx context.Context, categoryID int64) ([]string, error) {
	titles, err := s.store.ListArtworkTitlesByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, model.ErrNoArtworksInGroup
	}
	return titles, nil
}

// ListArtworksByArtist returns an empty list for an unknown artist.
func (s *queryService) ListArtworksByArtist(ctx context.Context, artistID int64) ([]model.ArtworkView, error) {
	return s.store.ListArtworksByArtist(ctx, artistID)
}

func (s *queryService) Ping(ctx context.Context) error {
	return s.ping(ctx)
}
