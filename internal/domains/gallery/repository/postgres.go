package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gallery-backend/internal/domains/gallery/model"
	"gallery-backend/pkg/database"
)

// pgQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// postgresRepository implements Store on a pgx connection pool.
type postgresRepository struct {
	*pgQueries
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new gallery store on pool. The pool is
// owned by the caller.
func NewPostgresRepository(pool *pgxpool.Pool) Store {
	return &postgresRepository{
		pgQueries: &pgQueries{q: pool},
		pool:      pool,
	}
}

func (r *postgresRepository) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&pgQueries{q: tx})
	})
}

func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close is a no-op; the pool belongs to the infrastructure layer.
func (r *postgresRepository) Close() error {
	return nil
}

// pgQueries holds every statement. It runs either on the pool or on a tx.
type pgQueries struct {
	q pgQuerier
}

// ========================================
// ARTISTS
// ========================================

func (r *pgQueries) GetArtist(ctx context.Context, id int64) (*model.Artist, error) {
	query := `SELECT id, name, bio, email, version FROM artists WHERE id = $1`

	var a model.Artist
	err := r.q.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Bio, &a.Email, &a.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to get artist by id: %w", err)
	}
	return &a, nil
}

func (r *pgQueries) ArtistExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT id FROM artists WHERE id = $1 FOR SHARE`, id)
}

func (r *pgQueries) InsertArtist(ctx context.Context, a *model.Artist) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	query := `
        INSERT INTO artists (name, bio, email, version)
        VALUES ($1, $2, $3, 1)
        RETURNING id, version
    `
	if err := r.q.QueryRow(ctx, query, a.Name, a.Bio, a.Email).Scan(&a.ID, &a.Version); err != nil {
		return 0, fmt.Errorf("failed to create artist: %w", err)
	}
	return a.ID, nil
}

func (r *pgQueries) ReplaceArtist(ctx context.Context, a *model.Artist) error {
	if err := a.Validate(); err != nil {
		return err
	}

	// WHERE clause includes version check
	query := `
        UPDATE artists
        SET name = $1, bio = $2, email = $3, version = version + 1
        WHERE id = $4 AND version = $5
        RETURNING version
    `
	err := r.q.QueryRow(ctx, query, a.Name, a.Bio, a.Email, a.ID, a.Version).Scan(&a.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missingOrStale(ctx, `SELECT id FROM artists WHERE id = $1`, a.ID, model.ErrArtistNotFound)
		}
		return fmt.Errorf("failed to update artist: %w", err)
	}
	return nil
}

func (r *pgQueries) DeleteArtist(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM artists WHERE id = $1`, id, model.ErrArtistNotFound)
}

func (r *pgQueries) ListArtists(ctx context.Context) ([]model.ArtistView, error) {
	rows, err := r.q.Query(ctx, artistViewQuery+` GROUP BY ar.id ORDER BY ar.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	artists := []model.ArtistView{}
	for rows.Next() {
		v, err := scanArtistView(rows)
		if err != nil {
			return nil, err
		}
		artists = append(artists, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}
	return artists, nil
}

func (r *pgQueries) FindArtist(ctx context.Context, id int64) (*model.ArtistView, error) {
	row := r.q.QueryRow(ctx, artistViewQuery+` WHERE ar.id = $1 GROUP BY ar.id`, id)
	v, err := scanArtistView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArtistNotFound
		}
		return nil, err
	}
	return v, nil
}

const artistViewQuery = `
    SELECT ar.id, ar.name, ar.bio, ar.email, ar.version,
           COALESCE(array_agg(aw.title ORDER BY aw.id) FILTER (WHERE aw.id IS NOT NULL), '{}')
    FROM artists ar
    LEFT JOIN artworks aw ON aw.artist_id = ar.id
`

func scanArtistView(row pgx.Row) (*model.ArtistView, error) {
	var v model.ArtistView
	if err := row.Scan(&v.ID, &v.Name, &v.Bio, &v.Email, &v.Version, &v.ArtworkTitles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan artist: %w", err)
	}
	v.TotalArtworks = len(v.ArtworkTitles)
	return &v, nil
}

// ========================================
// CATEGORIES
// ========================================

func (r *pgQueries) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT id, name, date_created, version FROM categories WHERE id = $1`

	var c model.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.DateCreated, &c.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	return &c, nil
}

func (r *pgQueries) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT id FROM categories WHERE id = $1 FOR SHARE`, id)
}

func (r *pgQueries) InsertCategory(ctx context.Context, c *model.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	query := `
        INSERT INTO categories (name, date_created, version)
        VALUES ($1, $2, 1)
        RETURNING id, version
    `
	if err := r.q.QueryRow(ctx, query, c.Name, c.DateCreated).Scan(&c.ID, &c.Version); err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	return c.ID, nil
}

func (r *pgQueries) ReplaceCategory(ctx context.Context, c *model.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	query := `
        UPDATE categories
        SET name = $1, date_created = $2, version = version + 1
        WHERE id = $3 AND version = $4
        RETURNING version
    `
	err := r.q.QueryRow(ctx, query, c.Name, c.DateCreated, c.ID, c.Version).Scan(&c.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missingOrStale(ctx, `SELECT id FROM categories WHERE id = $1`, c.ID, model.ErrCategoryNotFound)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *pgQueries) DeleteCategory(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM categories WHERE id = $1`, id, model.ErrCategoryNotFound)
}

const categoryViewQuery = `
    SELECT c.id, c.name, c.date_created, c.version,
           COALESCE(array_agg(aw.title ORDER BY aw.id) FILTER (WHERE aw.id IS NOT NULL), '{}')
    FROM categories c
    LEFT JOIN artworks aw ON aw.category_id = c.id
`

func (r *pgQueries) ListCategories(ctx context.Context) ([]model.CategoryView, error) {
	rows, err := r.q.Query(ctx, categoryViewQuery+` GROUP BY c.id ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.CategoryView{}
	for rows.Next() {
		v, err := scanCategoryView(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *pgQueries) FindCategory(ctx context.Context, id int64) (*model.CategoryView, error) {
	row := r.q.QueryRow(ctx, categoryViewQuery+` WHERE c.id = $1 GROUP BY c.id`, id)
	v, err := scanCategoryView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, err
	}
	return v, nil
}

func scanCategoryView(row pgx.Row) (*model.CategoryView, error) {
	var v model.CategoryView
	if err := row.Scan(&v.ID, &v.Name, &v.DateCreated, &v.Version, &v.ArtworkTitles); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	v.TotalArtworks = len(v.ArtworkTitles)
	return &v, nil
}

// ========================================
// ARTWORKS
// ========================================

func (r *pgQueries) GetArtwork(ctx context.Context, id int64) (*model.Artwork, error) {
	query := `
        SELECT id, title, date_posted, description, artist_id, category_id, version
        FROM artworks
        WHERE id = $1
    `

	var a model.Artwork
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.DatePosted, &a.Description, &a.ArtistID, &a.CategoryID, &a.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to get artwork by id: %w", err)
	}
	return &a, nil
}

func (r *pgQueries) InsertArtwork(ctx context.Context, a *model.Artwork) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	query := `
        INSERT INTO artworks (title, date_posted, description, artist_id, category_id, version)
        VALUES ($1, $2, $3, $4, $5, 1)
        RETURNING id, version
    `
	err := r.q.QueryRow(ctx, query, a.Title, a.DatePosted, a.Description, a.ArtistID, a.CategoryID).
		Scan(&a.ID, &a.Version)
	if err != nil {
		return 0, fmt.Errorf("failed to create artwork: %w", err)
	}
	return a.ID, nil
}

func (r *pgQueries) ReplaceArtwork(ctx context.Context, a *model.Artwork) error {
	if err := a.Validate(); err != nil {
		return err
	}

	query := `
        UPDATE artworks
        SET title = $1, date_posted = $2, description = $3,
            artist_id = $4, category_id = $5, version = version + 1
        WHERE id = $6 AND version = $7
        RETURNING version
    `
	err := r.q.QueryRow(ctx, query,
		a.Title, a.DatePosted, a.Description, a.ArtistID, a.CategoryID, a.ID, a.Version,
	).Scan(&a.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missingOrStale(ctx, `SELECT id FROM artworks WHERE id = $1`, a.ID, model.ErrArtworkNotFound)
		}
		return fmt.Errorf("failed to update artwork: %w", err)
	}
	return nil
}

func (r *pgQueries) SetArtworkCategory(ctx context.Context, artworkID, categoryID int64, expectedVersion int) error {
	query := `
        UPDATE artworks
        SET category_id = $1, version = version + 1
        WHERE id = $2 AND version = $3
    `
	tag, err := r.q.Exec(ctx, query, categoryID, artworkID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to set artwork category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrStale(ctx, `SELECT id FROM artworks WHERE id = $1`, artworkID, model.ErrArtworkNotFound)
	}
	return nil
}

func (r *pgQueries) DeleteArtwork(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM artworks WHERE id = $1`, id, model.ErrArtworkNotFound)
}

const artworkViewQuery = `
    SELECT aw.id, aw.title, aw.date_posted, aw.description,
           aw.artist_id, COALESCE(ar.name, ''),
           aw.category_id, COALESCE(c.name, ''),
           aw.version
    FROM artworks aw
    LEFT JOIN artists ar ON ar.id = aw.artist_id
    LEFT JOIN categories c ON c.id = aw.category_id
`

func (r *pgQueries) ListArtworks(ctx context.Context) ([]model.ArtworkView, error) {
	return r.queryArtworkViews(ctx, artworkViewQuery+` ORDER BY aw.id`)
}

func (r *pgQueries) ListArtworksByArtist(ctx context.Context, artistID int64) ([]model.ArtworkView, error) {
	return r.queryArtworkViews(ctx, artworkViewQuery+` WHERE aw.artist_id = $1 ORDER BY aw.id`, artistID)
}

func (r *pgQueries) FindArtwork(ctx context.Context, id int64) (*model.ArtworkView, error) {
	views, err := r.queryArtworkViews(ctx, artworkViewQuery+` WHERE aw.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, model.ErrArtworkNotFound
	}
	return &views[0], nil
}

func (r *pgQueries) queryArtworkViews(ctx context.Context, query string, args ...any) ([]model.ArtworkView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artworks: %w", err)
	}
	defer rows.Close()

	artworks := []model.ArtworkView{}
	for rows.Next() {
		var v model.ArtworkView
		if err := rows.Scan(
			&v.ID, &v.Title, &v.DatePosted, &v.Description,
			&v.ArtistID, &v.ArtistName,
			&v.CategoryID, &v.CategoryName,
			&v.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		artworks = append(artworks, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artworks: %w", err)
	}
	return artworks, nil
}

func (r *pgQueries) ListArtworkTitlesByCategory(ctx context.Context, categoryID int64) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT title FROM artworks WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artwork titles: %w", err)
	}
	titles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan artwork titles: %w", err)
	}
	return titles, nil
}

func (r *pgQueries) ListArtworkIDsByCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT id FROM artworks WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artwork ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan artwork ids: %w", err)
	}
	return ids, nil
}

// ========================================
// HELPERS
// ========================================

func (r *pgQueries) exists(ctx context.Context, query string, id int64) (bool, error) {
	var found int64
	err := r.q.QueryRow(ctx, query, id).Scan(&found)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return true, nil
}

// missingOrStale runs after a version-checked write touched no row.
// Row gone → notFound, row present → ErrStaleVersion.
func (r *pgQueries) missingOrStale(ctx context.Context, query string, id int64, notFound error) error {
	exists, err := r.exists(ctx, query, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return ErrStaleVersion
}

func (r *pgQueries) deleteByID(ctx context.Context, query string, id int64, notFound error) error {
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}
	return nil
}
