package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gallery-backend/internal/domains/gallery/model"
)

// sqlQuerier is satisfied by both *sql.DB and *sql.Tx.
type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteRepository implements Store on an embedded SQLite database.
// Timestamps are stored as RFC 3339 text in UTC.
type sqliteRepository struct {
	*sqliteQueries
	db *sql.DB
}

// NewSQLiteRepository wraps an already migrated SQLite handle. Close closes db.
//
// The handle is capped at one open connection so that concurrent writers
// queue on the pool instead of failing with SQLITE_BUSY. A WithTx callback
// must therefore never call back into the Store itself.
func NewSQLiteRepository(db *sql.DB) Store {
	db.SetMaxOpenConns(1)
	return &sqliteRepository{
		sqliteQueries: &sqliteQueries{q: db},
		db:            db,
	}
}

func (r *sqliteRepository) WithTx(ctx context.Context, fn func(tx Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&sqliteQueries{q: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *sqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

type sqliteQueries struct {
	q sqlQuerier
}

// ========================================
// ARTISTS
// ========================================

func (r *sqliteQueries) GetArtist(ctx context.Context, id int64) (*model.Artist, error) {
	var (
		a          model.Artist
		bio, email sql.NullString
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, bio, email, version FROM artists WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &bio, &email, &a.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to get artist by id: %w", err)
	}
	a.Bio, a.Email = fromNull(bio), fromNull(email)
	return &a, nil
}

func (r *sqliteQueries) ArtistExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT id FROM artists WHERE id = ?`, id)
}

func (r *sqliteQueries) InsertArtist(ctx context.Context, a *model.Artist) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO artists (name, bio, email, version) VALUES (?, ?, ?, 1)`,
		a.Name, toNull(a.Bio), toNull(a.Email),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create artist: %w", err)
	}
	return r.assignID(res, &a.ID, &a.Version)
}

func (r *sqliteQueries) ReplaceArtist(ctx context.Context, a *model.Artist) error {
	if err := a.Validate(); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
        UPDATE artists
        SET name = ?, bio = ?, email = ?, version = version + 1
        WHERE id = ? AND version = ?`,
		a.Name, toNull(a.Bio), toNull(a.Email), a.ID, a.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update artist: %w", err)
	}
	return r.afterVersionedWrite(ctx, res, `SELECT id FROM artists WHERE id = ?`, a.ID, &a.Version, model.ErrArtistNotFound)
}

func (r *sqliteQueries) DeleteArtist(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM artists WHERE id = ?`, id, model.ErrArtistNotFound)
}

func (r *sqliteQueries) ListArtists(ctx context.Context) ([]model.ArtistView, error) {
	return r.queryArtistViews(ctx, `SELECT id, name, bio, email, version FROM artists ORDER BY id`)
}

func (r *sqliteQueries) FindArtist(ctx context.Context, id int64) (*model.ArtistView, error) {
	views, err := r.queryArtistViews(ctx, `SELECT id, name, bio, email, version FROM artists WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, model.ErrArtistNotFound
	}
	return &views[0], nil
}

func (r *sqliteQueries) queryArtistViews(ctx context.Context, query string, args ...any) ([]model.ArtistView, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	artists := []model.ArtistView{}
	for rows.Next() {
		var (
			v          model.ArtistView
			bio, email sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Name, &bio, &email, &v.Version); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		v.Bio, v.Email = fromNull(bio), fromNull(email)
		artists = append(artists, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artists: %w", err)
	}
	rows.Close()

	titles, err := r.titlesBy(ctx, "artist_id")
	if err != nil {
		return nil, err
	}
	for i := range artists {
		artists[i].ArtworkTitles = orEmpty(titles[artists[i].ID])
		artists[i].TotalArtworks = len(artists[i].ArtworkTitles)
	}
	return artists, nil
}

// ========================================
// CATEGORIES
// ========================================

func (r *sqliteQueries) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	var (
		c       model.Category
		created string
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name, date_created, version FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &created, &c.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}
	if c.DateCreated, err = parseTime(created); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteQueries) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT id FROM categories WHERE id = ?`, id)
}

func (r *sqliteQueries) InsertCategory(ctx context.Context, c *model.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO categories (name, date_created, version) VALUES (?, ?, 1)`,
		c.Name, formatTime(c.DateCreated),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create category: %w", err)
	}
	return r.assignID(res, &c.ID, &c.Version)
}

func (r *sqliteQueries) ReplaceCategory(ctx context.Context, c *model.Category) error {
	if err := c.Validate(); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
        UPDATE categories
        SET name = ?, date_created = ?, version = version + 1
        WHERE id = ? AND version = ?`,
		c.Name, formatTime(c.DateCreated), c.ID, c.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return r.afterVersionedWrite(ctx, res, `SELECT id FROM categories WHERE id = ?`, c.ID, &c.Version, model.ErrCategoryNotFound)
}

func (r *sqliteQueries) DeleteCategory(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM categories WHERE id = ?`, id, model.ErrCategoryNotFound)
}

func (r *sqliteQueries) ListCategories(ctx context.Context) ([]model.CategoryView, error) {
	return r.queryCategoryViews(ctx, `SELECT id, name, date_created, version FROM categories ORDER BY id`)
}

func (r *sqliteQueries) FindCategory(ctx context.Context, id int64) (*model.CategoryView, error) {
	views, err := r.queryCategoryViews(ctx, `SELECT id, name, date_created, version FROM categories WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, model.ErrCategoryNotFound
	}
	return &views[0], nil
}

func (r *sqliteQueries) queryCategoryViews(ctx context.Context, query string, args ...any) ([]model.CategoryView, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.CategoryView{}
	for rows.Next() {
		var (
			v       model.CategoryView
			created string
		)
		if err := rows.Scan(&v.ID, &v.Name, &created, &v.Version); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if v.DateCreated, err = parseTime(created); err != nil {
			return nil, err
		}
		categories = append(categories, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	rows.Close()

	titles, err := r.titlesBy(ctx, "category_id")
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].ArtworkTitles = orEmpty(titles[categories[i].ID])
		categories[i].TotalArtworks = len(categories[i].ArtworkTitles)
	}
	return categories, nil
}

// ========================================
// ARTWORKS
// ========================================

func (r *sqliteQueries) GetArtwork(ctx context.Context, id int64) (*model.Artwork, error) {
	var (
		a      model.Artwork
		posted string
		desc   sql.NullString
	)
	err := r.q.QueryRowContext(ctx, `
        SELECT id, title, date_posted, description, artist_id, category_id, version
        FROM artworks WHERE id = ?`, id,
	).Scan(&a.ID, &a.Title, &posted, &desc, &a.ArtistID, &a.CategoryID, &a.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrArtworkNotFound
		}
		return nil, fmt.Errorf("failed to get artwork by id: %w", err)
	}
	if a.DatePosted, err = parseTime(posted); err != nil {
		return nil, err
	}
	a.Description = fromNull(desc)
	return &a, nil
}

func (r *sqliteQueries) InsertArtwork(ctx context.Context, a *model.Artwork) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	res, err := r.q.ExecContext(ctx, `
        INSERT INTO artworks (title, date_posted, description, artist_id, category_id, version)
        VALUES (?, ?, ?, ?, ?, 1)`,
		a.Title, formatTime(a.DatePosted), toNull(a.Description), a.ArtistID, a.CategoryID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create artwork: %w", err)
	}
	return r.assignID(res, &a.ID, &a.Version)
}

func (r *sqliteQueries) ReplaceArtwork(ctx context.Context, a *model.Artwork) error {
	if err := a.Validate(); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
        UPDATE artworks
        SET title = ?, date_posted = ?, description = ?,
            artist_id = ?, category_id = ?, version = version + 1
        WHERE id = ? AND version = ?`,
		a.Title, formatTime(a.DatePosted), toNull(a.Description), a.ArtistID, a.CategoryID, a.ID, a.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update artwork: %w", err)
	}
	return r.afterVersionedWrite(ctx, res, `SELECT id FROM artworks WHERE id = ?`, a.ID, &a.Version, model.ErrArtworkNotFound)
}

func (r *sqliteQueries) SetArtworkCategory(ctx context.Context, artworkID, categoryID int64, expectedVersion int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE artworks SET category_id = ?, version = version + 1 WHERE id = ? AND version = ?`,
		categoryID, artworkID, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to set artwork category: %w", err)
	}
	version := expectedVersion
	return r.afterVersionedWrite(ctx, res, `SELECT id FROM artworks WHERE id = ?`, artworkID, &version, model.ErrArtworkNotFound)
}

func (r *sqliteQueries) DeleteArtwork(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, `DELETE FROM artworks WHERE id = ?`, id, model.ErrArtworkNotFound)
}

func (r *sqliteQueries) ListArtworks(ctx context.Context) ([]model.ArtworkView, error) {
	return r.queryArtworkViews(ctx, artworkViewQuery+` ORDER BY aw.id`)
}

func (r *sqliteQueries) ListArtworksByArtist(ctx context.Context, artistID int64) ([]model.ArtworkView, error) {
	return r.queryArtworkViews(ctx, artworkViewQuery+` WHERE aw.artist_id = ? ORDER BY aw.id`, artistID)
}

func (r *sqliteQueries) FindArtwork(ctx context.Context, id int64) (*model.ArtworkView, error) {
	views, err := r.queryArtworkViews(ctx, artworkViewQuery+` WHERE aw.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, model.ErrArtworkNotFound
	}
	return &views[0], nil
}

func (r *sqliteQueries) queryArtworkViews(ctx context.Context, query string, args ...any) ([]model.ArtworkView, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query artworks: %w", err)
	}
	defer rows.Close()

	artworks := []model.ArtworkView{}
	for rows.Next() {
		var (
			v      model.ArtworkView
			posted string
			desc   sql.NullString
		)
		if err := rows.Scan(
			&v.ID, &v.Title, &posted, &desc,
			&v.ArtistID, &v.ArtistName,
			&v.CategoryID, &v.CategoryName,
			&v.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan artwork: %w", err)
		}
		if v.DatePosted, err = parseTime(posted); err != nil {
			return nil, err
		}
		v.Description = fromNull(desc)
		artworks = append(artworks, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating artworks: %w", err)
	}
	return artworks, nil
}

func (r *sqliteQueries) ListArtworkTitlesByCategory(ctx context.Context, categoryID int64) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT title FROM artworks WHERE category_id = ? ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artwork titles: %w", err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan artwork title: %w", err)
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

func (r *sqliteQueries) ListArtworkIDsByCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id FROM artworks WHERE category_id = ? ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artwork ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan artwork id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ========================================
// HELPERS
// ========================================

// titlesBy groups every artwork title by the given foreign-key column.
// column is one of the two constant names used above, never user input.
func (r *sqliteQueries) titlesBy(ctx context.Context, column string) (map[int64][]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+column+`, title FROM artworks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query artwork titles: %w", err)
	}
	defer rows.Close()

	titles := make(map[int64][]string)
	for rows.Next() {
		var (
			key   int64
			title string
		)
		if err := rows.Scan(&key, &title); err != nil {
			return nil, fmt.Errorf("failed to scan artwork title: %w", err)
		}
		titles[key] = append(titles[key], title)
	}
	return titles, rows.Err()
}

func (r *sqliteQueries) exists(ctx context.Context, query string, id int64) (bool, error) {
	var found int64
	err := r.q.QueryRowContext(ctx, query, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return true, nil
}

func (r *sqliteQueries) assignID(res sql.Result, id *int64, version *int) (int64, error) {
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	*id, *version = newID, 1
	return newID, nil
}

// afterVersionedWrite bumps *version on success, otherwise tells a missing row
// from a stale one.
func (r *sqliteQueries) afterVersionedWrite(ctx context.Context, res sql.Result, existsQuery string, id int64, version *int, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		*version++
		return nil
	}

	exists, err := r.exists(ctx, existsQuery, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound
	}
	return ErrStaleVersion
}

func (r *sqliteQueries) deleteByID(ctx context.Context, query string, id int64, notFound error) error {
	res, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
