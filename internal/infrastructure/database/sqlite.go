package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens the embedded store at path. ":memory:" is not supported
// because every pooled connection would see its own empty database.
//
// The handle is capped at one open connection: SQLite serializes writers
// anyway and a single connection keeps transactions from failing with
// SQLITE_BUSY under concurrent requests.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" || path == ":memory:" {
		return nil, fmt.Errorf("invalid sqlite path %q", path)
	}

	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")

	db, err := sql.Open("sqlite", "file:"+path+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}

	log.Info().Str("path", path).Msg("[DATABASE] SQLite opened")
	return db, nil
}
