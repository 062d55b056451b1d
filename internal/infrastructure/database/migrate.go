package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations
var embedMigrations embed.FS

// Dialects understood by Migrate.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// goose keeps its base FS, dialect and logger in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending embedded migration for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	var dir string
	switch dialect {
	case DialectPostgres:
		dir = "migrations/postgres"
	case DialectSQLite:
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	log.Info().Str("dialect", dialect).Msg("[DATABASE] Migrations applied")
	return nil
}

// MigratePool runs the PostgreSQL migrations through a database/sql view of
// the pgx pool. The view is not closed since the pool belongs to the caller;
// idle connections go straight back to it.
func MigratePool(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	db.SetMaxIdleConns(0)
	return Migrate(ctx, db, DialectPostgres)
}

// gooseLogger routes goose output to zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	log.Debug().Msg("[MIGRATE] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (gooseLogger) Fatalf(format string, v ...any) {
	log.Fatal().Msg("[MIGRATE] " + strings.TrimSpace(fmt.Sprintf(format, v...)))
}
