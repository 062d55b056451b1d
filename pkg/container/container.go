package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gallery-backend/internal/config"
	galleryHandler "gallery-backend/internal/domains/gallery/handler"
	galleryRepo "gallery-backend/internal/domains/gallery/repository"
	galleryService "gallery-backend/internal/domains/gallery/service"
	"gallery-backend/internal/infrastructure/database"
)

// Container holds the application's dependency graph.
//
// Initialization order:
// 1. Config
// 2. Store (PostgreSQL pool or SQLite file) and migrations
// 3. Services
// 4. Handlers
type Container struct {
	Config *config.Config

	// Infrastructure. DB is nil when running on SQLite.
	DB    *database.PostgresDB
	Store galleryRepo.Store

	// Services
	Coordinator galleryService.CoordinatorInterface
	Query       galleryService.QueryInterface

	// Handlers
	ArtistHandler   *galleryHandler.ArtistHandler
	CategoryHandler *galleryHandler.CategoryHandler
	ArtworkHandler  *galleryHandler.ArtworkHandler
}

// NewContainer builds the whole dependency graph from the environment.
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("env", cfg.App.Environment).Str("driver", cfg.Database.Driver).Msg("Config loaded")

	c := &Container{Config: cfg}
	if err := c.initStore(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container ready")
	return c, nil
}

// NewWithStore wires services and handlers on an existing store.
func NewWithStore(cfg *config.Config, store galleryRepo.Store) *Container {
	c := &Container{Config: cfg, Store: store}
	c.initServices()
	c.initHandlers()
	return c
}

func (c *Container) initStore(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	switch c.Config.Database.Driver {
	case config.DriverSQLite:
		sqlDB, err := database.OpenSQLite(connectCtx, c.Config.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite: %w", err)
		}
		if err := database.Migrate(connectCtx, sqlDB, database.DialectSQLite); err != nil {
			sqlDB.Close()
			return fmt.Errorf("failed to migrate sqlite: %w", err)
		}
		c.Store = galleryRepo.NewSQLiteRepository(sqlDB)

	default:
		dbConfig, err := c.Config.Database.PostgresConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if err := db.HealthCheck(connectCtx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		if err := database.MigratePool(connectCtx, db.Pool); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		c.Store = galleryRepo.NewPostgresRepository(db.Pool)
	}

	log.Info().Msg("Store ready")
	return nil
}

func (c *Container) initServices() {
	c.Coordinator = galleryService.NewCoordinator(c.Store, c.Config.Gallery.DefaultCategoryID)
	c.Query = galleryService.NewQueryService(c.Store)
}

func (c *Container) initHandlers() {
	c.ArtistHandler = galleryHandler.NewArtistHandler(c.Coordinator, c.Query)
	c.CategoryHandler = galleryHandler.NewCategoryHandler(c.Coordinator, c.Query)
	c.ArtworkHandler = galleryHandler.NewArtworkHandler(c.Coordinator, c.Query)
}

// Cleanup releases the store and the connection pool.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up resources")

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
}
