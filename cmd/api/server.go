package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"gallery-backend/pkg/container"
)

const shutdownTimeout = 10 * time.Second

// Serve builds the container, runs the HTTP server and shuts it down
// gracefully on SIGINT or SIGTERM.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.NewContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        SetupRouter(appContainer),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", srv.Addr).
			Str("health", fmt.Sprintf("http://localhost:%s/api/v1/health", port)).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}
