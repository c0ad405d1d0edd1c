package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/roammate-api/internal/domain/session"
)

// Itinerary generation with a reasoning model can take well over a minute.
// The drain window matches the write window so a SIGTERM never cuts off a
// generation the server already accepted.
const (
	writeTimeout    = session.GenerationTimeout + 15*time.Second
	shutdownTimeout = writeTimeout
)

func newServer(deps *Dependencies) *http.Server {
	return &http.Server{
		Addr:              ":" + deps.Config.Server.Port,
		Handler:           SetupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       2 * time.Minute,
	}
}

// Run serves the API until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, deps *Dependencies) error {
	srv := newServer(deps)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Logger.Info("server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		deps.Logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		deps.Logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
