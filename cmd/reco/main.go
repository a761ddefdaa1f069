package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/viant/reco/internal/app"
	"github.com/viant/reco/internal/httputil"
)

func main() {
	if err := run(); err != nil {
		slog.Default().Error("reco failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := app.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer deps.Close()
	return serve(ctx, deps)
}

// serve runs the HTTP server until ctx is done or the listener fails.
func serve(ctx context.Context, deps app.Deps) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", deps.Config.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("reco service listening", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdown)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log)
	r.Get("/healthz", httputil.HealthHandler(deps))
	r.Route("/api", func(r chi.Router) {
		r.Get("/artists", artistsHandler(deps))
		r.Post("/favorites", favoritesHandler(deps))
		r.Get("/artists/{id}/location", locationHandler(deps))
		r.Get("/artists/{id}/recommendations", recommendationsHandler(deps))
		r.Post("/search", searchHandler(deps))
	})
	return r
}
