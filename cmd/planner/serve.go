package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/pkordes/planner/internal/handler"
	"github.com/pkordes/planner/internal/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the companion JSON API for the app",
		Long: `Serve the local companion API on PORT.

On startup the current trip is resumed and logged. See /openapi.yaml for
the routes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The server logs to stdout, like any long-running service.
			a, err := newApp(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer a.Close()
			return serve(cmd.Context(), a)
		},
	}
}

// router builds the full middleware chain around the handler routes.
// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer →
// CORS → body limit.
func router(a *app) http.Handler {
	srv := handler.NewServer(a.trips, a.creation, a.invites, a.binding,
		handler.WithLinkScheme(a.cfg.LinkScheme),
		handler.WithLogger(a.log),
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(a.cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(a.cfg.MaxBodyBytes))
	r.Mount("/", srv.Routes())
	return r
}

func serve(ctx context.Context, a *app) error {
	if trip, ok, err := a.trips.Resume(ctx); err != nil {
		a.log.Warn("could not resume current trip", "error", err)
	} else if ok {
		a.log.Info("resumed current trip", "trip_id", trip.ID, "summary", trip.Summary())
	}

	// Write timeout covers a remote call at its full timeout.
	srv := &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      router(a),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.cfg.RemoteTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for a signal, then give in-flight requests
	// up to 15 seconds to complete.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	a.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("server stopped")
	return nil
}
