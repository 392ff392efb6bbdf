// Package web provides the HTTP JSON API over the pricing and matching
// engines.
package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/logging"
	"github.com/evcraddock/lease-rules/internal/matching"
)

// Server is the API HTTP server.
type Server struct {
	listings *listing.Repository
	opts     matching.Options
	router   chi.Router
}

// NewServer creates an API server backed by the given database.
func NewServer(db *sql.DB, opts matching.Options) *Server {
	s := &Server{
		listings: listing.NewRepository(db),
		opts:     opts,
		router:   chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.RequestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/listings", s.apiListListings)
		r.Post("/listings", s.apiSaveListing)
		r.Get("/listings/{id}", s.apiGetListing)
		r.Delete("/listings/{id}", s.apiDeleteListing)
		r.Get("/listings/{id}/pricing", s.apiListingPricing)

		r.Post("/pricing", s.apiPricing)
		r.Post("/pricing/guest", s.apiGuestPrice)

		r.Post("/match", s.apiMatch)
		r.Post("/match/score", s.apiMatchScore)
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting API server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slog.Info("shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
