// Package server exposes the analytics engine over HTTP: ingestion routes
// guarded by an API key, and read-only aggregation routes meant to sit behind
// a tailnet or localhost.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftstats/internal/catalog"
	"github.com/claude/liftstats/internal/engine"
	"github.com/claude/liftstats/internal/hevy"
	"github.com/claude/liftstats/internal/importer"
	"github.com/claude/liftstats/internal/ingest"
	"github.com/claude/liftstats/internal/models"
	"github.com/claude/liftstats/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      *storage.DB
	catalog *catalog.Resolver
	imp     *importer.Importer
	hevy    *hevy.Client // nil when no API key is configured
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a Server with all routes configured.
func New(db *storage.DB, resolver *catalog.Resolver, imp *importer.Importer, hevyClient *hevy.Client, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		catalog: resolver,
		imp:     imp,
		hevy:    hevyClient,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/import", s.handleImport)
			r.Post("/sync", s.handleSync)
		})

		// Analytics endpoints (no auth — tsnet handles access)
		r.Get("/summary", s.handleSummary)
		r.Get("/distribution", s.handleDistribution)
		r.Get("/exercises", s.handleExerciseStats)
		r.Get("/records", s.handleRecords)
		r.Get("/exercises/unconfigured", s.handleUnconfigured)
		r.Post("/exercises/custom", s.handleUpsertCustom)
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handlePutSettings)
		r.Get("/stats", s.handleStats)
	})
}

// settings loads the persisted engine settings, falling back to defaults.
func (s *Server) settings(ctx context.Context) engine.Settings {
	st, found, err := s.db.LoadSettings(ctx)
	if err != nil {
		s.log.Error("loading settings", "error", err)
	}
	if !found {
		return engine.DefaultSettings()
	}
	return st.Normalize()
}

// loadCanonical reads the stored rows, merges overlapping datasets and
// derives canonical sets under the current settings.
func (s *Server) loadCanonical(ctx context.Context) ([]engine.CanonicalSet, engine.Settings, error) {
	st := s.settings(ctx)
	raw, err := s.db.LoadRawSets(ctx)
	if err != nil {
		return nil, st, err
	}
	merged := ingest.MergeStored(raw)
	return engine.BuildCanonical(merged, s.catalog, st), st, nil
}

// loadRawMerged reads the stored rows merged across datasets, without the
// catalog pass.
func (s *Server) loadRawMerged(ctx context.Context) ([]models.RawSet, error) {
	raw, err := s.db.LoadRawSets(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.MergeStored(raw), nil
}
