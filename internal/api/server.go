package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/deckdown/internal/config"
	"github.com/dgallion1/deckdown/internal/pipeline"
	"github.com/dgallion1/deckdown/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for deckdown.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	renderer     *render.Renderer
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, renderer *render.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		renderer:     renderer,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DeckdownAPIKey, s.log))

		r.Post("/api/decks", s.handleCreateDeck)
		r.Post("/api/decks/batch", s.handleBatchCreate)
		r.Get("/api/imports/{jobID}/status", s.handleImportStatus)

		r.Get("/api/decks", s.handleListDecks)
		r.Get("/api/decks/{deckID}", s.handleGetDeck)
		r.Get("/api/decks/{deckID}/html", s.handleDeckHTML)
		r.Get("/api/decks/{deckID}/stats", s.handleDeckStats)
		r.Delete("/api/decks/{deckID}", s.handleDeleteDeck)

		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
