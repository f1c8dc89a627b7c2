// Package api exposes the decision-support backend over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/retentionai/retention-cli/internal/assistant"
	"github.com/retentionai/retention-cli/internal/pipeline"
	"github.com/retentionai/retention-cli/internal/simulate"
	"github.com/retentionai/retention-cli/internal/store"
)

// Server wires the scoring pipeline, snapshot store, simulator and chat
// assistant into the HTTP surface.
type Server struct {
	store          *store.Store
	coordinator    *pipeline.Coordinator
	simulator      *simulate.Simulator
	assistant      *assistant.Assistant
	maxUploadBytes int64
}

// New creates a Server.
func New(st *store.Store, coord *pipeline.Coordinator, sim *simulate.Simulator, chat *assistant.Assistant, maxUploadMB int) *Server {
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	return &Server{
		store:          st,
		coordinator:    coord,
		simulator:      sim,
		assistant:      chat,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// Router builds the chi route tree. CORS is wide open: the dashboard
// frontend is served from a different origin during development.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/upload", s.handleUpload)
		r.Get("/dashboard/summary", s.handleSummary)
		r.Get("/employees", s.handleEmployees)
		r.Get("/employees/{id}", s.handleEmployeeDetail)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/chat", s.handleChat)
	})

	return r
}
