// Package server provides the portal HTTP server.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openportal/portald/internal/config"
	"github.com/openportal/portald/internal/store"
)

// Chatter answers one user chat message with sanitized HTML.
type Chatter interface {
	ProcessMessage(ctx context.Context, message, username string) (string, error)
}

// Server wraps HTTP routes and dependencies.
type Server struct {
	users     store.Users
	requests  store.VacationRequests
	chatbot   Chatter
	cfg       config.Config
	logger    zerolog.Logger
	version   string
	commit    string
	buildDate string
	router    chi.Router
}

// New constructs the portal API server.
func New(users store.Users, requests store.VacationRequests, chatbot Chatter, cfg config.Config, logger zerolog.Logger, version, commit, buildDate string) *Server {
	s := &Server{
		users:     users,
		requests:  requests,
		chatbot:   chatbot,
		cfg:       cfg,
		logger:    logger.With().Str("component", "server").Logger(),
		version:   version,
		commit:    commit,
		buildDate: buildDate,
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(recoverer(s.logger))
	r.Use(bodyLimit(1 << 20))

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", s.handleHello)
		r.Post("/login", s.handleLogin)
		r.With(rateLimit(s.cfg.ChatRatePerMinute, s.cfg.ChatRateBurst)).
			Post("/chat", s.handleChat)
		r.Get("/vacation-requests", s.handleListVacationRequests)
		r.Post("/users", s.handleAddUser)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"version":   s.version,
		"commit":    s.commit,
		"buildDate": s.buildDate,
	})
}

func (s *Server) handleHello(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Hello from the backend!"})
}
