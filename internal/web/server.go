// Package web serves the pieshop JSON API. Every request runs in its own
// registry scope; handlers resolve the configured repository and notifier
// implementations by key.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ovenbird/keyed"
	"github.com/ovenbird/keyed/internal/config"
)

// Server routes the pieshop API through the per-request scope middleware.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	handler http.Handler
}

// New builds the server around the given container. The container should
// already hold the repository and notifier bindings named by cfg.
func New(c *keyed.Container, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, log: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pies", s.handlePies)
	mux.HandleFunc("GET /pies/of-the-week", s.handlePiesOfTheWeek)
	mux.HandleFunc("GET /pies/{id}", s.handlePieByID)
	mux.HandleFunc("GET /categories", s.handleCategories)
	mux.HandleFunc("POST /orders", s.handleOrder)

	s.handler = keyed.Middleware(c, logger)(mux)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.log.Error("encode response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
	w.Write([]byte("\n"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
