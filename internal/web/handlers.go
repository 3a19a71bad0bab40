package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ovenbird/keyed"
	"github.com/ovenbird/keyed/internal/catalog"
	"github.com/ovenbird/keyed/internal/notify"
)

type piesResponse struct {
	Pies []catalog.Pie `json:"pies"`
}

type categoriesResponse struct {
	Categories []catalog.Category `json:"categories"`
}

type orderRequest struct {
	Customer string `json:"customer"`
	PieID    int64  `json:"pie_id"`
}

type orderResponse struct {
	OrderID      string      `json:"order_id"`
	Pie          catalog.Pie `json:"pie"`
	Confirmation string      `json:"confirmation"`
}

// pieRepo resolves the repository implementation the configuration names.
func (s *Server) pieRepo(r *http.Request) (catalog.PieRepository, error) {
	scope, ok := keyed.ScopeFrom(r.Context())
	if !ok {
		return nil, errors.New("no scope on request context")
	}
	return keyed.Resolve[catalog.PieRepository](scope, s.cfg.Repository)
}

func (s *Server) categoryRepo(r *http.Request) (catalog.CategoryRepository, error) {
	scope, ok := keyed.ScopeFrom(r.Context())
	if !ok {
		return nil, errors.New("no scope on request context")
	}
	return keyed.Resolve[catalog.CategoryRepository](scope, s.cfg.Repository)
}

func (s *Server) handlePies(w http.ResponseWriter, r *http.Request) {
	repo, err := s.pieRepo(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pies, err := repo.Pies(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, piesResponse{Pies: pies})
}

func (s *Server) handlePiesOfTheWeek(w http.ResponseWriter, r *http.Request) {
	repo, err := s.pieRepo(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pies, err := repo.PiesOfTheWeek(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, piesResponse{Pies: pies})
}

func (s *Server) handlePieByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid pie id")
		return
	}
	repo, err := s.pieRepo(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pie, err := repo.PieByID(r.Context(), id)
	if errors.Is(err, catalog.ErrPieNotFound) {
		s.writeError(w, http.StatusNotFound, "pie not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, pie)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	repo, err := s.categoryRepo(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	categories, err := repo.Categories(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid order body")
		return
	}
	if req.Customer == "" {
		s.writeError(w, http.StatusBadRequest, "customer is required")
		return
	}

	repo, err := s.pieRepo(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	pie, err := repo.PieByID(r.Context(), req.PieID)
	if errors.Is(err, catalog.ErrPieNotFound) {
		s.writeError(w, http.StatusNotFound, "pie not found")
		return
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !pie.InStock {
		s.writeError(w, http.StatusConflict, "pie is out of stock")
		return
	}

	scope, _ := keyed.ScopeFrom(r.Context())
	notifier, err := keyed.Resolve[notify.Notifier](scope, s.cfg.Notifier)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	confirmation := notifier.Confirm(r.Context(), req.Customer, pie.Name)
	s.log.Info("order placed",
		"request_id", keyed.RequestID(w),
		"customer", req.Customer,
		"pie", pie.Name,
		"notifier", s.cfg.Notifier)

	s.writeJSON(w, http.StatusCreated, orderResponse{
		OrderID:      uuid.NewString(),
		Pie:          pie,
		Confirmation: confirmation,
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	s.writeError(w, http.StatusInternalServerError, "internal error")
}
