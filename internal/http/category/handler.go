package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asahu12/finsight/internal/categorize"
	"github.com/asahu12/finsight/internal/expense"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/rules", h.learn)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(expense.Categories()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type suggestResponse struct {
	Description string           `json:"description"`
	Category    expense.Category `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	if description == "" {
		http.Error(w, "description query parameter is required", http.StatusBadRequest)
		return
	}

	suggested, err := h.svc.Suggest(r.Context(), description)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		Description: description,
		Category:    suggested,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	Pattern  string           `json:"pattern"`
	Category expense.Category `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Pattern == "" {
		http.Error(w, "pattern is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, req.Category); err != nil {
		if errors.Is(err, expense.ErrInvalidCategory) {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusCreated)
}
