package goal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asahu12/finsight/internal/auth"
	"github.com/asahu12/finsight/internal/goal"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createGoalRequest struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     time.Time       `json:"deadline"`
	Description  string          `json:"description"`
}

type goalResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	Deadline           time.Time       `json:"deadline"`
	Description        string          `json:"description,omitempty"`
	CurrentAmount      decimal.Decimal `json:"current_amount"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	ProgressPercentage float64         `json:"progress_percentage"`
	Insight            string          `json:"insight"`
	CreatedAt          time.Time       `json:"created_at"`
}

func toResponse(g *goal.Goal, p *goal.Progress) goalResponse {
	return goalResponse{
		ID:                 g.ID,
		Title:              g.Title,
		TargetAmount:       g.TargetAmount,
		Deadline:           g.Deadline,
		Description:        g.Description,
		CurrentAmount:      p.CurrentAmount,
		RemainingAmount:    p.RemainingAmount,
		ProgressPercentage: p.ProgressPercentage,
		Insight:            p.Insight,
		CreatedAt:          g.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateParams{
		UserID:       userID,
		Title:        req.Title,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, goal.ErrInvalidTarget) ||
			errors.Is(err, goal.ErrMissingTitle) ||
			errors.Is(err, goal.ErrMissingDeadline) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	progress, err := h.svc.ComputeProgress(r.Context(), g)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(g, progress)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	goals, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]goalResponse, 0, len(goals))

	for _, g := range goals {
		progress, err := h.svc.ComputeProgress(r.Context(), g)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp = append(resp, toResponse(g, progress))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	g, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	progress, err := h.svc.ComputeProgress(r.Context(), g)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(g, progress)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
