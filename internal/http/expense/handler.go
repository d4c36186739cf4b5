package expense

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
	"github.com/asahu12/finsight/internal/expense"
	"github.com/asahu12/finsight/internal/user"
)

type Handler struct {
	svc     *expense.Service
	userSvc *user.Service
}

func NewHandler(svc *expense.Service, userSvc *user.Service) *Handler {
	return &Handler{svc: svc, userSvc: userSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Put("/budget", h.setBudget)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Amount      decimal.Decimal  `json:"amount"`
	Category    expense.Category `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	GoalID      *uuid.UUID       `json:"goal_id,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
		GoalID:      req.GoalID,
	})
	if err != nil {
		if errors.Is(err, expense.ErrNegativeAmount) || errors.Is(err, expense.ErrInvalidCategory) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := expense.ListFilter{UserID: userID}

	if s := r.URL.Query().Get("category"); s != "" {
		c := expense.Category(s)
		if !c.Valid() {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		filter.Category = &c
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	es, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(es)); err != nil {
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

	e, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateExpenseRequest struct {
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Category    *expense.Category `json:"category,omitempty"`
	Description *string           `json:"description,omitempty"`
	Date        *time.Time        `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
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

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Update(r.Context(), userID, id, expense.UpdateParams{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, expense.ErrNotFound):
			http.Error(w, "expense not found", http.StatusNotFound)
		case errors.Is(err, expense.ErrNegativeAmount), errors.Is(err, expense.ErrInvalidCategory):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
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
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type setBudgetRequest struct {
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

func (h *Handler) setBudget(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.MonthlyBudget.IsNegative() {
		http.Error(w, "budget must not be negative", http.StatusBadRequest)
		return
	}

	if err := h.userSvc.SetMonthlyBudget(r.Context(), userID, req.MonthlyBudget); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
