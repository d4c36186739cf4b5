package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asahu12/finsight/internal/auth"
	"github.com/asahu12/finsight/internal/dashboard"
	"github.com/asahu12/finsight/internal/expense"
	"github.com/asahu12/finsight/internal/market"
	"github.com/asahu12/finsight/internal/user"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/trends", h.trends)
	r.Get("/category/{category}", h.insights)
	r.Get("/quick-stats", h.quickStats)
	r.Get("/portfolio", h.portfolio)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	params := dashboard.SummaryParams{UserID: userID}

	if s := r.URL.Query().Get("category"); s != "" {
		c := expense.Category(s)
		if !c.Valid() {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		params.Category = &c
	}

	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid startDate", http.StatusBadRequest)
			return
		}

		params.StartDate = &t
	}

	if s := r.URL.Query().Get("endDate"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			http.Error(w, "invalid endDate", http.StatusBadRequest)
			return
		}

		params.EndDate = &t
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		params.MonthLimit = n
	}

	summary, err := h.svc.Summary(r.Context(), params)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	monthsBack := 0
	if s := r.URL.Query().Get("months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid months", http.StatusBadRequest)
			return
		}

		monthsBack = n
	}

	points, err := h.svc.Trends(r.Context(), userID, monthsBack)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTrendResponse(points)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	category := expense.Category(chi.URLParam(r, "category"))

	in, err := h.svc.Insights(r.Context(), userID, category)
	if err != nil {
		if errors.Is(err, expense.ErrInvalidCategory) {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toInsightsResponse(in)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) quickStats(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	qs, err := h.svc.QuickStats(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toQuickStatsResponse(qs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) portfolio(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	p, err := h.svc.Portfolio(r.Context(), userID)
	if err != nil {
		if errors.Is(err, market.ErrNoQuote) {
			http.Error(w, "market data unavailable", http.StatusBadGateway)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPortfolioResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
