package investment

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
	"github.com/asahu12/finsight/internal/investment"
)

type Handler struct {
	svc *investment.Service
}

func NewHandler(svc *investment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.buy)
	r.Get("/", h.list)
	r.Get("/history", h.history)
	r.Put("/{id}", h.update)
	r.Post("/{id}/sell", h.sell)
}

type buyRequest struct {
	Symbol   string               `json:"symbol"`
	Name     string               `json:"name"`
	Quantity int64                `json:"quantity"`
	Price    decimal.Decimal      `json:"price"`
	BuyDate  time.Time            `json:"buy_date"`
	Type     investment.AssetType `json:"type"`
}

type positionResponse struct {
	ID          uuid.UUID            `json:"id"`
	Symbol      string               `json:"symbol"`
	Name        string               `json:"name"`
	Quantity    int64                `json:"quantity"`
	AvgBuyPrice decimal.Decimal      `json:"avg_buy_price"`
	BuyDate     time.Time            `json:"buy_date"`
	Type        investment.AssetType `json:"type"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
}

type historyResponse struct {
	ID         uuid.UUID            `json:"id"`
	Symbol     string               `json:"symbol"`
	Name       string               `json:"name"`
	Quantity   int64                `json:"quantity"`
	BuyPrice   decimal.Decimal      `json:"buy_price"`
	SellPrice  decimal.Decimal      `json:"sell_price"`
	BuyDate    time.Time            `json:"buy_date"`
	SellDate   time.Time            `json:"sell_date"`
	PnL        decimal.Decimal      `json:"pnl"`
	PnLPercent decimal.Decimal      `json:"pnl_percent"`
	Type       investment.AssetType `json:"type"`
}

func toPositionResponse(p *investment.Position) positionResponse {
	return positionResponse{
		ID:          p.ID,
		Symbol:      p.Symbol,
		Name:        p.Name,
		Quantity:    p.Quantity,
		AvgBuyPrice: p.AvgBuyPrice,
		BuyDate:     p.BuyDate,
		Type:        p.Type,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toHistoryResponse(rec *investment.History) historyResponse {
	return historyResponse{
		ID:         rec.ID,
		Symbol:     rec.Symbol,
		Name:       rec.Name,
		Quantity:   rec.Quantity,
		BuyPrice:   rec.BuyPrice,
		SellPrice:  rec.SellPrice,
		BuyDate:    rec.BuyDate,
		SellDate:   rec.SellDate,
		PnL:        rec.PnL,
		PnLPercent: rec.PnLPercent,
		Type:       rec.Type,
	}
}

func (h *Handler) buy(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Buy(r.Context(), investment.BuyParams{
		UserID:   userID,
		Symbol:   req.Symbol,
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		BuyDate:  req.BuyDate,
		Type:     req.Type,
	})
	if err != nil {
		if isValidationErr(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPositionResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	positions, err := h.svc.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]positionResponse, len(positions))
	for i, p := range positions {
		resp[i] = toPositionResponse(p)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updatePositionRequest struct {
	Name     *string          `json:"name,omitempty"`
	Quantity *int64           `json:"quantity,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
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

	var req updatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.Update(r.Context(), userID, id, investment.UpdateParams{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, investment.ErrNotFound):
			http.Error(w, "position not found", http.StatusNotFound)
		case isValidationErr(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPositionResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type sellRequest struct {
	SellPrice decimal.Decimal `json:"sell_price"`
}

func (h *Handler) sell(w http.ResponseWriter, r *http.Request) {
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

	var req sellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Sell(r.Context(), userID, id, req.SellPrice)
	if err != nil {
		switch {
		case errors.Is(err, investment.ErrNotFound):
			http.Error(w, "position not found", http.StatusNotFound)
		case isValidationErr(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toHistoryResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	records, err := h.svc.History(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]historyResponse, len(records))
	for i, rec := range records {
		resp[i] = toHistoryResponse(rec)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func isValidationErr(err error) bool {
	return errors.Is(err, investment.ErrInvalidQuantity) ||
		errors.Is(err, investment.ErrInvalidPrice) ||
		errors.Is(err, investment.ErrInvalidType)
}
