package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asahu12/finsight/internal/auth"
	"github.com/asahu12/finsight/internal/expense"
	"github.com/asahu12/finsight/internal/importer"
)

type Handler struct {
	importSvc  *importer.Service
	expenseSvc *expense.Service
}

func NewHandler(importSvc *importer.Service, expenseSvc *expense.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		expenseSvc: expenseSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importSuccessResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserID(r.Context())
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Parse(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.expenseSvc.ImportBatch(r.Context(), userID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importSuccessResponse{
		Imported: len(result.Imported),
		Skipped:  result.Skipped,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
