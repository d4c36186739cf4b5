package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/asahu12/finsight/internal/auth"
	"github.com/asahu12/finsight/internal/dashboard"
	"github.com/asahu12/finsight/internal/expense"
	dashboardHandler "github.com/asahu12/finsight/internal/http/dashboard"
	"github.com/asahu12/finsight/internal/user"
)

func newRouter(svc *dashboard.Service) http.Handler {
	r := chi.NewRouter()
	h := dashboardHandler.NewHandler(svc)
	r.Route("/dashboard", h.Routes)

	return r
}

func get(t *testing.T, router http.Handler, userID uuid.UUID, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Summary_QueryParams(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	ledger := dashboard.NewMockLedger(ctrl)
	users := dashboard.NewMockUsers(ctrl)
	holdings := dashboard.NewMockHoldings(ctrl)
	quoter := dashboard.NewMockQuoter(ctrl)

	users.EXPECT().
		GetUser(gomock.Any(), userID).
		Return(&user.User{ID: userID, Name: "Asha", Email: "asha@example.com"}, nil)

	var captured []expense.ListFilter

	ledger.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f expense.ListFilter) ([]*expense.Expense, error) {
			captured = append(captured, f)
			return nil, nil
		}).
		AnyTimes()

	router := newRouter(dashboard.NewService(ledger, users, holdings, quoter))

	rec := get(t, router, userID, "/dashboard?startDate=2026-01-01&endDate=2026-03-01&limit=3")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotEmpty(t, captured)
	window := captured[0]
	require.NotNil(t, window.StartDate)
	require.NotNil(t, window.EndDate)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *window.StartDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *window.EndDate)
}

func TestHandler_Summary_RejectsMalformedParams(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	svc := dashboard.NewService(
		dashboard.NewMockLedger(ctrl),
		dashboard.NewMockUsers(ctrl),
		dashboard.NewMockHoldings(ctrl),
		dashboard.NewMockQuoter(ctrl),
	)
	router := newRouter(svc)

	tests := map[string]string{
		"bad startDate": "/dashboard?startDate=tomorrow",
		"bad endDate":   "/dashboard?endDate=01-2026",
		"bad limit":     "/dashboard?limit=six",
		"bad category":  "/dashboard?category=Snacks",
	}

	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			rec := get(t, router, userID, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Trends_RejectsMalformedMonths(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	svc := dashboard.NewService(
		dashboard.NewMockLedger(ctrl),
		dashboard.NewMockUsers(ctrl),
		dashboard.NewMockHoldings(ctrl),
		dashboard.NewMockQuoter(ctrl),
	)

	rec := get(t, newRouter(svc), userID, "/dashboard/trends?months=all")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
