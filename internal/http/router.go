package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/asahu12/finsight/internal/auth"
	"github.com/asahu12/finsight/internal/http/account"
	"github.com/asahu12/finsight/internal/http/category"
	"github.com/asahu12/finsight/internal/http/dashboard"
	"github.com/asahu12/finsight/internal/http/expense"
	"github.com/asahu12/finsight/internal/http/goal"
	"github.com/asahu12/finsight/internal/http/importcsv"
	"github.com/asahu12/finsight/internal/http/investment"
)

func New(
	issuer *auth.Issuer,
	accountV1 *account.Handler,
	dashboardV1 *dashboard.Handler,
	expensesV1 *expense.Handler,
	importV1 *importcsv.Handler,
	goalsV1 *goal.Handler,
	investmentsV1 *investment.Handler,
	categoriesV1 *category.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(issuer.Middleware)

			r.Route("/dashboard", dashboardV1.Routes)

			r.Route("/expenses", func(r chi.Router) {
				r.Route("/import", importV1.Routes)
				expensesV1.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				goalsV1.Routes(r)
			})

			r.Route("/investments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				investmentsV1.Routes(r)
			})

			r.Route("/categories", categoriesV1.Routes)
		})
	})

	return router
}
