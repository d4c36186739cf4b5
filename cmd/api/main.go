package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/asahu12/finsight/internal/auth"
	"github.com/asahu12/finsight/internal/categorize"
	categorizeStore "github.com/asahu12/finsight/internal/categorize/store"
	"github.com/asahu12/finsight/internal/config"
	"github.com/asahu12/finsight/internal/dashboard"
	"github.com/asahu12/finsight/internal/database"
	"github.com/asahu12/finsight/internal/expense"
	expenseStore "github.com/asahu12/finsight/internal/expense/store"
	"github.com/asahu12/finsight/internal/goal"
	goalStore "github.com/asahu12/finsight/internal/goal/store"
	finsightHttp "github.com/asahu12/finsight/internal/http"
	accountHandler "github.com/asahu12/finsight/internal/http/account"
	categoryHandler "github.com/asahu12/finsight/internal/http/category"
	dashboardHandler "github.com/asahu12/finsight/internal/http/dashboard"
	expenseHandler "github.com/asahu12/finsight/internal/http/expense"
	goalHandler "github.com/asahu12/finsight/internal/http/goal"
	importHandler "github.com/asahu12/finsight/internal/http/importcsv"
	investmentHandler "github.com/asahu12/finsight/internal/http/investment"
	"github.com/asahu12/finsight/internal/importer"
	"github.com/asahu12/finsight/internal/investment"
	investmentStore "github.com/asahu12/finsight/internal/investment/store"
	"github.com/asahu12/finsight/internal/market"
	"github.com/asahu12/finsight/internal/user"
	userStore "github.com/asahu12/finsight/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	quoter := market.NewClient(cfg.Market.BaseURL, market.NewCache(cfg.Market.CacheTTL))

	var (
		ledger            = expenseStore.New(db)
		users             = userStore.New(db)
		holdings          = investmentStore.New(db)
		userService       = user.NewService(users)
		expenseService    = expense.NewService(ledger)
		goalService       = goal.NewService(goalStore.New(db), ledger)
		investmentService = investment.NewService(holdings)
		categorizeService = categorize.NewService(categorizeStore.New(db))
		importService     = importer.NewService(categorizeService)
		dashboardService  = dashboard.NewService(ledger, users, holdings, quoter)
	)

	var (
		accountH    = accountHandler.NewHandler(userService, issuer)
		dashboardH  = dashboardHandler.NewHandler(dashboardService)
		expenseH    = expenseHandler.NewHandler(expenseService, userService)
		importH     = importHandler.NewHandler(importService, expenseService)
		goalH       = goalHandler.NewHandler(goalService)
		investmentH = investmentHandler.NewHandler(investmentService)
		categoryH   = categoryHandler.NewHandler(categorizeService)
	)

	router := finsightHttp.New(issuer, accountH, dashboardH, expenseH, importH, goalH, investmentH, categoryH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
