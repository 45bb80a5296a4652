package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api/middleware"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/config"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	Investment  *service.InvestmentService
	Forex       *service.ForexService
	Mortgage    *service.MortgageService
	Balance     *service.BalanceService
	Transaction *service.TransactionService
	Valuation   *service.ValuationService
	Snapshot    *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(db *sql.DB, services Services, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(db)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/investments", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(services.Investment)
			r.Get("/", investmentHandler.ListEvents)
			r.Post("/", investmentHandler.CreateEvent)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", investmentHandler.DeleteEvent)
			})
		})

		r.Route("/prices", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(services.Investment)
			r.Get("/", investmentHandler.ListPrices)
			r.Put("/", investmentHandler.UpsertPrice)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Valuation, services.Snapshot)
			r.Get("/overview", portfolioHandler.Overview)
			r.Get("/holdings", portfolioHandler.Holdings)
			r.Get("/snapshots", portfolioHandler.Snapshots)
		})

		r.Route("/forex", func(r chi.Router) {
			forexHandler := handlers.NewForexHandler(services.Forex)
			r.Get("/", forexHandler.ListObservations)
			r.Post("/", forexHandler.CreateObservation)
			r.Get("/rates", forexHandler.Rates)
			r.Put("/rates", forexHandler.SetSpotRate)
		})

		r.Route("/mortgages", func(r chi.Router) {
			mortgageHandler := handlers.NewMortgageHandler(services.Mortgage)
			r.Get("/", mortgageHandler.List)
			r.Post("/", mortgageHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", mortgageHandler.Detail)
				r.Delete("/", mortgageHandler.Delete)
				r.Post("/payments", mortgageHandler.AddPayment)
				r.Post("/rates", mortgageHandler.AddRateChange)
			})
		})

		r.Route("/balance", func(r chi.Router) {
			balanceHandler := handlers.NewBalanceHandler(services.Balance, services.Valuation)
			r.Get("/sheet", balanceHandler.BalanceSheet)
			r.Get("/cashflow", balanceHandler.CashFlow)
			r.Route("/accounts", func(r chi.Router) {
				r.Get("/", balanceHandler.ListAccounts)
				r.Post("/", balanceHandler.CreateAccount)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Put("/", balanceHandler.EditAccount)
					r.Delete("/", balanceHandler.DeleteAccount)
					r.Post("/adjust", balanceHandler.AdjustAccount)
					r.Get("/history", balanceHandler.History)
				})
			})
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(services.Transaction)
			r.Get("/", transactionHandler.List)
			r.Post("/", transactionHandler.Create)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/", transactionHandler.Update)
				r.Delete("/", transactionHandler.Delete)
			})
		})
	})

	return r
}
