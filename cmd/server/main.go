package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/api"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/config"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/database"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/logging"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/repository"
	"github.com/amhaziq/Net-Worth-Tracker-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logging.SetGlobalLogger(logger)

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}

	logger.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	// Create repositories
	investmentRepo := repository.NewInvestmentRepository(db)
	forexRepo := repository.NewForexRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	mortgageRepo := repository.NewMortgageRepository(db)
	balanceRepo := repository.NewBalanceRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	forexService := service.NewForexService(forexRepo, priceRepo)
	investmentService := service.NewInvestmentService(investmentRepo, priceRepo)
	mortgageService := service.NewMortgageService(mortgageRepo)
	balanceService := service.NewBalanceService(balanceRepo, transactionRepo)
	transactionService := service.NewTransactionService(transactionRepo, balanceRepo)
	valuationService := service.NewValuationService(investmentRepo, priceRepo, mortgageRepo, balanceRepo, transactionRepo, forexService)
	snapshotService := service.NewSnapshotService(snapshotRepo, investmentRepo, priceRepo, forexService, logger)

	// Daily snapshot job
	scheduler := cron.New()
	if cfg.Snapshot.Enabled {
		_, err := scheduler.AddFunc(cfg.Snapshot.Schedule, func() {
			if err := snapshotService.RecordDailySnapshots(time.Now().UTC()); err != nil {
				logger.Error().Err(err).Msg("daily snapshot run failed")
			}
		})
		if err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.Snapshot.Schedule).Msg("invalid snapshot schedule")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Create router
	router := api.NewRouter(db, api.Services{
		Investment:  investmentService,
		Forex:       forexService,
		Mortgage:    mortgageService,
		Balance:     balanceService,
		Transaction: transactionService,
		Valuation:   valuationService,
		Snapshot:    snapshotService,
	}, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
