package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "atelier-backend/internal/api/http"
	"atelier-backend/internal/config"
	"atelier-backend/internal/jobs"
	"atelier-backend/internal/logger"
	"atelier-backend/internal/repository/postgres"
	"atelier-backend/internal/scheduler"
	"atelier-backend/internal/security"
	"atelier-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Atelier Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	tokenTTL := time.Duration(cfg.JWT.AccessTokenExpiry) * time.Minute

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, tokenTTL)
	availability := service.NewAvailabilityChecker(store.BookingRepository, store.CatalogRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.CatalogRepository,
		store.LedgerRepository,
		availability,
		service.FirstItemDepartment,
	)
	appointmentSvc := service.NewAppointmentService(
		store.AppointmentRepository,
		store.SalonServiceRepository,
		store.LedgerRepository,
	)
	catalogSvc := service.NewCatalogService(store.CatalogRepository, store.SalonServiceRepository)
	expenseSvc := service.NewExpenseService(store.ExpenseRepository, store.LedgerRepository)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)

	// Set up HTTP router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Bookings:     bookingSvc,
		Appointments: appointmentSvc,
		Catalog:      catalogSvc,
		Expenses:     expenseSvc,
		Ledger:       ledgerSvc,
		Branches:     store.BranchRepository,
		Clients:      store.ClientRepository,
	}, tokenManager)

	// Set up scheduled jobs
	jobRunner := jobs.NewJobRunner(db, store, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
