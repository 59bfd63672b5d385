package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog"

	"github.com/careerpath/admin-backend/internal/config"
	"github.com/careerpath/admin-backend/internal/database"
	"github.com/careerpath/admin-backend/internal/events"
	"github.com/careerpath/admin-backend/internal/handler"
	"github.com/careerpath/admin-backend/internal/logger"
	"github.com/careerpath/admin-backend/internal/repository"
	"github.com/careerpath/admin-backend/internal/router"
	"github.com/careerpath/admin-backend/internal/service"
	"github.com/careerpath/admin-backend/internal/validator"
	"github.com/careerpath/admin-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("auth", cfg.AuthProvider).
		Msg("Starting Career Guidance Admin Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Initialize Firebase ───────────────────────────────────────────
	var app *firebase.App
	if cfg.StoreDriver == config.StoreFirestore || cfg.AuthProvider == config.AuthFirebase {
		var err error
		app, err = database.NewFirebaseApp(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Firebase")
		}
	}

	// ─── Open Document Store ───────────────────────────────────────────
	store, err := database.NewStore(ctx, cfg, app, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer store.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}
	bus := events.NewBus(rdb, log)

	// ─── Identity Verifier ─────────────────────────────────────────────
	verifier, err := newVerifier(ctx, cfg, app)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize identity verifier")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	institutionRepo := repository.NewInstitutionRepository(store)
	facultyRepo := repository.NewFacultyRepository(store)
	companyRepo := repository.NewCompanyRepository(store)
	userRepo := repository.NewUserRepository(store)
	admissionRepo := repository.NewAdmissionRepository(store)
	reportRepo := repository.NewReportRepository(store)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(verifier, userRepo)
	institutionService := service.NewInstitutionService(institutionRepo, bus)
	facultyService := service.NewFacultyService(facultyRepo, bus)
	companyService := service.NewCompanyService(companyRepo, bus)
	userService := service.NewUserService(userRepo, bus)
	admissionService := service.NewAdmissionService(admissionRepo, bus)
	reportService := service.NewReportService(reportRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(),
		Institution: handler.NewInstitutionHandler(institutionService),
		Faculty:     handler.NewFacultyHandler(facultyService),
		Company:     handler.NewCompanyHandler(companyService),
		User:        handler.NewUserHandler(userService),
		Admission:   handler.NewAdmissionHandler(admissionService),
		Report:      handler.NewReportHandler(reportService),
		Events:      handler.NewEventsHandler(bus, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	var workers sync.WaitGroup

	reconcileWorker := worker.NewReconcileWorker(facultyService, cfg.ReconcileInterval, log)
	workers.Add(1)
	go func() {
		defer workers.Done()
		reconcileWorker.Start(workerCtx)
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(ctx, authService, rdb, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for the current pass to end.
	workerCancel()
	workers.Wait()

	log.Info().Msg("Shutdown complete")
}

// newVerifier builds the identity verifier selected by AUTH_PROVIDER.
func newVerifier(ctx context.Context, cfg *config.Config, app *firebase.App) (service.IdentityVerifier, error) {
	if cfg.AuthProvider == config.AuthJWT {
		return service.NewJWTVerifier(cfg.JWTSecret, cfg.JWTExpiry), nil
	}
	client, err := database.NewAuthClient(ctx, app)
	if err != nil {
		return nil, err
	}
	return service.NewFirebaseVerifier(client, cfg.AuthCheckRevoked), nil
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
