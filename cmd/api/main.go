package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/config"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hr-portal-backend/internal/handler/http"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/tracing"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/postgresql"
	absenceService "github.com/cmlabs-hris/hr-portal-backend/internal/service/absence"
	serviceAuth "github.com/cmlabs-hris/hr-portal-backend/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hr-portal-backend/internal/service/employee"
	feedbackService "github.com/cmlabs-hris/hr-portal-backend/internal/service/feedback"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.App.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, logger, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, cfg.App.Env)
	if err != nil {
		return fmt.Errorf("error initializing tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("Tracing shutdown error", "error", err)
		}
	}()

	var (
		txManager    database.TxManager
		employeeRepo employee.EmployeeRepository
		absenceRepo  absence.AbsenceRequestRepository
		feedbackRepo feedback.FeedbackRepository
	)
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return fmt.Errorf("error connecting to database: %w", err)
		}
		defer db.Close()

		if cfg.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("error running migrations: %w", err)
			}
			slog.Info("Database migrations applied")
		}

		txManager = postgresql.NewTxManager(db)
		employeeRepo = postgresql.NewEmployeeRepository(db)
		absenceRepo = postgresql.NewAbsenceRequestRepository(db)
		feedbackRepo = postgresql.NewFeedbackRepository(db)
	case config.StorageDriverMemory:
		store := memory.NewStore()
		txManager = memory.NewTxManager(store)
		employeeRepo = memory.NewEmployeeRepository(store)
		absenceRepo = memory.NewAbsenceRequestRepository(store)
		feedbackRepo = memory.NewFeedbackRepository(store)
		slog.Warn("Using in-memory storage, data is lost on restart")
	default:
		return fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	revocations := jwt.NewMemoryRevocationStore()
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		defer rdb.Close()
		revocations = jwt.NewRedisRevocationStore(rdb)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.Issuer, cfg.JWT.Audience, revocations)

	if cfg.SeedDemoData {
		if _, err := fixtures.SeedDemoData(ctx, fixtures.Repositories{
			TxManager: txManager,
			Employees: employeeRepo,
			Absences:  absenceRepo,
			Feedbacks: feedbackRepo,
		}); err != nil {
			return fmt.Errorf("error seeding demo data: %w", err)
		}
	}

	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	absenceSvc := absenceService.NewAbsenceService(txManager, absenceRepo, employeeRepo)
	feedbackSvc := feedbackService.NewFeedbackService(feedbackRepo, employeeRepo)

	router := appHTTP.NewRouter(cfg, JWTService, employeeRepo, appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(authService),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc),
		Absence:  appHTTP.NewAbsenceHandler(absenceSvc),
		Feedback: appHTTP.NewFeedbackHandler(feedbackSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           otelhttp.NewHandler(router, "hr-portal"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "storage", cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
