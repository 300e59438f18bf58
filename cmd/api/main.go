package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/medisync/claims-api/internal/config"
	"github.com/medisync/claims-api/internal/handler"
	authHandler "github.com/medisync/claims-api/internal/handler/auth"
	hospitalHandler "github.com/medisync/claims-api/internal/handler/hospital"
	insurerHandler "github.com/medisync/claims-api/internal/handler/insurer"
	patientHandler "github.com/medisync/claims-api/internal/handler/patient"
	"github.com/medisync/claims-api/internal/middleware"
	"github.com/medisync/claims-api/internal/repository"
	"github.com/medisync/claims-api/internal/repository/postgres"
	"github.com/medisync/claims-api/internal/router"
	accountService "github.com/medisync/claims-api/internal/service/account"
	authService "github.com/medisync/claims-api/internal/service/auth"
	"github.com/medisync/claims-api/internal/service/intake"
	"github.com/medisync/claims-api/internal/service/query"
	"github.com/medisync/claims-api/pkg/auth"
	"github.com/medisync/claims-api/pkg/logger"
	redisBroker "github.com/medisync/claims-api/pkg/messaging/redis"
	"github.com/medisync/claims-api/pkg/security"
	"github.com/medisync/claims-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	patientClaims := postgres.NewPatientClaimRepository(db)
	hospitalClaims := postgres.NewHospitalClaimRepository(db)
	accounts := postgres.NewAccountRepository(db)
	analytics := postgres.NewAnalyticsRepository(db)
	outbox := postgres.NewOutboxRepository(db)

	hospitals := accountService.NewResolver(accounts)
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)

	authSvc := authService.NewService(accounts, jwtSvc, hasher, appLogger)
	intakeSvc := intake.NewService(patientClaims, hospitalClaims, hospitals, appLogger)
	querySvc := query.NewService(patientClaims, hospitalClaims, analytics, hospitals, appLogger)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(intakeSvc, querySvc, outbox)
	hospitalH := hospitalHandler.NewHandler(intakeSvc, querySvc, outbox, authMw)
	insurerH := insurerHandler.NewHandler(querySvc, authMw)
	baseH := handler.NewHandler()

	r := router.NewRouter(authH, patientH, hospitalH, insurerH, baseH, router.Config{
		RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst: cfg.RateLimit.Burst,
		CORS:      middleware.DefaultCORSConfig(),
	})
	r.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startOutboxProcessor(ctx, cfg, outbox, appLogger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(err, "forced shutdown")
	}
	appLogger.Info("server stopped")
}

// startOutboxProcessor runs the claim event pipeline when a broker is
// configured. A missing or unreachable broker is logged and skipped so
// the API still serves.
func startOutboxProcessor(ctx context.Context, cfg *config.Config, outbox repository.OutboxRepository, appLogger *logger.Logger) {
	if cfg.Redis.URL == "" {
		appLogger.Info("redis not configured, skipping outbox processor")
		return
	}

	zl := log.Logger
	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{URL: cfg.Redis.URL}, &zl)
	if err != nil {
		appLogger.Error(err, "failed to connect to redis, events will stay pending")
		return
	}

	processor := worker.NewOutboxProcessor(outbox, broker, worker.OutboxProcessorConfig{
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
	}, appLogger)

	go processor.Start(ctx)
}
