package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/applytrack/applytrack/config"
	"github.com/applytrack/applytrack/internal/auth"
	"github.com/applytrack/applytrack/internal/email"
	"github.com/applytrack/applytrack/internal/health"
	"github.com/applytrack/applytrack/internal/infrastructure/postgres"
	ctxlog "github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/metrics"
	"github.com/applytrack/applytrack/internal/objectstore"
	"github.com/applytrack/applytrack/internal/ratelimit"
	"github.com/applytrack/applytrack/internal/reminder"
	httptransport "github.com/applytrack/applytrack/internal/transport/http"
	"github.com/applytrack/applytrack/internal/transport/http/handler"
	"github.com/applytrack/applytrack/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET is not set, signing tokens with the insecure development default")
	}

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	appRepo := postgres.NewApplicationRepository(pool)
	resumeRepo := postgres.NewResumeRepository(pool)

	// Rate limiting: in-process by default, Redis when configured
	healthDeps := map[string]health.Pinger{"postgres": pool}
	var limitStore ratelimit.Store
	memStore := ratelimit.NewMemoryStore()
	limitStore = memStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			stop()
			log.Fatalf("redis: %v", err)
		}
		client := redis.NewClient(opts)
		limitStore = ratelimit.NewRedisStore(client)
		healthDeps["redis"] = redisPinger{client}
	}

	// Resume document storage
	var objects objectstore.Store = objectstore.NewMemoryStore()
	if cfg.S3Bucket != "" {
		objects = objectstore.NewS3Store(objectstore.S3Config{
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
		})
	}

	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	issuer := auth.NewTokenIssuer([]byte(cfg.JWTSecret))

	// Usecases and handlers
	authUsecase := usecase.NewAuthUsecase(userRepo, issuer, emailSender, logger)
	appUsecase := usecase.NewApplicationUsecase(appRepo)
	resumeUsecase := usecase.NewResumeUsecase(resumeRepo, objects)
	matchUsecase := usecase.NewMatchUsecase(resumeRepo, appRepo)

	metrics.Register()
	checker := health.NewChecker(healthDeps, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, httptransport.RouterConfig{
			Verifier:       issuer,
			RateLimitStore: limitStore,
			AuthRateLimit:  cfg.AuthRateLimit,
			AuthRateWindow: time.Duration(cfg.AuthRateWindowS) * time.Second,
			AuthHandler:    handler.NewAuthHandler(authUsecase, logger),
			AppHandler:     handler.NewApplicationHandler(appUsecase, logger),
			ResumeHandler:  handler.NewResumeHandler(resumeUsecase, logger),
			MatchHandler:   handler.NewMatchHandler(matchUsecase, logger),
		}),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	// Background passes: follow-up reminders daily, limiter sweep to
	// keep the in-memory window map bounded.
	remind := reminder.New(appRepo, userRepo, emailSender,
		time.Duration(cfg.ReminderAfterDays)*24*time.Hour, logger)

	sched := cron.New()
	if _, err := sched.AddFunc("@daily", func() { remind.Run(ctx) }); err != nil {
		stop()
		log.Fatalf("cron: %v", err)
	}
	if _, err := sched.AddFunc("@every 5m", func() {
		if err := memStore.Sweep(ctx); err != nil {
			logger.Error("rate limit sweep", "error", err)
		}
	}); err != nil {
		stop()
		log.Fatalf("cron: %v", err)
	}
	sched.Start()

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

// redisPinger adapts the go-redis client to the health.Pinger interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
