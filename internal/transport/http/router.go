package httptransport

import (
	"log/slog"
	"time"

	"github.com/applytrack/applytrack/internal/ratelimit"
	"github.com/applytrack/applytrack/internal/transport/http/handler"
	"github.com/applytrack/applytrack/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	Verifier       middleware.TokenVerifier
	RateLimitStore ratelimit.Store
	AuthRateLimit  int
	AuthRateWindow time.Duration
	AuthHandler    *handler.AuthHandler
	AppHandler     *handler.ApplicationHandler
	ResumeHandler  *handler.ResumeHandler
	MatchHandler   *handler.MatchHandler
}

func NewRouter(logger *slog.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(cfg.Verifier)
	limitMW := middleware.RateLimit(cfg.RateLimitStore, cfg.AuthRateLimit, cfg.AuthRateWindow, logger)

	// Public auth routes, rate limited against credential stuffing
	authGroup := r.Group("/auth", limitMW)
	authGroup.POST("/register", cfg.AuthHandler.Register)
	authGroup.POST("/login", cfg.AuthHandler.Login)

	r.GET("/auth/me", authMW, cfg.AuthHandler.Me)

	// Protected application routes
	apps := r.Group("/applications", authMW)
	apps.POST("", cfg.AppHandler.Create)
	apps.GET("", cfg.AppHandler.List)
	apps.GET("/stats", cfg.AppHandler.Stats)
	apps.GET("/:id", cfg.AppHandler.GetByID)
	apps.PUT("/:id", cfg.AppHandler.Update)
	apps.DELETE("/:id", cfg.AppHandler.Delete)

	// Protected resume routes
	resumes := r.Group("/resumes", authMW)
	resumes.POST("", cfg.ResumeHandler.Create)
	resumes.GET("", cfg.ResumeHandler.List)
	resumes.GET("/:id", cfg.ResumeHandler.GetByID)
	resumes.DELETE("/:id", cfg.ResumeHandler.Delete)
	resumes.GET("/:id/download", cfg.ResumeHandler.Download)

	// Match scoring
	r.POST("/match", authMW, cfg.MatchHandler.Score)

	return r
}
