package v1

import (
	"time"

	"tvet-connect-backend/config"
	"tvet-connect-backend/internal/delivery/http/middleware"
	"tvet-connect-backend/internal/domain"
	"tvet-connect-backend/internal/usecase"
	"tvet-connect-backend/pkg/metrics"
	"tvet-connect-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	UserUC         domain.UserUsecase
	ConnectionUC   domain.ConnectionUsecase
	NotificationUC domain.NotificationUsecase
	AdminUC        domain.AdminUsecase
	HealthUC       usecase.HealthUsecase
	Metrics        *metrics.Metrics // nil disables request metrics and /metrics
	SecurityLogger *security.Logger
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	secLog := deps.SecurityLogger
	if secLog == nil {
		secLog = security.NewLogger()
	}
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window), secLog))
	r.Use(middleware.CSRF(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler())

	// Prometheus scrapes outside the versioned API
	if deps.Metrics != nil && cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginLimiter := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window), secLog)

	// Anonymous or signed-in
	optional := v1.Group("")
	optional.Use(middleware.OptionalAuth(deps.AuthUC))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))

	requireTVET := middleware.RequireRole(secLog, domain.RoleTVET)

	admin := protected.Group("/admin")
	admin.Use(requireTVET)

	NewAuthHandler(v1, protected, deps.AuthUC, deps.UserUC, loginLimiter, cfg)
	NewUserHandler(optional, protected, deps.UserUC)
	NewConnectionHandler(protected, deps.ConnectionUC)
	NewNotificationHandler(optional, protected, requireTVET, deps.NotificationUC)
	NewAdminHandler(admin, deps.AdminUC)

	return r
}
