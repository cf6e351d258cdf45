package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tvet-connect-backend/config"
	_ "tvet-connect-backend/docs" // Important for Swagger
	v1 "tvet-connect-backend/internal/delivery/http/v1"
	"tvet-connect-backend/internal/repository/postgres"
	"tvet-connect-backend/internal/usecase"
	"tvet-connect-backend/pkg/auth"
	"tvet-connect-backend/pkg/database"
	"tvet-connect-backend/pkg/logger"
	"tvet-connect-backend/pkg/metrics"
	"tvet-connect-backend/pkg/redis"
	"tvet-connect-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           TVET Connect API
// @version         1.0
// @description     Networking platform linking individuals, private sector organisations and TVET institutions.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.AppEnv)
	defer logger.Sync()
	logger.Log.Info("Starting tvet-connect backend", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 3. Setup Database
	if cfg.AutoMigrate {
		if err := database.MigrateURL(ctx, cfg.DBUrl); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Log.Info("Migrations applied")
	}

	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, falling back to in-memory rate limiting without login tracking", zap.Error(err))
	} else {
		defer redis.Close()
		logger.Log.Info("Redis connection established")
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	connectionRepo := postgres.NewConnectionRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 6. Setup Security
	m := metrics.New(nil)
	secLog := security.NewLogger()
	loginTracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	}, secLog)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)

	// 7. Setup UseCases
	notificationUC := usecase.NewNotificationUsecase(notificationRepo, m)
	connectionUC := usecase.NewConnectionUsecase(userRepo, connectionRepo, notificationUC, m)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, loginTracker, secLog, m)
	userUC := usecase.NewUserUsecase(userRepo, connectionUC)
	adminUC := usecase.NewAdminUsecase(adminRepo, userRepo, connectionRepo, notificationRepo, notificationUC)
	healthUC := usecase.NewHealthUsecase(dbPool, nil)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ConnectionUC:   connectionUC,
		NotificationUC: notificationUC,
		AdminUC:        adminUC,
		HealthUC:       healthUC,
		Metrics:        m,
		SecurityLogger: secLog,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
