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

	"github.com/Rayup0124/SCM-Career-Bridge/config"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/middleware"
	v1 "github.com/Rayup0124/SCM-Career-Bridge/internal/delivery/http/v1"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/repository"
	"github.com/Rayup0124/SCM-Career-Bridge/internal/usecase"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/auth"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/logger"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/redis"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/security"
	"github.com/Rayup0124/SCM-Career-Bridge/pkg/validation"
)

// @title           SCM Career Bridge API
// @version         1.0
// @description     Internship matching between SCM students and partner companies.
// @host            localhost:8080
// @BasePath        /api
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
	logger.Init(cfg.Env)
	logger.Log.Info("Starting SCM Career Bridge", "port", cfg.Port, "storage", cfg.StorageDriver)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Storage
	repos, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 4. Setup Redis (optional)
	redisClient, err := redis.Connect(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
		}
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// 5. Setup Security
	audit := security.NewSecurityLogger("scm-career-bridge", cfg.Env)
	defer audit.Sync()

	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL(),
		Issuer: cfg.JWTIssuer,
	})
	if err != nil {
		logger.Log.Error("Failed to set up token service", "error", err)
		os.Exit(1)
	}
	guard := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
	}, audit)

	// 6. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(usecase.AuthDeps{
		Students:  repos.Students,
		Companies: repos.Companies,
		Admins:    repos.Admins,
		Hasher:    hasher,
		Tokens:    tokens,
		Guard:     guard,
		Audit:     audit,
		Validate:  validate,
	})
	adminUC := usecase.NewAdminUsecase(usecase.AdminDeps{
		Students:     repos.Students,
		Companies:    repos.Companies,
		Admins:       repos.Admins,
		Internships:  repos.Internships,
		Applications: repos.Applications,
		Hasher:       hasher,
		Audit:        audit,
	})
	internshipUC := usecase.NewInternshipUsecase(repos.Internships, validate, nil)
	applicationUC := usecase.NewApplicationUsecase(repos.Applications, repos.Internships, validate, nil)

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		admin, created, err := adminUC.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			logger.Log.Error("Failed to seed admin", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Admin account ready", "email", admin.Email, "created", created)
	}

	var redisPing usecase.Pinger
	if redisClient != nil {
		redisPing = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": repos.Ping,
		"redis":    redisPing,
	})

	// 7. Setup Rate Limiting
	limiter := middleware.NewRateLimiter(redisClient)
	limiter.StartSweeper(ctx, time.Minute)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		AdminUC:       adminUC,
		InternshipUC:  internshipUC,
		ApplicationUC: applicationUC,
		HealthUC:      healthUC,
		Audit:         audit,
		RateLimiter:   limiter,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
