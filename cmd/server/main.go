package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio_pro/internal/api"
	"portfolio_pro/internal/api/middleware"
	"portfolio_pro/internal/app/service"
	"portfolio_pro/internal/common/security"
	"portfolio_pro/internal/domain/repository"
	"portfolio_pro/internal/platform/config"
	"portfolio_pro/internal/platform/database"
	"portfolio_pro/internal/platform/mailer"
	"portfolio_pro/internal/platform/queue"
	"portfolio_pro/internal/platform/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg := config.Load()
	logger.Info("configuration loaded")

	ctx := context.Background()

	// 2. Initialize Database (runs embedded migrations)
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	// 3. Initialize Redis
	rdb, err := queue.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()
	logger.Info("redis connected")

	// 4. Initialize Blob Storage
	blobs, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		logger.Error("s3 store initialization failed", "error", err)
		os.Exit(1)
	}
	logger.Info("blob storage ready", "bucket", cfg.S3Bucket)

	// 5. Initialize Mailer & Tokens
	notifier := mailer.NewSMTPMailer(cfg)
	tokens := security.NewTokenIssuer(cfg)

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(db)
	projectRepo := repository.NewPgProjectRepository(db)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, tokens, notifier, cfg.ResetCodeTTL, logger)
	userService := service.NewUserService(userRepo, blobs, logger)
	projectService := service.NewProjectService(projectRepo, blobs, logger)

	// 8. Initialize Router & HTTP Server
	resetLimiter := middleware.NewResetRequestLimiter(rdb, cfg.ResetRequestLimit, cfg.ResetRequestWindow, logger)
	router := api.NewRouter(tokens, authService, userService, projectService, resetLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully")
}
