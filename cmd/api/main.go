package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ringside-backend/config"
	v1 "go-ringside-backend/internal/delivery/http/v1"
	"go-ringside-backend/internal/usecase"
	"go-ringside-backend/pkg/email"
	"go-ringside-backend/pkg/logger"
	"go-ringside-backend/pkg/notify"
	"go-ringside-backend/pkg/redis"
	"go-ringside-backend/pkg/validation"
)

// @title           Ringside Lead API
// @version         1.0
// @description     Lead-capture backend for the boxing-ring shop: contact, estimate and subsidy-support forms with LINE push notification and email fallback.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting ringside backend", "port", cfg.Port, "env", cfg.AppEnv)

	// 3. Setup Redis (optional rate-limit store; in-memory fallback otherwise)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 4. Setup Notification Channels
	lineService := notify.NewLineService(cfg)
	if !lineService.IsConfigured() {
		logger.Log.Warn("LINE channel not fully configured - submissions will fall back to email")
	}
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email fallback not fully configured - delivery failures will be logged only")
	}

	// 5. Setup UseCases
	validate := validation.NewValidator()
	submissionUC := usecase.NewSubmissionUsecase(
		lineService,
		emailService,
		validate,
		time.Duration(cfg.NotifyTimeoutSeconds)*time.Second,
	)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SubmissionUC: submissionUC,
		Config:       cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
