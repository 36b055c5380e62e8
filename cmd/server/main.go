package main

import (
	"FriendKeeper/internal/config"
	"FriendKeeper/internal/handlers"
	"FriendKeeper/internal/middleware"
	"FriendKeeper/internal/repo"
	"FriendKeeper/internal/service"
	"FriendKeeper/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func newLogger(jsonLogs bool) (*zap.Logger, error) {
	if jsonLogs {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	cfg := config.NewConfig()

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	files, err := storage.NewLocal(cfg.UploadDir, cfg.UploadMaxBytes())
	if err != nil {
		sugar.Fatalw("failed to initialize upload storage", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	friendRepo := repo.NewFriendRepository(gormDB)
	interactionRepo := repo.NewInteractionRepository(gormDB)

	friendService := service.NewFriendService(friendRepo, sugar)
	svc := handlers.Services{
		Users:        service.NewUserService(userRepo),
		Friends:      friendService,
		Interactions: service.NewInteractionService(interactionRepo, friendRepo, sugar),
		Dashboard:    service.NewDashboardService(friendService, friendRepo, interactionRepo),
		Files:        files,
	}

	h := handlers.NewHandler(svc, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server", "addr", cfg.BaseURL)
	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"UploadDir", cfg.UploadDir,
		"UploadMaxMB", cfg.UploadMaxMB,
		"RateLimitRPS", cfg.RateLimitRPS,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Graceful shutdown failed", "error", err)
		}
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
