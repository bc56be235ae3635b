package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/board-admin/internal/server/config"
	"github.com/iudanet/board-admin/internal/server/handlers"
	"github.com/iudanet/board-admin/internal/server/middleware"
	"github.com/iudanet/board-admin/internal/server/storage/sqlite"
	"github.com/iudanet/board-admin/internal/server/sweeper"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	// Ключ подписи создается один раз на старте и живет все время
	// жизни процесса; рестарт инвалидирует все выданные токены
	secret, err := cfg.SecretKey()
	if err != nil {
		return err
	}

	jwtConfig := handlers.JWTConfig{
		Secret:          secret,
		Issuer:          cfg.JWTIssuer,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(logger, store, store, jwtConfig)
	adminHandler := handlers.NewAdminHandler(logger, store, store)
	healthHandler := handlers.NewHealthHandler(logger, store)

	// Login защищен от перебора паролей отдельным rate limiter
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow, logger)
	defer loginLimiter.Stop()

	mux := http.NewServeMux()

	mux.Handle("POST /auth/login", loginLimiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /auth/refresh", authHandler.Refresh)

	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("GET /admin/withdrawnMemberList", adminHandler.WithdrawnMemberList)
	mux.HandleFunc("PUT /admin/restoreMember", adminHandler.RestoreMember)
	mux.HandleFunc("GET /admin/deleteBoardList", adminHandler.DeleteBoardList)
	mux.HandleFunc("PUT /admin/restoreBoard", adminHandler.RestoreBoard)
	mux.HandleFunc("GET /admin/newMember", adminHandler.NewMember)
	mux.HandleFunc("GET /admin/maxReadCount", adminHandler.MaxReadCount)
	mux.HandleFunc("GET /admin/maxLikeCount", adminHandler.MaxLikeCount)
	mux.HandleFunc("GET /admin/maxCommentCount", adminHandler.MaxCommentCount)
	mux.HandleFunc("POST /admin/createAdminAccount", adminHandler.CreateAdminAccount)
	mux.HandleFunc("GET /admin/adminAccountList", adminHandler.AdminAccountList)

	// Все маршруты кроме exempt требуют валидный access token
	exempt := []string{"/auth/login", "/auth/refresh", "/auth/logout", "/health"}

	var handler http.Handler = mux
	handler = middleware.AuthMiddleware(logger, jwtConfig, exempt)(handler)
	handler = middleware.CORSMiddleware(cfg.CORSOrigin)(handler)
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	// Фоновая очистка истекших refresh tokens
	sweep := sweeper.New(logger, store, cfg.SweepHour, cfg.SweepMinute)
	go sweep.Run(ctx)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server started", slog.String("addr", cfg.Addr), slog.String("version", Version))
		errC <- srv.ListenAndServe()
	}()

	select {
	case err := <-errC:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func printVersion() {
	fmt.Printf("BoardProject Admin Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
