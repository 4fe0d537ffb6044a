package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "ProfileStore_Service/docs"
	"ProfileStore_Service/internal/auth"
	"ProfileStore_Service/internal/config"
	"ProfileStore_Service/internal/handler"
	"ProfileStore_Service/internal/logger"
	"ProfileStore_Service/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title                       Profile Store API
// @version                     1.0
// @description                 Loads and saves the chat user's profile.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Environment: cfg.Environment,
		LogLevel:    cfg.LogLevel,
		ServiceName: "profile-api",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := storage.Open(ctx, storage.Config{
		Backend:    cfg.StorageBackend,
		SQLitePath: cfg.SQLitePath,
		Redis: storage.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	}, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer kv.Close()

	var issuer *auth.Issuer
	if cfg.AuthRequired {
		issuer = auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		log.Warn("AUTH_REQUIRED is off, every client shares one profile", zap.String("key", cfg.ProfileKey))
	}

	h := handler.NewProfileHandler(kv, cfg.ProfileKey, handler.NewHub(), issuer, log)
	router := handler.NewRouter(h, handler.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
