// File: jusbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jusbook/config"
	"jusbook/cron"
	catalogRepo "jusbook/database/repository/catalog"
	"jusbook/handlers"
	"jusbook/routes"
	ai "jusbook/services/intelligence"
	"jusbook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	repo := catalogRepo.NewMemoryCatalogRepo(catalogRepo.Options{
		Days: config.AppConfig.CatalogDays,
		Seed: config.AppConfig.CatalogSeed,
	}, logger.Named("catalog"))

	// session storage.
	sessions := newSessionStore(logger)
	utils.StartHealthMonitor(rootCtx, utils.GetSessionCacheClient(), 30*time.Second)

	// services.
	engine := ai.NewDialogueEngine(repo, sessions, logger.Named("dialogue"), ai.EngineOptions{
		BusinessName: config.AppConfig.BusinessName,
	})
	refresherDone := cron.StartSlotRefresher(rootCtx, repo, config.AppConfig.SlotRefreshInterval(), logger.Named("cron"))

	// Create the Gin router and register routes.
	router := gin.New()
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(repo, engine), routes.Options{
		AdminSecret:       config.AppConfig.AdminJWTSecret,
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		Logger:            logger,
	})
	if config.AppConfig.AdminJWTSecret == "" {
		logger.Warn("ADMIN_JWT_SECRET is not set; admin endpoints will reject every request")
	}

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stop()
	<-refresherDone
	if client := utils.GetSessionCacheClient(); client != nil {
		_ = client.Close()
	}
	logger.Sugar().Info("main: server stopped gracefully")
}

// newSessionStore picks the configured session backend, falling back to memory when Redis is unreachable.
func newSessionStore(logger *zap.Logger) ai.SessionStore {
	switch config.AppConfig.SessionBackend {
	case "redis":
		if err := utils.InitSessionCache(); err != nil {
			logger.Error("Redis session backend unavailable, using in-memory sessions", zap.Error(err))
			return ai.NewMemorySessionStore()
		}
		logger.Info("Using Redis session backend",
			zap.String("addr", config.AppConfig.RedisAddr),
			zap.Duration("ttl", config.AppConfig.SessionTTL()))
		return ai.NewRedisSessionStore(utils.GetSessionCacheClient(), config.AppConfig.SessionTTL())
	case "", "memory":
		return ai.NewMemorySessionStore()
	default:
		logger.Warn("Unknown SESSION_BACKEND, using in-memory sessions", zap.String("backend", config.AppConfig.SessionBackend))
		return ai.NewMemorySessionStore()
	}
}
