package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/imleoo/aigc-check/internal/analyzer"
	"github.com/imleoo/aigc-check/internal/cache"
	"github.com/imleoo/aigc-check/internal/config"
	"github.com/imleoo/aigc-check/internal/metrics"
	"github.com/imleoo/aigc-check/internal/repository"
	"github.com/imleoo/aigc-check/internal/server"
	"github.com/imleoo/aigc-check/internal/service"
)

const (
	serviceName = "aigc-server"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg)
	defer logger.Sync()
	logger.Info("starting detection service",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Environment))

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := repository.Open(cfg.Database, cfg.Debug)
	if err != nil {
		logger.Fatal("failed to open history store", zap.Error(err))
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			logger.Error("failed to close history store", zap.Error(err))
		}
	}()
	repo := repository.New(db, logger)

	analysisCache := cache.New(cfg.Redis, logger)
	if analysisCache != nil {
		defer analysisCache.Close()
		logger.Info("analysis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)
	engine := analyzer.NewEngineClient(cfg.Engine, logger)

	detectionService := service.NewDetectionService(engine, repo, analysisCache, collector, logger,
		service.WithPreviewLength(cfg.Detection.PreviewLength))
	historyService := service.NewHistoryService(repo, logger)

	router := server.NewRouter(
		server.NewDetectionHandler(detectionService, logger),
		server.NewHistoryHandler(historyService, cfg.Detection.MaxPageSize, logger),
		collector,
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.Int("port", cfg.Server.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("stopped")
}

func setupLogging(cfg *config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Logging.Level); err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Logging.Format == "console" || cfg.Debug {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
