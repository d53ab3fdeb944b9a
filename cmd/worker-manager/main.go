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

	"go.uber.org/zap"

	"stack-advisor/internal/advisor"
	"stack-advisor/internal/catalog"
	"stack-advisor/internal/common/camunda"
	"stack-advisor/internal/common/config"
	"stack-advisor/internal/common/database"
	"stack-advisor/internal/common/logger"
	"stack-advisor/internal/common/observability"
	"stack-advisor/pkg/registry"

	rts "stack-advisor/internal/workers/recommendation/recommend-tech-stack"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker manager: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := config.ValidateForWorkers(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		TracingEnabled: cfg.Observability.TracingEnabled,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			zapLog.Warn("observability shutdown failed", zap.Error(err))
		}
	}()

	resolver, err := catalog.DefaultResolver()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	questions, err := loadQuestions(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	service := advisor.NewService(resolver,
		advisor.WithLogger(log),
		advisor.WithTracer(obs.Tracer()),
		advisor.WithRecorder(obs),
		advisor.WithQuestions(questions),
	)

	zeebe, err := camunda.NewClient(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		return err
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	cache, closeCache := connectCache(ctx, cfg.Cache, log)
	defer closeCache()

	readiness := []check{{name: "zeebe", fn: zeebe.HealthCheck}}

	if config.IsWorkerEnabled(cfg, rts.TaskType) {
		wcfg := rts.LoadConfig(cfg)
		handler := rts.NewHandler(wcfg, service, cache, obs, log)
		w := camunda.NewWorker(zeebe.GetClient(), camunda.WorkerOptions{
			TaskType:      rts.TaskType,
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       wcfg.Timeout,
		}, handler, log)
		defer w.Stop()
	} else {
		log.Info("worker disabled", map[string]interface{}{"taskType": rts.TaskType})
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           newServeMux(cfg.App.Version, readiness),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Health/Metrics server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
	return nil
}

func loadQuestions(cfg config.CatalogConfig) (*registry.QuestionRegistry, error) {
	if cfg.QuestionsPath == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(cfg.QuestionsPath)
}

// connectCache returns nil when the cache is disabled or unreachable; the
// worker then resolves every request.
func connectCache(ctx context.Context, cfg config.CacheConfig, log logger.Logger) (*database.JSONCache, func()) {
	if !cfg.Enabled {
		return nil, func() {}
	}

	rc := database.NewRedis(cfg)
	err := camunda.Retry(ctx, camunda.DefaultRetryConfig, "redis ping", rc.Ping)
	if err != nil {
		log.Warn("redis unavailable, running without recommendation cache", map[string]interface{}{
			"address": cfg.Address,
			"error":   err.Error(),
		})
		_ = rc.Close()
		return nil, func() {}
	}

	log.Info("Redis connected successfully", map[string]interface{}{"address": cfg.Address})
	return database.NewJSONCache(rc.Client, cfg.KeyPrefix, cfg.TTL()), func() { _ = rc.Close() }
}
