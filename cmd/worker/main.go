// cmd/worker/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/ammerola/warehouse-ms/internal/adapters/db"
	"github.com/ammerola/warehouse-ms/internal/adapters/events"
	redis_a "github.com/ammerola/warehouse-ms/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-ms/internal/adapters/spreadsheet"
	"github.com/ammerola/warehouse-ms/internal/adapters/storage"
	"github.com/ammerola/warehouse-ms/internal/core/services"
	"github.com/ammerola/warehouse-ms/internal/pkg/config"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
	"github.com/ammerola/warehouse-ms/internal/workers"
)

// workerMaxConnections keeps the worker pool small; it runs at most
// Concurrency ingests, each inside one transaction.
const workerMaxConnections = 10

func main() {
	if err := run(); err != nil {
		slog.Error("worker stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(logger.SetupLogger("info", "json").Logger)
	if err != nil {
		return err
	}

	log := logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slog.SetDefault(log)
	log.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := db.ConfigFrom(cfg.Database)
	dbCfg.MaxConnections = min(dbCfg.MaxConnections, workerMaxConnections)
	database, err := db.NewDatabase(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	redisClient, err := redis_a.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher := events.NewPublisher(cfg.Kafka, log)
	defer publisher.Close()

	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		return err
	}

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, log)
	ingest := services.NewIngestService(
		spreadsheet.NewExtractor(log),
		db.NewTransactor(database, log),
		cache,
		publisher,
		log,
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(workers.TypeWorkbookIngest,
		workers.NewIngestProcessor(ingest, store, cache, cfg.FileProcessing.ProcessingTimeout, log).ProcessIngest)
	mux.HandleFunc(workers.TypeUploadsCleanup,
		workers.NewCleanupProcessor(store, cfg.FileProcessing.UploadRetention, cfg.FileProcessing.TempDir, log).Cleanup)

	srv := workers.NewServer(cfg.Asynq, log)
	scheduler, err := workers.NewScheduler(cfg.Asynq, log)
	if err != nil {
		return err
	}

	if err := srv.Start(mux); err != nil {
		return err
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return err
	}

	log.Info("worker started",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	<-ctx.Done()
	log.Info("shutdown signal received")

	scheduler.Shutdown()
	srv.Shutdown()
	log.Info("worker shutdown complete")
	return nil
}
