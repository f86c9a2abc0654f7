// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/warehouse-ms/internal/adapters/authclient"
	"github.com/ammerola/warehouse-ms/internal/adapters/db"
	"github.com/ammerola/warehouse-ms/internal/adapters/events"
	redis_a "github.com/ammerola/warehouse-ms/internal/adapters/redis_adapter"
	"github.com/ammerola/warehouse-ms/internal/adapters/spreadsheet"
	"github.com/ammerola/warehouse-ms/internal/adapters/storage"
	"github.com/ammerola/warehouse-ms/internal/core/domain"
	"github.com/ammerola/warehouse-ms/internal/core/ports"
	"github.com/ammerola/warehouse-ms/internal/core/services"
	"github.com/ammerola/warehouse-ms/internal/handlers"
	"github.com/ammerola/warehouse-ms/internal/handlers/middleware"
	"github.com/ammerola/warehouse-ms/internal/pkg/config"
	"github.com/ammerola/warehouse-ms/internal/pkg/logger"
	"github.com/ammerola/warehouse-ms/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting warehouse service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if err := runMigrations(ctx, cfg, slogger.Logger); err != nil {
		slogger.Error("failed to run migrations", slog.String("error", err.Error()))
		if cfg.IsProduction() {
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup(slogger.Logger)

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	cache          ports.CacheRepository
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	publisher      ports.EventPublisher

	manufacturerHandler *handlers.EntityHandler[domain.Manufacturer]
	supplierHandler     *handlers.EntityHandler[domain.Supplier]
	serialHandler       *handlers.EntityHandler[domain.SerialNumber]
	warehouseHandler    *handlers.WarehouseHandler
	healthHandler       *handlers.HealthHandler
	accessChecker       ports.AccessChecker
}

func (d *dependencies) cleanup(logger *slog.Logger) {
	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			logger.Error("failed to close event publisher", slog.String("error", err.Error()))
		}
	}
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		if err := d.asynqClient.Close(); err != nil {
			logger.Error("failed to close Asynq client", slog.String("error", err.Error()))
		}
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, db.ConfigFrom(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis", slog.String("addr", cfg.Redis.Addr()))
	redisClient, err := redis_a.NewClient(ctx, cfg.Redis)
	if err != nil {
		deps.cleanup(logger)
		return nil, err
	}
	deps.redisClient = redisClient
	deps.cache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	manufacturerRepo := db.NewManufacturerRepository(database, logger)
	supplierRepo := db.NewSupplierRepository(database, logger)
	warehouseRepo := db.NewWarehouseRepository(database, logger)
	serialRepo := db.NewSerialNumberRepository(database, logger)

	deps.publisher = events.NewPublisher(cfg.Kafka, logger)

	ingestService := services.NewIngestService(
		spreadsheet.NewExtractor(logger),
		db.NewTransactor(database, logger),
		deps.cache,
		deps.publisher,
		logger,
	)

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		deps.cleanup(logger)
		return nil, err
	}

	warehouseDeps := handlers.WarehouseDeps{
		Service:        services.NewWarehouseService(warehouseRepo, deps.cache, cfg.Redis.TTL, logger),
		Ingest:         ingestService,
		Storage:        store,
		Cache:          deps.cache,
		Reporter:       db.NewStockReportReader(database.SQLDB(), logger),
		MaxUploadBytes: cfg.FileProcessing.MaxUploadBytes(),
		DedupeTTL:      workers.DedupeWindow(cfg.Asynq.RetryMax, cfg.FileProcessing.ProcessingTimeout),
	}

	if cfg.Asynq.RedisAddr != "" {
		logger.Info("initializing Asynq client", slog.String("addr", cfg.Asynq.RedisAddr))

		redisOpt := workers.RedisOpt(cfg.Asynq)
		deps.asynqClient = asynq.NewClient(redisOpt)
		deps.asynqInspector = asynq.NewInspector(redisOpt)
		warehouseDeps.Queue = workers.NewQueue(deps.asynqClient, deps.asynqInspector, cfg.Asynq.RetryMax, logger)
	}

	deps.manufacturerHandler = handlers.NewManufacturerHandler(
		services.NewManufacturerService(manufacturerRepo, deps.cache, cfg.Redis.TTL, logger), logger)
	deps.supplierHandler = handlers.NewSupplierHandler(
		services.NewSupplierService(supplierRepo, deps.cache, cfg.Redis.TTL, logger), logger)
	deps.serialHandler = handlers.NewSerialNumberHandler(
		services.NewSerialNumberService(serialRepo, deps.cache, cfg.Redis.TTL, logger), logger)
	deps.warehouseHandler = handlers.NewWarehouseHandler(warehouseDeps, logger)

	var inspector handlers.QueueInspector
	if deps.asynqInspector != nil {
		inspector = deps.asynqInspector
	}
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, inspector, cfg, logger)

	if cfg.Auth.AuthDomain != "" {
		deps.accessChecker = authclient.New(cfg.Auth.AuthDomain, cfg.Auth.Timeout, logger)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, l *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg, l.Logger)

	var handler http.Handler = mux

	// Applied innermost first
	handler = middleware.Compression(handler)
	handler = middleware.Timeout(cfg.FileProcessing.ProcessingTimeout)(handler)
	handler = middleware.Recovery(l.Logger)(handler)
	handler = middleware.Logger(l)(handler)
	handler = middleware.RequestID(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(l.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config, logger *slog.Logger) {
	deps.healthHandler.Register(mux)

	basic := middleware.BasicAuth(cfg.Auth.UserName, cfg.Auth.UserPassword)

	// Supplier and manufacturer are administered by employees through the
	// auth service; without it they fall back to the service account.
	parties := basic
	if deps.accessChecker != nil {
		parties = middleware.BearerAuth(deps.accessChecker, cfg.Auth.RouteRootPath, logger)
	}

	deps.warehouseHandler.Register(mux, basic)
	deps.serialHandler.Register(mux, basic)
	deps.supplierHandler.Register(mux, parties)
	deps.manufacturerHandler.Register(mux, parties)
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
	}, logger, 3)
}
