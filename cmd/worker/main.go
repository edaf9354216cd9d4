package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"not-project-backend/internal/handler/http/respond"
	"not-project-backend/internal/infra/assetstore"
	"not-project-backend/internal/infra/db"
	workerPkg "not-project-backend/internal/infra/worker"
	"not-project-backend/internal/observability/logging"
	"not-project-backend/internal/resilience/circuitbreaker"
	"not-project-backend/internal/usecase/asset"

	pgRepo "not-project-backend/internal/infra/adapter/persistence/postgres"
)

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM stories LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("sweep_schedule", workerConfig.SweepSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("sweep_timeout", workerConfig.SweepTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	sweeper := setupSweeper(ctx, logger, database)

	startCronWorker(logger, sweeper, workerConfig, workerMetrics, healthServer)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// setupSweeper builds the orphan sweeper over the asset store and the
// story repository. The API service owns ingestion; the worker only
// reconciles storage against what stories still reference.
func setupSweeper(ctx context.Context, logger *slog.Logger, database *sql.DB) *asset.Sweeper {
	storeCfg := assetstore.S3Config{
		Region:        os.Getenv("S3_REGION"),
		Bucket:        os.Getenv("S3_BUCKET"),
		PublicBaseURL: os.Getenv("ASSET_PUBLIC_BASE_URL"),
		UsePathStyle:  os.Getenv("S3_USE_PATH_STYLE") == "true",
	}
	if storeCfg.Bucket == "" {
		logger.Error("S3_BUCKET is required")
		os.Exit(1)
	}
	if storeCfg.PublicBaseURL == "" {
		logger.Error("ASSET_PUBLIC_BASE_URL is required")
		os.Exit(1)
	}

	store, err := assetstore.NewS3Store(ctx, storeCfg)
	if err != nil {
		logger.Error("failed to initialize asset store", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("asset store initialized", slog.String("bucket", storeCfg.Bucket))

	// A sweep against a struggling database should fail fast and retry on
	// the next tick rather than hold S3 listings open.
	return &asset.Sweeper{
		Store:         store,
		Stories:       pgRepo.NewStoryRepo(circuitbreaker.NewDBCircuitBreaker(database)),
		PublicBaseURL: storeCfg.PublicBaseURL,
	}
}

// startCronWorker starts the cron scheduler and runs the sweep periodically.
func startCronWorker(logger *slog.Logger, sweeper *asset.Sweeper, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.SweepSchedule, func() {
		runSweepJob(logger, sweeper, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.SweepSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runSweepJob executes a single sweep run with timeout and error handling.
func runSweepJob(logger *slog.Logger, sweeper *asset.Sweeper, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	metrics.RecordRun("started")
	logger.Info("sweep started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.SweepTimeout)
	defer cancel()

	result, err := sweeper.Sweep(ctx)
	if err != nil {
		logger.Error("sweep failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordRun("success")
	metrics.RecordRunDuration(time.Since(startTime).Seconds())
	metrics.RecordObjectsDeleted(result.Deleted)
	metrics.RecordLastSuccess()

	logger.Info("sweep completed",
		slog.Int("scanned", result.Scanned),
		slog.Int("deleted", result.Deleted),
		slog.Int("failures", result.Failures),
		slog.Duration("duration", time.Since(startTime)),
	)
}
