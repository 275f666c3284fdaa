package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"campaign-gateway/internal/bootstrap"
	"campaign-gateway/internal/config"
	"campaign-gateway/internal/jobs"
	"campaign-gateway/internal/jobs/workers"
	"campaign-gateway/internal/observability"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Initialize logger
	logger := observability.NewLogger()
	ctx := context.Background()

	logger.Info(ctx, "Starting background worker server...")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}
	if !cfg.Redis.Enabled {
		logger.Fatal(ctx, "the worker needs Redis for its job queue", errors.New("REDIS_ENABLED is false"))
	}

	deps, err := bootstrap.Initialize(ctx, cfg, prometheus.DefaultRegisterer, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}
	defer deps.Cleanup()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Initialize job client for the sweep to enqueue per-campaign syncs
	jobClient := jobs.NewClient(redisOpt, logger)
	defer jobClient.Close()

	syncWorker := workers.NewSyncWorker(
		deps.CampaignProcessor,
		&deps.Store,
		jobClient,
		cfg.Sync.StaleAfter,
		cfg.Sync.BatchSize,
		logger,
	)

	// Create Asynq server with queue configuration
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				jobs.QueueDefault:  6,
				jobs.QueuePeriodic: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error(ctx, fmt.Sprintf("task %s failed", task.Type()), err)
			}),
			RetryDelayFunc: asynq.DefaultRetryDelayFunc,
			Logger:         &asynqLogger{logger: logger},
		},
	)

	// Create task handler (mux)
	mux := asynq.NewServeMux()
	mux.HandleFunc(jobs.TypeCampaignSyncStatus, syncWorker.ProcessSyncStatusTask)
	mux.HandleFunc(jobs.TypeCampaignSyncSweep, syncWorker.ProcessSyncSweepTask)

	// Setup the periodic sweep
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Logger: &asynqLogger{logger: logger},
		},
	)

	if _, err := scheduler.Register(cfg.Sync.Cron, jobs.NewSyncSweepTask()); err != nil {
		logger.Fatal(ctx, "failed to register sync sweep task", err)
	}

	// Start the scheduler
	if err := scheduler.Start(); err != nil {
		logger.Fatal(ctx, "failed to start scheduler", err)
	}
	defer scheduler.Shutdown()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start the server in a goroutine
	go func() {
		logger.Info(ctx, fmt.Sprintf("Worker server started on Redis: %s", redisOpt.Addr))
		if err := srv.Run(mux); err != nil {
			logger.Fatal(ctx, "failed to run worker server", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info(ctx, "Shutting down worker server...")

	// Graceful shutdown
	srv.Shutdown()
	logger.Info(ctx, "Worker server stopped")
}

// asynqLogger adapts observability.Logger to asynq.Logger interface
type asynqLogger struct {
	logger *observability.Logger
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(context.Background(), fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(context.Background(), fmt.Sprint(args...), nil)
	os.Exit(1)
}
