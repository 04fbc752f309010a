package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mazaadati/bidmaster-admin/internal/app"
	"github.com/mazaadati/bidmaster-admin/internal/audit"
	jobmetrics "github.com/mazaadati/bidmaster-admin/internal/jobs"
	"github.com/mazaadati/bidmaster-admin/internal/session"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
	"github.com/mazaadati/bidmaster-admin/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	auditService := audit.NewService(pool, logger)

	// Worker traffic carries no admin session, so the guard passes its
	// probe requests through anonymously.
	resolver := upstream.NewResolver(upstream.OriginConfig{
		Explicit:       cfg.UpstreamOrigin,
		Local:          cfg.UpstreamLocal,
		Production:     cfg.UpstreamProduction,
		ServedHost:     cfg.AppPublicHost,
		ProductionMode: cfg.IsProduction(),
	}, &upstream.RedisOverrideStore{Client: redisClient}, logger)
	client := upstream.NewClient(upstream.ClientConfig{
		Resolver: resolver,
		Transport: &session.Transport{
			Base:   http.DefaultTransport,
			Store:  session.NewRedisStore(redisClient, cfg.SessionTTL),
			Logger: logger,
		},
		Logger:       logger,
		LocalTimeout: cfg.UpstreamTimeout,
	})

	metrics := jobmetrics.NewMetrics(nil)

	pruneTask, err := jobs.NewAuditPruneTask(cfg.AuditRetentionDays)
	if err != nil {
		logger.Error("build prune task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: jobs.Handlers(jobs.HandlerDeps{
			Pruner:  auditService,
			Prober:  client,
			Redis:   redisClient,
			Logger:  logger,
			Metrics: metrics,
		}),
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: pruneTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "*/5 * * * *", Task: jobs.NewUpstreamProbeTask()},
			{Spec: "* * * * *", Task: jobs.NewNotifyRefreshTask()},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
