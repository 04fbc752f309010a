package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/mazaadati/bidmaster-admin/internal/app"
	"github.com/mazaadati/bidmaster-admin/internal/audit"
	"github.com/mazaadati/bidmaster-admin/internal/auth"
	"github.com/mazaadati/bidmaster-admin/internal/catalog"
	"github.com/mazaadati/bidmaster-admin/internal/dashboard"
	"github.com/mazaadati/bidmaster-admin/internal/dashboard/export"
	"github.com/mazaadati/bidmaster-admin/internal/documents"
	"github.com/mazaadati/bidmaster-admin/internal/notifications"
	"github.com/mazaadati/bidmaster-admin/internal/observability"
	"github.com/mazaadati/bidmaster-admin/internal/orders"
	"github.com/mazaadati/bidmaster-admin/internal/rbac"
	"github.com/mazaadati/bidmaster-admin/internal/session"
	"github.com/mazaadati/bidmaster-admin/internal/settings"
	"github.com/mazaadati/bidmaster-admin/internal/upstream"
	"github.com/mazaadati/bidmaster-admin/internal/users"
	"github.com/mazaadati/bidmaster-admin/jobs"
	"github.com/mazaadati/bidmaster-admin/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	store := session.NewRedisStore(redisClient, cfg.SessionTTL)
	sessions := session.Middleware{
		Store:  store,
		Logger: logger,
		Secure: cfg.IsProduction(),
		TTL:    cfg.SessionTTL,
	}

	resolver := upstream.NewResolver(upstream.OriginConfig{
		Explicit:       cfg.UpstreamOrigin,
		Local:          cfg.UpstreamLocal,
		Production:     cfg.UpstreamProduction,
		ServedHost:     cfg.AppPublicHost,
		ProductionMode: cfg.IsProduction(),
	}, &upstream.RedisOverrideStore{Client: redisClient}, logger)

	guard := &session.Transport{
		Base:   http.DefaultTransport,
		Store:  store,
		Logger: logger,
		OnEvict: func(sid, reason string) {
			metrics.ObserveEviction(reason)
		},
	}
	client := upstream.NewClient(upstream.ClientConfig{
		Resolver:     resolver,
		Transport:    guard,
		Logger:       logger,
		LocalTimeout: cfg.UpstreamTimeout,
		OnFallback:   metrics.ObserveOriginFallback,
	})

	policy := rbac.NewPolicy(cfg.EmployeeModuleList())
	rbacMiddleware := rbac.Middleware{Policy: policy, Logger: logger}

	auditService := audit.NewService(dbpool, logger)

	authService := auth.NewService(client, policy)
	authHandler := auth.NewHandler(logger, authService, store, sessions, policy, auditService)

	usersHandler := users.NewHandler(logger, users.NewService(client), rbacMiddleware, auditService)
	catalogHandler := catalog.NewHandler(logger, catalog.NewService(client), policy, rbacMiddleware, auditService)
	ordersHandler := orders.NewHandler(logger, orders.NewService(client), rbacMiddleware, auditService)
	documentsHandler := documents.NewHandler(logger, documents.NewService(client), rbacMiddleware, auditService)
	notificationsHandler := notifications.NewHandler(logger,
		notifications.NewService(client, redisClient, logger), rbacMiddleware, auditService)
	settingsHandler := settings.NewHandler(logger, settings.NewService(client), rbacMiddleware, auditService)

	var pdfRenderer dashboard.PDFRenderer
	if cfg.GotenbergURL != "" {
		pdfRenderer = &export.PDFExporter{Client: report.NewClient(cfg.GotenbergURL)}
	}
	dashboardHandler := dashboard.NewHandler(logger, dashboard.NewService(client), rbacMiddleware,
		pdfRenderer, export.WriteReportCSV)

	auditHandler := audit.NewHandler(logger, auditService, rbacMiddleware)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		Sessions:             sessions,
		AuthHandler:          authHandler,
		UsersHandler:         usersHandler,
		CatalogHandler:       catalogHandler,
		OrdersHandler:        ordersHandler,
		DocumentsHandler:     documentsHandler,
		NotificationsHandler: notificationsHandler,
		SettingsHandler:      settingsHandler,
		DashboardHandler:     dashboardHandler,
		AuditHandler:         auditHandler,
		JobHandler:           jobHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
