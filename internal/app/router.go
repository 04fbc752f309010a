package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mazaadati/bidmaster-admin/internal/audit"
	"github.com/mazaadati/bidmaster-admin/internal/auth"
	"github.com/mazaadati/bidmaster-admin/internal/catalog"
	"github.com/mazaadati/bidmaster-admin/internal/dashboard"
	"github.com/mazaadati/bidmaster-admin/internal/documents"
	"github.com/mazaadati/bidmaster-admin/internal/notifications"
	"github.com/mazaadati/bidmaster-admin/internal/observability"
	"github.com/mazaadati/bidmaster-admin/internal/orders"
	"github.com/mazaadati/bidmaster-admin/internal/session"
	"github.com/mazaadati/bidmaster-admin/internal/settings"
	"github.com/mazaadati/bidmaster-admin/internal/users"
	"github.com/mazaadati/bidmaster-admin/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Sessions session.Middleware

	AuthHandler          *auth.Handler
	UsersHandler         *users.Handler
	CatalogHandler       *catalog.Handler
	OrdersHandler        *orders.Handler
	DocumentsHandler     *documents.Handler
	NotificationsHandler *notifications.Handler
	SettingsHandler      *settings.Handler
	DashboardHandler     *dashboard.Handler
	AuditHandler         *audit.Handler
	JobHandler           *jobs.Handler
	Metrics              *observability.Metrics
}

// NewRouter constructs the chi.Router for the gateway.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Sessions: params.Sessions,
		Metrics:  params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	if params.CatalogHandler != nil {
		params.CatalogHandler.MountPublicRoutes(r)
	}

	r.Route("/api", func(r chi.Router) {
		if params.UsersHandler != nil {
			r.Route("/users", params.UsersHandler.MountRoutes)
		}
		if params.CatalogHandler != nil {
			params.CatalogHandler.MountRoutes(r)
		}
		if params.OrdersHandler != nil {
			params.OrdersHandler.MountRoutes(r)
		}
		if params.DocumentsHandler != nil {
			params.DocumentsHandler.MountRoutes(r)
		}
		if params.NotificationsHandler != nil {
			params.NotificationsHandler.MountRoutes(r)
		}
		if params.SettingsHandler != nil {
			params.SettingsHandler.MountRoutes(r)
		}
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
		if params.AuditHandler != nil {
			r.Route("/audit", params.AuditHandler.MountRoutes)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
