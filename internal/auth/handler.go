package auth

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mazaadati/bidmaster-admin/internal/audit"
	"github.com/mazaadati/bidmaster-admin/internal/platform/httpx"
	"github.com/mazaadati/bidmaster-admin/internal/rbac"
	"github.com/mazaadati/bidmaster-admin/internal/session"
	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	store     session.Store
	sessions  session.Middleware
	policy    *rbac.Policy
	recorder  audit.Recorder
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, store session.Store, sessions session.Middleware, policy *rbac.Policy, recorder audit.Recorder) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		store:     store,
		sessions:  sessions,
		policy:    policy,
		recorder:  recorder,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/admin-login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/session", h.handleSession)
	r.Get("/navigation", h.handleNavigation)
	r.Get("/resolve-page", h.handleResolvePage)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed payload")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: phone and role are required", httpx.ErrValidation))
		return
	}

	result, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.logger.Warn("admin login failed", slog.String("phone", req.Phone), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sid := h.sessions.Issue(w)
	if err := h.store.Set(r.Context(), sid, result.Token); err != nil {
		h.logger.Error("store credential", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.recorder.Record(r.Context(), audit.Entry{
		ActorID: req.Phone,
		Role:    string(result.Role),
		Action:  "login",
		Module:  string(rbac.ModuleDashboard),
	})

	httpx.JSON(w, http.StatusOK, map[string]any{
		"session":    h.service.SessionInfo(result.Role),
		"navigation": h.policy.VisibleNavItems(result.Role),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sid := shared.SessionIDFromContext(r.Context()); sid != "" {
		if err := h.store.Clear(r.Context(), sid); err != nil {
			h.logger.Warn("clear credential", slog.Any("error", err))
		}
	}
	h.sessions.Drop(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	role, ok := h.currentRole(r)
	if !ok {
		httpx.RespondError(w, shared.ErrSessionEvicted)
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.SessionInfo(role))
}

func (h *Handler) handleNavigation(w http.ResponseWriter, r *http.Request) {
	role, ok := h.currentRole(r)
	if !ok {
		httpx.RespondError(w, shared.ErrSessionEvicted)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items": h.policy.VisibleNavItems(role),
	})
}

// handleResolvePage answers which page the panel should actually route to. A
// role asking for a page outside its allow-list is sent to the dashboard
// silently, matching the hash-routing behaviour of the panel.
func (h *Handler) handleResolvePage(w http.ResponseWriter, r *http.Request) {
	role, ok := h.currentRole(r)
	if !ok {
		httpx.RespondError(w, shared.ErrSessionEvicted)
		return
	}
	page := r.URL.Query().Get("page")
	if !h.policy.CanEnterPage(role, page) {
		page = rbac.DefaultPage
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"pageId": page})
}

func (h *Handler) currentRole(r *http.Request) (rbac.Role, bool) {
	id := shared.IdentityFromContext(r.Context())
	if id.Role == "" {
		return "", false
	}
	return rbac.Normalize(id.Role)
}
