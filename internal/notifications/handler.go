package notifications

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mazaadati/bidmaster-admin/internal/audit"
	"github.com/mazaadati/bidmaster-admin/internal/platform/httpx"
	"github.com/mazaadati/bidmaster-admin/internal/rbac"
	"github.com/mazaadati/bidmaster-admin/internal/shared"
)

// Handler manages notification endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	rbac      rbac.Middleware
	recorder  audit.Recorder
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware, recorder audit.Recorder) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw, recorder: recorder, validator: validator.New()}
}

// MountRoutes registers the notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleNotifications))
			r.Get("/", h.list)
			r.Get("/unread-count", h.unreadCount)
			r.Patch("/{id}/read", h.markRead)
			r.Post("/read-all", h.markAllRead)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleNotifications))
			r.Post("/broadcast", h.broadcast)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	items, pagination, err := h.service.List(r.Context(), query)
	if err != nil {
		h.logger.Error("list notifications", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"notifications": items, "pagination": pagination})
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	sid := shared.SessionIDFromContext(r.Context())
	count, err := h.service.UnreadCount(r.Context(), sid)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"count": count})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	sid := shared.SessionIDFromContext(r.Context())
	if err := h.service.MarkRead(r.Context(), sid, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	sid := shared.SessionIDFromContext(r.Context())
	if err := h.service.MarkAllRead(r.Context(), sid); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) broadcast(w http.ResponseWriter, r *http.Request) {
	var req BroadcastRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed payload")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		detail := "invalid payload"
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			detail = fieldErrs[0].Field() + " is invalid"
		}
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, detail))
		return
	}
	if err := h.service.Broadcast(r.Context(), req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	h.recorder.Record(r.Context(), audit.Entry{
		ActorID: identity.Subject,
		Role:    identity.Role,
		Action:  "broadcast:" + req.Audience,
		Module:  string(rbac.ModuleNotifications),
	})
	httpx.JSON(w, http.StatusAccepted, map[string]any{"success": true})
}
