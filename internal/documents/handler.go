package documents

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

// Handler manages document review endpoints.
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

// MountRoutes registers the document routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/documents", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleDocuments))
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleDocuments))
			r.Patch("/{id}/review", h.review)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	docs, pagination, err := h.service.List(r.Context(), query)
	if err != nil {
		h.logger.Error("list documents", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"documents": docs, "pagination": pagination})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, doc)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ReviewRequest
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
	if err := h.service.Review(r.Context(), id, req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	identity := shared.IdentityFromContext(r.Context())
	h.recorder.Record(r.Context(), audit.Entry{
		ActorID:  identity.Subject,
		Role:     identity.Role,
		Action:   "review:" + req.Status,
		Module:   string(rbac.ModuleDocuments),
		TargetID: id,
	})
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}
