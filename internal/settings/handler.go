package settings

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

// uploads are rejected above this size before the backend sees them
const maxLogoBytes = 5 << 20

// Handler manages settings endpoints.
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

// MountRoutes registers the settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleSettings))
			r.Get("/", h.get)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleSettings))
			r.Put("/", h.update)
			r.Post("/logo", h.uploadLogo)
		})
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		h.logger.Error("get settings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, settings)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
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
	settings, err := h.service.Update(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "update")
	httpx.JSON(w, http.StatusOK, settings)
}

func (h *Handler) uploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "logo upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "logo file missing")
		return
	}
	defer file.Close()

	logoURL, err := h.service.UploadLogo(r.Context(), header.Filename, file)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "upload-logo")
	httpx.JSON(w, http.StatusOK, map[string]any{"logoUrl": logoURL})
}

func (h *Handler) record(r *http.Request, action string) {
	identity := shared.IdentityFromContext(r.Context())
	h.recorder.Record(r.Context(), audit.Entry{
		ActorID: identity.Subject,
		Role:    identity.Role,
		Action:  action,
		Module:  string(rbac.ModuleSettings),
	})
}
