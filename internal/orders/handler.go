package orders

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

// Handler manages order, wallet and referral endpoints.
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

// MountRoutes registers the order routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleOrders))
			r.Get("/", h.listOrders)
			r.Get("/{id}", h.getOrder)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleOrders))
			r.Patch("/{id}/status", h.setOrderStatus)
		})
	})
	r.Route("/wallet-logs", func(r chi.Router) {
		r.Use(h.rbac.RequireModule(rbac.ModulePayments))
		r.Get("/", h.listWallet)
	})
	r.Route("/referrals", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModulePayments))
			r.Get("/", h.listReferrals)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModulePayments))
			r.Post("/{id}/payout", h.payoutReferral)
		})
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	orders, pagination, err := h.service.ListOrders(r.Context(), query)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": orders, "pagination": pagination})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) setOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status" validate:"required,oneof=pending shipped delivered cancelled"`
	}
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
	if err := h.service.SetOrderStatus(r.Context(), id, req.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "status:"+req.Status, rbac.ModuleOrders, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) listWallet(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	entries, pagination, err := h.service.ListWallet(r.Context(), query, r.URL.Query().Get("userId"))
	if err != nil {
		h.logger.Error("list wallet logs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": entries, "pagination": pagination})
}

func (h *Handler) listReferrals(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	referrals, pagination, err := h.service.ListReferrals(r.Context(), query)
	if err != nil {
		h.logger.Error("list referrals", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"referrals": referrals, "pagination": pagination})
}

func (h *Handler) payoutReferral(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.PayoutReferral(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "payout", rbac.ModulePayments, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) record(r *http.Request, action string, module rbac.Module, targetID string) {
	id := shared.IdentityFromContext(r.Context())
	h.recorder.Record(r.Context(), audit.Entry{
		ActorID:  id.Subject,
		Role:     id.Role,
		Action:   action,
		Module:   string(module),
		TargetID: targetID,
	})
}
