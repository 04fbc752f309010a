package catalog

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

// Handler manages catalog endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	policy    *rbac.Policy
	rbac      rbac.Middleware
	recorder  audit.Recorder
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, policy *rbac.Policy, mw rbac.Middleware, recorder audit.Recorder) *Handler {
	return &Handler{logger: logger, service: service, policy: policy, rbac: mw, recorder: recorder, validator: validator.New()}
}

// MountRoutes registers the authenticated catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleProducts))
			r.Get("/", h.listProducts)
			r.Get("/{id}", h.getProduct)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleProducts))
			r.Post("/", h.createProduct)
			r.Put("/{id}", h.updateProduct)
			r.Patch("/{id}/status", h.setProductStatus)
			r.Delete("/{id}", h.deleteProduct)
		})
	})
	r.Route("/auctions", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleAuctions))
			r.Get("/", h.listAuctions)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleAuctions))
			r.Post("/{id}/close", h.closeAuction)
		})
	})
	r.Route("/categories", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireModule(rbac.ModuleProducts))
			r.Get("/", h.listCategories)
		})
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleProducts))
			r.Post("/", h.createCategory)
			r.Delete("/{id}", h.deleteCategory)
		})
	})
	r.Route("/banners", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.rbac.RequireWrite(rbac.ModuleProducts))
			r.Post("/", h.createBanner)
			r.Put("/{id}", h.updateBanner)
			r.Delete("/{id}", h.deleteBanner)
		})
	})
}

// MountPublicRoutes registers the unauthenticated storefront surface.
func (h *Handler) MountPublicRoutes(r chi.Router) {
	r.Get("/banners", h.listBanners)
}

// companyScope narrows listings to the caller's company for own-scoped
// roles; everyone else sees the unfiltered page.
func (h *Handler) companyScope(r *http.Request) string {
	id := shared.IdentityFromContext(r.Context())
	role, ok := rbac.Normalize(id.Role)
	if ok && h.policy.OwnScoped(role) {
		return id.CompanyID
	}
	return ""
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	products, pagination, err := h.service.ListProducts(r.Context(), query, h.companyScope(r))
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products, "pagination": pagination})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !h.decode(w, r, &req) {
		return
	}
	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "create", rbac.ModuleProducts, product.ID)
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ProductRequest
	if !h.decode(w, r, &req) {
		return
	}
	product, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "update", rbac.ModuleProducts, id)
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) setProductStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status" validate:"required,oneof=approved rejected pending"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.SetProductStatus(r.Context(), id, req.Status); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "status:"+req.Status, rbac.ModuleProducts, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "delete", rbac.ModuleProducts, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) listAuctions(w http.ResponseWriter, r *http.Request) {
	query := shared.ParseListQuery(r)
	auctions, pagination, err := h.service.ListAuctions(r.Context(), query, h.companyScope(r))
	if err != nil {
		h.logger.Error("list auctions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"auctions": auctions, "pagination": pagination})
}

func (h *Handler) closeAuction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.CloseAuction(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "close", rbac.ModuleAuctions, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.service.CreateCategory(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "create-category", rbac.ModuleProducts, category.ID)
	httpx.JSON(w, http.StatusCreated, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "delete-category", rbac.ModuleProducts, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) listBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.ListBanners(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"banners": banners})
}

func (h *Handler) createBanner(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if !h.decode(w, r, &req) {
		return
	}
	banner, err := h.service.CreateBanner(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "create-banner", rbac.ModuleProducts, banner.ID)
	httpx.JSON(w, http.StatusCreated, banner)
}

func (h *Handler) updateBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req BannerRequest
	if !h.decode(w, r, &req) {
		return
	}
	banner, err := h.service.UpdateBanner(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "update-banner", rbac.ModuleProducts, id)
	httpx.JSON(w, http.StatusOK, banner)
}

func (h *Handler) deleteBanner(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteBanner(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.record(r, "delete-banner", rbac.ModuleProducts, id)
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed payload")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		var fieldErrs validator.ValidationErrors
		detail := "invalid payload"
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			detail = fieldErrs[0].Field() + " is invalid"
		}
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, detail))
		return false
	}
	return true
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
