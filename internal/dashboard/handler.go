package dashboard

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mazaadati/bidmaster-admin/internal/platform/httpx"
	"github.com/mazaadati/bidmaster-admin/internal/rbac"
)

// PDFRenderer turns a report into PDF bytes.
type PDFRenderer interface {
	RenderReport(ctx context.Context, rep Report) ([]byte, error)
}

// CSVWriter turns a report into CSV bytes.
type CSVWriter func(w io.Writer, rep Report) error

// Handler manages dashboard endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	rbac     rbac.Middleware
	pdf      PDFRenderer
	writeCSV CSVWriter
}

// NewHandler builds a Handler instance. pdf may be nil when no Gotenberg
// endpoint is configured; the PDF route then answers 503.
func NewHandler(logger *slog.Logger, service *Service, mw rbac.Middleware, pdf PDFRenderer, writeCSV CSVWriter) *Handler {
	return &Handler{logger: logger, service: service, rbac: mw, pdf: pdf, writeCSV: writeCSV}
}

// MountRoutes registers the dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(h.rbac.RequireModule(rbac.ModuleDashboard))
		r.Get("/stats", h.stats)
		r.Get("/export.csv", h.exportCSV)
		r.Get("/export.pdf", h.exportPDF)
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Report(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	buf := &bytes.Buffer{}
	if err := h.writeCSV(buf, *rep); err != nil {
		h.logger.Error("write report csv", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=dashboard-"+time.Now().Format("2006-01-02")+".csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	if h.pdf == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "Unavailable", "pdf rendering is not configured")
		return
	}
	rep, err := h.service.Report(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	pdf, err := h.pdf.RenderReport(r.Context(), *rep)
	if err != nil {
		h.logger.Error("render report pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Bad Gateway", "pdf rendering failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=dashboard-"+time.Now().Format("2006-01-02")+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
