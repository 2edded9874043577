package handlers

import (
	"delivery-dashboard-service/internal/adapters/charts"
	"delivery-dashboard-service/internal/api/dto"
	"delivery-dashboard-service/internal/api/views"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/obs"
	"delivery-dashboard-service/internal/ports"
	"delivery-dashboard-service/internal/services"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// DashboardHandler serves every request/response view of the dashboard.
// Each request is one filter event routed through the ViewBinder.
type DashboardHandler struct {
	Binder      *services.ViewBinder
	ChartWidth  int
	ChartHeight int
}

// Page renders the full dashboard document for the requested selection, or
// just the panel when htmx asks for it.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	if !allowGET(w, r) {
		return
	}

	pub := &htmlPublisher{w: w, r: r, render: func(d domain.Dashboard) templ.Component {
		return pageComponent(r, views.Panel(d), views.Page(h.Binder.Options(), d))
	}}
	h.bind(w, r, pub, true)
}

// Panel renders only the KPI cards and chart panels, the htmx swap target.
func (h *DashboardHandler) Panel(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	pub := &htmlPublisher{w: w, r: r, render: func(d domain.Dashboard) templ.Component {
		return views.Panel(d)
	}}
	h.bind(w, r, pub, true)
}

// JSON returns the dashboard, with per-vehicle box summaries, as JSON.
func (h *DashboardHandler) JSON(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}
	h.bind(w, r, &jsonPublisher{w: w, r: r}, false)
}

// VehicleTypes lists the selection control's options.
func (h *DashboardHandler) VehicleTypes(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.VehicleTypesResponse{
		Options: h.Binder.Options(),
		Default: domain.FilterAll,
	})
}

func (h *DashboardHandler) CostChart(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	pub := &svgPublisher{w: w, render: func(out io.Writer, d domain.Dashboard) error {
		return charts.RenderCostBoxPlot(out, d.CostByVehicle, h.width(), h.height())
	}}
	h.bind(w, r, pub, false)
}

func (h *DashboardHandler) TimeChart(w http.ResponseWriter, r *http.Request) {
	if !allowGET(w, r) {
		return
	}

	pub := &svgPublisher{w: w, render: func(out io.Writer, d domain.Dashboard) error {
		return charts.RenderTimeHistogram(out, d.TimeDistribution, h.width(), h.height())
	}}
	h.bind(w, r, pub, false)
}

func (h *DashboardHandler) bind(w http.ResponseWriter, r *http.Request, pub ports.DashboardPublisher, html bool) {
	sel := domain.NewFilterSelection(r.URL.Query().Get("vehicle_type"))

	if err := h.Binder.Bind(r.Context(), sel, pub); err != nil {
		if c, ok := pub.(interface{ written() bool }); ok && c.written() {
			slog.WarnContext(r.Context(), "dashboard response write failed", "req_id", obs.RequestID(r.Context()), "err", err)
			return
		}
		slog.ErrorContext(r.Context(), "dashboard request failed",
			"req_id", obs.RequestID(r.Context()),
			"path", r.URL.Path,
			"vehicle_type", sel.Value(),
			"err", err,
		)
		if html {
			if werr := renderHTML(w, r, http.StatusInternalServerError, views.ErrorPanel("Could not compute dashboard.")); werr != nil {
				slog.WarnContext(r.Context(), "write error panel failed", "err", werr)
			}
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func (h *DashboardHandler) width() int {
	if h.ChartWidth > 0 {
		return h.ChartWidth
	}
	return charts.DefaultWidth
}

func (h *DashboardHandler) height() int {
	if h.ChartHeight > 0 {
		return h.ChartHeight
	}
	return charts.DefaultHeight
}
