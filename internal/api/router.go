package api

import (
	"delivery-dashboard-service/internal/api/handlers"
	"delivery-dashboard-service/internal/api/views"
	"delivery-dashboard-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete row sources).
func NewRouter(binder *services.ViewBinder) http.Handler {
	mux := http.NewServeMux()

	dash := &handlers.DashboardHandler{Binder: binder}
	live := handlers.NewLiveHandler(binder)

	routes := map[string]http.HandlerFunc{
		"/":                  dash.Page,
		"/dashboard":         dash.Panel,
		"/api/dashboard":     dash.JSON,
		"/api/vehicle-types": dash.VehicleTypes,
		views.CostChartPath:  dash.CostChart,
		views.TimeChartPath:  dash.TimeChart,
		"/ws":                live.Serve,
		"/health":            handlers.Health,
	}

	known := make(map[string]bool, len(routes)+1)
	for path, h := range routes {
		mux.HandleFunc(path, h)
		known[path] = true
	}

	mux.Handle("/metrics", promhttp.Handler())
	known["/metrics"] = true

	return requestIDMiddleware(loggingMiddleware(mux, known))
}
