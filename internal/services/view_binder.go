package services

import (
	"context"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/metrics"
	"delivery-dashboard-service/internal/platform/obs"
	"delivery-dashboard-service/internal/ports"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("delivery-dashboard-service/internal/services")

// ViewBinder turns filter-selection events into published dashboards.
//
// Each Bind call is one event: it computes a complete dashboard and hands it
// to the publisher, replacing whatever the surface showed before. The dataset
// is only read, so one binder is shared by every request and session.
type ViewBinder struct {
	Dataset domain.Dataset
	Bins    int
}

func NewViewBinder(ds domain.Dataset, bins int) *ViewBinder {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	return &ViewBinder{Dataset: ds, Bins: bins}
}

// Options returns the selection control's choices: distinct vehicle types in
// dataset order followed by the All sentinel.
func (b *ViewBinder) Options() []string {
	opts := b.Dataset.VehicleTypes()
	return append(opts, domain.FilterAll)
}

// Bind recomputes the dashboard for sel and publishes it.
// A computation fault fails only this event; the publisher is not called and
// the surface keeps its previous state.
func (b *ViewBinder) Bind(ctx context.Context, sel domain.FilterSelection, pub ports.DashboardPublisher) (err error) {
	defer obs.Time(ctx, "dashboard.Bind")(&err)

	ctx, span := tracer.Start(ctx, "dashboard.bind", trace.WithAttributes(
		attribute.String("dashboard.vehicle_type", sel.Value()),
		attribute.Int("dashboard.bins", b.Bins),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	d, err := b.Compute(ctx, sel)
	if err != nil {
		return err
	}

	if err := pub.Publish(ctx, d); err != nil {
		return fmt.Errorf("bind dashboard: publish: %w", err)
	}
	return nil
}

// Compute runs the aggregator for sel and records metrics for the run.
func (b *ViewBinder) Compute(ctx context.Context, sel domain.FilterSelection) (domain.Dashboard, error) {
	start := time.Now()
	d, err := Compute(b.Dataset, sel, b.Bins)
	metrics.RecordRecompute(sel.IsAll(), err, time.Since(start))

	if err != nil {
		slog.ErrorContext(ctx, "dashboard recompute failed",
			"req_id", obs.RequestID(ctx),
			"vehicle_type", sel.Value(),
			"err", err,
		)
		return domain.Dashboard{}, fmt.Errorf("bind dashboard: %w", err)
	}

	slog.DebugContext(ctx, "dashboard recomputed",
		"req_id", obs.RequestID(ctx),
		"vehicle_type", sel.Value(),
		"total", d.KPIs.Total,
	)
	return d, nil
}
