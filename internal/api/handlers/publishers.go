package handlers

import (
	"bytes"
	"context"
	"delivery-dashboard-service/internal/adapters/charts"
	"delivery-dashboard-service/internal/api/dto"
	"delivery-dashboard-service/internal/domain"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// htmlPublisher serves a templ component for the dashboard as the response.
type htmlPublisher struct {
	w      http.ResponseWriter
	r      *http.Request
	render func(d domain.Dashboard) templ.Component
	wrote  bool
}

func (p *htmlPublisher) Publish(_ context.Context, d domain.Dashboard) error {
	p.w.Header().Set("Cache-Control", "no-store")
	if err := renderHTML(p.w, p.r, http.StatusOK, p.render(d)); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	p.wrote = true
	return nil
}

func (p *htmlPublisher) written() bool { return p.wrote }

// jsonPublisher writes the dashboard as a JSON document.
type jsonPublisher struct {
	w     http.ResponseWriter
	r     *http.Request
	wrote bool
}

func (p *jsonPublisher) Publish(_ context.Context, d domain.Dashboard) error {
	p.wrote = true
	writeJSON(p.w, p.r, http.StatusOK, newDashboardResponse(d))
	return nil
}

func (p *jsonPublisher) written() bool { return p.wrote }

// svgPublisher renders one chart for the dashboard as an SVG image.
type svgPublisher struct {
	w      http.ResponseWriter
	render func(out io.Writer, d domain.Dashboard) error
	wrote  bool
}

func (p *svgPublisher) Publish(_ context.Context, d domain.Dashboard) error {
	var buf bytes.Buffer
	if err := p.render(&buf, d); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}

	p.w.Header().Set("Content-Type", "image/svg+xml")
	p.w.Header().Set("Cache-Control", "no-store")
	p.w.WriteHeader(http.StatusOK)
	p.wrote = true
	_, err := p.w.Write(buf.Bytes())
	return err
}

func (p *svgPublisher) written() bool { return p.wrote }

func newDashboardResponse(d domain.Dashboard) dto.DashboardResponse {
	res := dto.DashboardResponse{
		VehicleType: d.Selection.Value(),
		KPIs: dto.KPIResponse{
			AvgDeliveryCost:    d.KPIs.AvgCost,
			AvgDeliveryTimeMin: d.KPIs.AvgTimeMin,
			OnTimePct:          d.KPIs.OnTimePct,
			TotalDeliveries:    d.KPIs.Total,
		},
		CostByVehicle: make([]dto.VehicleCostResponse, 0, len(d.CostByVehicle)),
		TimeDistribution: dto.TimeDistributionResponse{
			Categories: []string{d.TimeDistribution.Labels.OnTime, d.TimeDistribution.Labels.Late},
			Bins:       make([]dto.TimeBinResponse, 0, len(d.TimeDistribution.Bins)),
		},
	}

	for _, g := range d.CostByVehicle {
		vc := dto.VehicleCostResponse{VehicleType: g.VehicleType, Costs: g.Costs}
		if s, ok := charts.Summarize(g.Costs); ok {
			vc.Summary = &dto.BoxSummaryResponse{
				Min:    s.Min,
				Q1:     s.Q1,
				Median: s.Median,
				Q3:     s.Q3,
				Max:    s.Max,
			}
		}
		res.CostByVehicle = append(res.CostByVehicle, vc)
	}

	labels := d.TimeDistribution.Labels
	for _, b := range d.TimeDistribution.Bins {
		res.TimeDistribution.Bins = append(res.TimeDistribution.Bins, dto.TimeBinResponse{
			Lower: b.Lower,
			Upper: b.Upper,
			Counts: map[string]int{
				labels.OnTime: b.OnTime,
				labels.Late:   b.Late,
			},
			Total: b.Count(),
		})
	}

	return res
}
