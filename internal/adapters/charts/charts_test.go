package charts

import (
	"bytes"
	"delivery-dashboard-service/internal/domain"
	"strings"
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want BoxSummary
	}{
		{name: "single", in: []float64{7}, want: BoxSummary{7, 7, 7, 7, 7}},
		{name: "pair", in: []float64{20, 10}, want: BoxSummary{10, 12.5, 15, 17.5, 20}},
		{name: "five", in: []float64{5, 1, 4, 2, 3}, want: BoxSummary{1, 2, 3, 4, 5}},
		{name: "four", in: []float64{1, 2, 3, 4}, want: BoxSummary{1, 1.75, 2.5, 3.25, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Summarize(tt.in)
			if !ok {
				t.Fatal("expected ok")
			}
			if got != tt.want {
				t.Fatalf("summary = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, ok := Summarize(nil); ok {
		t.Fatal("empty input should not be ok")
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Summarize(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Fatalf("input was modified: %v", in)
	}
}

func TestSummarizeGroupsSkipsEmpty(t *testing.T) {
	boxes := SummarizeGroups([]domain.VehicleCosts{
		{VehicleType: "Truck", Costs: []float64{10, 20}},
		{VehicleType: "Ghost"},
		{VehicleType: "Van", Costs: []float64{15}},
	})

	if len(boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(boxes))
	}
	if boxes[0].VehicleType != "Truck" || boxes[0].Count != 2 || boxes[0].Summary.Median != 15 {
		t.Fatalf("truck box = %+v", boxes[0])
	}
	if boxes[1].VehicleType != "Van" {
		t.Fatalf("second box = %+v", boxes[1])
	}
}

func TestRenderCostBoxPlot(t *testing.T) {
	var buf bytes.Buffer
	err := RenderCostBoxPlot(&buf, []domain.VehicleCosts{
		{VehicleType: "Truck", Costs: []float64{10, 20, 30}},
		{VehicleType: "Van", Costs: []float64{15}},
	}, DefaultWidth, DefaultHeight)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatalf("expected svg output, got %q", out)
	}
	for _, want := range []string{CostChartTitle, "Truck", "Van"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderCostBoxPlotEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderCostBoxPlot(&buf, nil, DefaultWidth, DefaultHeight); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No deliveries match this filter") {
		t.Fatal("expected empty-state message")
	}
}

func TestRenderTimeHistogram(t *testing.T) {
	dist := domain.TimeDistribution{
		Labels: domain.DefaultOnTimeLabels,
		Bins: []domain.TimeBin{
			{Lower: 20, Upper: 30, OnTime: 2, Late: 1},
			{Lower: 30, Upper: 40, OnTime: 0, Late: 3},
		},
	}

	var buf bytes.Buffer
	if err := RenderTimeHistogram(&buf, dist, DefaultWidth, DefaultHeight); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<svg", TimeChartTitle, "Yes", "No", "40.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestRenderTimeHistogramEmpty(t *testing.T) {
	var buf bytes.Buffer
	dist := domain.TimeDistribution{Labels: domain.DefaultOnTimeLabels}
	if err := RenderTimeHistogram(&buf, dist, DefaultWidth, DefaultHeight); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No deliveries match this filter") {
		t.Fatal("expected empty-state message")
	}
}

func TestRenderTimeHistogramMoreBinsThanPixels(t *testing.T) {
	bins := make([]domain.TimeBin, 700)
	for i := range bins {
		bins[i] = domain.TimeBin{Lower: float64(i), Upper: float64(i + 1), OnTime: 1}
	}
	dist := domain.TimeDistribution{Labels: domain.DefaultOnTimeLabels, Bins: bins}

	done := make(chan error, 1)
	var buf bytes.Buffer
	go func() { done <- RenderTimeHistogram(&buf, dist, DefaultWidth, DefaultHeight) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("render: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("render did not return for 700 bins")
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "700.0") {
		t.Fatal("expected svg with the last bin edge labelled")
	}
}

func TestNiceStep(t *testing.T) {
	tests := map[float64]float64{
		0:    1,
		0.3:  0.5,
		1:    1,
		1.2:  2,
		2.2:  2.5,
		4:    5,
		7:    10,
		13:   20,
	}
	for in, want := range tests {
		if got := niceStep(in); got != want {
			t.Errorf("niceStep(%v) = %v, want %v", in, got, want)
		}
	}
}
