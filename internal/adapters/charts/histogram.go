package charts

import (
	"delivery-dashboard-service/internal/domain"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const TimeChartTitle = "Delivery Time Distribution"

const minLabelSpacing = 40

// RenderTimeHistogram draws the binned delivery times as stacked bars, on-time
// deliveries at the bottom of each bar and late ones on top.
func RenderTimeHistogram(w io.Writer, dist domain.TimeDistribution, width, height int) error {
	c, err := newCanvas(width, height, TimeChartTitle)
	if err != nil {
		return fmt.Errorf("render time histogram: %w", err)
	}

	if len(dist.Bins) == 0 {
		c.scaleY(0, "count")
		c.empty("No deliveries match this filter")
		return c.save(w)
	}

	peak := 0
	for _, b := range dist.Bins {
		peak = max(peak, b.Count())
	}
	c.scaleY(float64(peak), "count")

	onTime, late := hex(onTimeHex), hex(lateHex)
	c.legend(
		[]string{dist.Labels.OnTime, dist.Labels.Late},
		[]drawing.Color{onTime, late},
	)

	// Bars are placed on a fractional slot so any bin count fits the plot.
	slot := float64(c.plot.Width()) / float64(len(dist.Bins))
	edge := func(i int) int { return c.plot.Left + int(math.Round(slot*float64(i))) }

	gap := 0
	switch {
	case slot > 12:
		gap = 2
	case slot >= 3:
		gap = 1
	}

	// Label bin edges at least minLabelSpacing pixels apart.
	every := max(1, int(math.Ceil(minLabelSpacing/slot)))

	for i, b := range dist.Bins {
		x0, x1 := edge(i)+gap, edge(i+1)-gap
		if x1 < x0 {
			x1 = x0
		}

		if b.OnTime > 0 {
			c.rect(x0, c.y(float64(b.OnTime)), x1, c.y(0), onTime, onTime)
		}
		if b.Late > 0 {
			c.rect(x0, c.y(float64(b.Count())), x1, c.y(float64(b.OnTime)), late, late)
		}

		if i%every == 0 {
			c.textCentered(fmt.Sprintf("%.1f", b.Lower), edge(i), c.plot.Bottom+16, 9, mutedText)
		}
	}

	last := dist.Bins[len(dist.Bins)-1]
	c.textCentered(fmt.Sprintf("%.1f", last.Upper), edge(len(dist.Bins)), c.plot.Bottom+16, 9, mutedText)
	c.textCentered("delivery_time_min", c.plot.Left+c.plot.Width()/2, c.h-8, 11, mutedText)

	return c.save(w)
}
