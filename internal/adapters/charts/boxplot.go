package charts

import (
	"delivery-dashboard-service/internal/domain"
	"fmt"
	"io"
	"math"
)

const CostChartTitle = "Delivery Cost by Vehicle Type"

// RenderCostBoxPlot draws one box per vehicle type (min/Q1/median/Q3/max of
// delivery cost) as an SVG document.
func RenderCostBoxPlot(w io.Writer, groups []domain.VehicleCosts, width, height int) error {
	c, err := newCanvas(width, height, CostChartTitle)
	if err != nil {
		return fmt.Errorf("render cost box plot: %w", err)
	}

	boxes := SummarizeGroups(groups)
	if len(boxes) == 0 {
		c.scaleY(0, "delivery_cost")
		c.empty("No deliveries match this filter")
		return c.save(w)
	}

	hi := 0.0
	for _, b := range boxes {
		hi = math.Max(hi, b.Summary.Max)
	}
	c.scaleY(hi, "delivery_cost")

	slot := c.plot.Width() / len(boxes)
	boxW := min(slot/2, 80)

	for i, b := range boxes {
		color := hex(SeriesColor(i))
		fill := color.WithAlpha(96)
		cx := c.plot.Left + slot*i + slot/2
		s := b.Summary

		// whiskers
		c.line(cx, c.y(s.Max), cx, c.y(s.Q3), color, 1.5)
		c.line(cx, c.y(s.Q1), cx, c.y(s.Min), color, 1.5)
		c.line(cx-boxW/4, c.y(s.Max), cx+boxW/4, c.y(s.Max), color, 1.5)
		c.line(cx-boxW/4, c.y(s.Min), cx+boxW/4, c.y(s.Min), color, 1.5)

		c.rect(cx-boxW/2, c.y(s.Q3), cx+boxW/2, c.y(s.Q1), fill, color)
		c.line(cx-boxW/2, c.y(s.Median), cx+boxW/2, c.y(s.Median), color, 2.5)

		c.textCentered(b.VehicleType, cx, c.plot.Bottom+18, 11, textColor)
		c.textCentered(fmt.Sprintf("n=%d", b.Count), cx, c.plot.Bottom+32, 9, mutedText)
	}

	c.textCentered("vehicle_type", c.plot.Left+c.plot.Width()/2, c.h-8, 11, mutedText)
	return c.save(w)
}
