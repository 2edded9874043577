package charts

import (
	"delivery-dashboard-service/internal/domain"
	"math"
	"slices"
)

// Five-number summary drawn as one box in the cost chart.
type BoxSummary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Box plot input for one vehicle type.
type VehicleBox struct {
	VehicleType string
	Count       int
	Summary     BoxSummary
}

// Summarize computes min, quartiles, median and max using linear interpolation
// between closest ranks. ok is false for an empty input.
func Summarize(values []float64) (s BoxSummary, ok bool) {
	if len(values) == 0 {
		return BoxSummary{}, false
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return BoxSummary{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}, true
}

// SummarizeGroups turns raw grouped costs into boxes, keeping group order and
// skipping groups with no values.
func SummarizeGroups(groups []domain.VehicleCosts) []VehicleBox {
	out := make([]VehicleBox, 0, len(groups))
	for _, g := range groups {
		s, ok := Summarize(g.Costs)
		if !ok {
			continue
		}
		out = append(out, VehicleBox{VehicleType: g.VehicleType, Count: len(g.Costs), Summary: s})
	}
	return out
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
