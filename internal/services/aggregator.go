package services

import (
	"delivery-dashboard-service/internal/domain"
	"fmt"
	"math"
	"slices"
)

// DefaultHistogramBins is used whenever a caller asks for a non-positive bin count.
const DefaultHistogramBins = 10

// Compute derives the full dashboard for one filter selection.
//
// It is a pure function of its inputs: the dataset is only read, nothing is
// cached, and identical inputs always produce identical numbers.
func Compute(ds domain.Dataset, sel domain.FilterSelection, bins int) (domain.Dashboard, error) {
	rows, err := FilterDeliveries(ds, sel)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("compute dashboard: %w", err)
	}

	return domain.Dashboard{
		Selection:        sel,
		KPIs:             SummarizeKPIs(rows),
		CostByVehicle:    GroupCostByVehicle(rows),
		TimeDistribution: BucketDeliveryTimes(rows, bins, ds.Labels()),
	}, nil
}

// FilterDeliveries returns the working set for a selection. The sentinel keeps
// every record; any other value keeps exact vehicle_type matches, so an unknown
// value simply yields an empty set.
//
// Records missing a required field fail the whole computation with a *domain.DataError.
func FilterDeliveries(ds domain.Dataset, sel domain.FilterSelection) ([]domain.Delivery, error) {
	out := make([]domain.Delivery, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		d := ds.At(i)
		if d.VehicleType == "" {
			return nil, &domain.DataError{Index: i, Field: "vehicle_type"}
		}
		if !sel.Matches(d) {
			continue
		}
		if math.IsNaN(d.DeliveryCost) {
			return nil, &domain.DataError{Index: i, Field: "delivery_cost"}
		}
		if math.IsNaN(d.DeliveryTimeMin) {
			return nil, &domain.DataError{Index: i, Field: "delivery_time_min"}
		}
		out = append(out, d)
	}
	return out, nil
}

// SummarizeKPIs computes the four dashboard KPIs. An empty set is zero-filled.
func SummarizeKPIs(rows []domain.Delivery) domain.KPISummary {
	n := len(rows)
	if n == 0 {
		return domain.KPISummary{}
	}

	costs := make([]float64, 0, n)
	times := make([]float64, 0, n)
	onTime := 0
	for _, r := range rows {
		costs = append(costs, r.DeliveryCost)
		times = append(times, r.DeliveryTimeMin)
		if r.OnTime {
			onTime++
		}
	}

	return domain.KPISummary{
		AvgCost:    RoundTo2(mean(costs)),
		AvgTimeMin: RoundTo2(mean(times)),
		OnTimePct:  RoundTo2(float64(onTime) / float64(n) * 100),
		Total:      n,
	}
}

// GroupCostByVehicle groups raw delivery costs per vehicle type, keeping the
// order in which vehicle types first appear. Quartiles are left to the chart layer.
func GroupCostByVehicle(rows []domain.Delivery) []domain.VehicleCosts {
	idx := make(map[string]int)
	groups := make([]domain.VehicleCosts, 0, 8)

	for _, r := range rows {
		i, ok := idx[r.VehicleType]
		if !ok {
			i = len(groups)
			idx[r.VehicleType] = i
			groups = append(groups, domain.VehicleCosts{VehicleType: r.VehicleType})
		}
		groups[i].Costs = append(groups[i].Costs, r.DeliveryCost)
	}

	return groups
}

// BucketDeliveryTimes splits delivery_time_min into equal-width bins spanning
// the min/max of rows, counting on-time and late deliveries per bin.
//
// The maximum value lands in the last bin. When every time is equal a single
// bin holds all records; an empty set produces no bins.
func BucketDeliveryTimes(rows []domain.Delivery, bins int, labels domain.OnTimeLabels) domain.TimeDistribution {
	dist := domain.TimeDistribution{Bins: []domain.TimeBin{}, Labels: labels}
	if len(rows) == 0 {
		return dist
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}

	lo, hi := rows[0].DeliveryTimeMin, rows[0].DeliveryTimeMin
	for _, r := range rows[1:] {
		lo = math.Min(lo, r.DeliveryTimeMin)
		hi = math.Max(hi, r.DeliveryTimeMin)
	}

	if lo == hi {
		bin := domain.TimeBin{Lower: lo, Upper: hi}
		for _, r := range rows {
			countInto(&bin, r.OnTime)
		}
		dist.Bins = append(dist.Bins, bin)
		return dist
	}

	width := (hi - lo) / float64(bins)
	dist.Bins = make([]domain.TimeBin, bins)
	for i := range dist.Bins {
		dist.Bins[i].Lower = lo + float64(i)*width
		dist.Bins[i].Upper = lo + float64(i+1)*width
	}
	dist.Bins[bins-1].Upper = hi

	for _, r := range rows {
		i := int((r.DeliveryTimeMin - lo) / width)
		i = max(0, min(i, bins-1))
		countInto(&dist.Bins[i], r.OnTime)
	}

	return dist
}

// RoundTo2 rounds half away from zero to two decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// mean sums in ascending order so the result does not depend on record order.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	return total / float64(len(sorted))
}

func countInto(b *domain.TimeBin, onTime bool) {
	if onTime {
		b.OnTime++
		return
	}
	b.Late++
}
