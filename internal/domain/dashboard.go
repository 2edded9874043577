package domain

// KPI values shown on the dashboard cards.
// Averages and percentages are rounded to 2 decimals. An empty working set
// yields a zero-filled summary with Total == 0.
type KPISummary struct {
	AvgCost    float64
	AvgTimeMin float64
	OnTimePct  float64
	Total      int
}

// Raw delivery costs of one vehicle type, in dataset order.
type VehicleCosts struct {
	VehicleType string
	Costs       []float64
}

// One equal-width histogram bin over delivery_time_min.
// Lower is inclusive; Upper is exclusive except for the last bin.
type TimeBin struct {
	Lower  float64
	Upper  float64
	OnTime int
	Late   int
}

func (b TimeBin) Count() int { return b.OnTime + b.Late }

type TimeDistribution struct {
	Bins   []TimeBin
	Labels OnTimeLabels
}

// Total returns the sum of all bin counts.
func (t TimeDistribution) Total() int {
	n := 0
	for _, b := range t.Bins {
		n += b.Count()
	}
	return n
}

// Everything the dashboard displays for one filter selection.
// A Dashboard is always derived fresh from the dataset and never cached.
type Dashboard struct {
	Selection        FilterSelection
	KPIs             KPISummary
	CostByVehicle    []VehicleCosts
	TimeDistribution TimeDistribution
}
