package dto

type KPIResponse struct {
	AvgDeliveryCost    float64 `json:"avg_delivery_cost"`
	AvgDeliveryTimeMin float64 `json:"avg_delivery_time_min"`
	OnTimePct          float64 `json:"on_time_pct"`
	TotalDeliveries    int     `json:"total_deliveries"`
}

type BoxSummaryResponse struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

type VehicleCostResponse struct {
	VehicleType string              `json:"vehicle_type"`
	Costs       []float64           `json:"costs"`
	Summary     *BoxSummaryResponse `json:"summary"`
}

type TimeBinResponse struct {
	Lower  float64        `json:"lower"`
	Upper  float64        `json:"upper"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type TimeDistributionResponse struct {
	Categories []string          `json:"categories"`
	Bins       []TimeBinResponse `json:"bins"`
}

type DashboardResponse struct {
	VehicleType      string                   `json:"vehicle_type"`
	KPIs             KPIResponse              `json:"kpis"`
	CostByVehicle    []VehicleCostResponse    `json:"cost_by_vehicle"`
	TimeDistribution TimeDistributionResponse `json:"time_distribution"`
}

type VehicleTypesResponse struct {
	Options []string `json:"options"`
	Default string   `json:"default"`
}
