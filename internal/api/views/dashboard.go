package views

//go:generate templ generate

const (
	PageTitle   = "SCM Dashboard"
	PageHeading = "Delivery Dashboard"

	CostChartPath = "/charts/cost-by-vehicle.svg"
	TimeChartPath = "/charts/delivery-time.svg"
)
