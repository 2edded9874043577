package domain

import (
	"fmt"
	"math"
	"strings"
)

// Represents a single completed delivery as loaded from the source table.
// Fields are validated once by the loader; a Delivery is never mutated afterwards.
type Delivery struct {
	VehicleType     string
	DeliveryCost    float64
	DeliveryTimeMin float64
	OnTime          bool
}

// OnTimeLabels are the two category labels the source table uses for on_time.
type OnTimeLabels struct {
	OnTime string
	Late   string
}

// Default labels used by the synthetic delivery dataset.
var DefaultOnTimeLabels = OnTimeLabels{OnTime: "Yes", Late: "No"}

// Label returns the category label for an on-time flag.
func (l OnTimeLabels) Label(onTime bool) string {
	if onTime {
		return l.OnTime
	}
	return l.Late
}

// Parse maps a raw label to its flag. ok is false for anything other than the two labels.
func (l OnTimeLabels) Parse(raw string) (onTime bool, ok bool) {
	switch raw {
	case l.OnTime:
		return true, true
	case l.Late:
		return false, true
	}
	return false, false
}

// Validate checks the load-time invariants of a row.
func (d Delivery) Validate() error {
	if strings.TrimSpace(d.VehicleType) == "" {
		return fmt.Errorf("vehicle_type: %w", ErrMissingRequiredVal)
	}
	// The selection sentinel cannot double as a real category.
	if strings.TrimSpace(d.VehicleType) == FilterAll {
		return fmt.Errorf("vehicle_type: %q: %w", FilterAll, ErrReservedValue)
	}
	if math.IsNaN(d.DeliveryCost) || math.IsInf(d.DeliveryCost, 0) || d.DeliveryCost < 0 {
		return fmt.Errorf("delivery_cost: must be a non-negative number, got %v", d.DeliveryCost)
	}
	if math.IsNaN(d.DeliveryTimeMin) || math.IsInf(d.DeliveryTimeMin, 0) || d.DeliveryTimeMin < 0 {
		return fmt.Errorf("delivery_time_min: must be a non-negative number, got %v", d.DeliveryTimeMin)
	}
	return nil
}
