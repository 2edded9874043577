package domain

// Immutable, ordered collection of deliveries loaded once at startup.
// The zero value is a valid empty dataset.
type Dataset struct {
	records []Delivery
	labels  OnTimeLabels
}

// NewDataset copies records so later changes to the caller's slice cannot leak in.
func NewDataset(records []Delivery, labels OnTimeLabels) Dataset {
	cp := make([]Delivery, len(records))
	copy(cp, records)

	if labels.OnTime == "" && labels.Late == "" {
		labels = DefaultOnTimeLabels
	}

	return Dataset{records: cp, labels: labels}
}

func (d Dataset) Len() int { return len(d.records) }

// At returns the delivery at index i by value.
func (d Dataset) At(i int) Delivery { return d.records[i] }

func (d Dataset) Labels() OnTimeLabels {
	if d.labels.OnTime == "" && d.labels.Late == "" {
		return DefaultOnTimeLabels
	}
	return d.labels
}

// VehicleTypes returns the distinct vehicle types in first-appearance order.
func (d Dataset) VehicleTypes() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, r := range d.records {
		if _, ok := seen[r.VehicleType]; ok {
			continue
		}
		seen[r.VehicleType] = struct{}{}
		out = append(out, r.VehicleType)
	}
	return out
}
