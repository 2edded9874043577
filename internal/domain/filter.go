package domain

import "strings"

// FilterAll is the "no filter" sentinel shown as the default selection option.
const FilterAll = "All"

// The vehicle type currently chosen by the user, or the FilterAll sentinel.
type FilterSelection struct {
	value string
	all   bool
}

// SelectAll returns the sentinel selection.
func SelectAll() FilterSelection { return FilterSelection{value: FilterAll, all: true} }

// NewFilterSelection normalizes a raw selection value. Blank input and the
// literal "All" both select the whole dataset.
func NewFilterSelection(raw string) FilterSelection {
	v := strings.TrimSpace(raw)
	if v == "" || v == FilterAll {
		return SelectAll()
	}
	return FilterSelection{value: v}
}

func (f FilterSelection) IsAll() bool {
	return f.all || f.value == ""
}

// Value returns the vehicle type, or FilterAll for the sentinel.
func (f FilterSelection) Value() string {
	if f.IsAll() {
		return FilterAll
	}
	return f.value
}

// Matches reports whether a delivery passes this selection.
func (f FilterSelection) Matches(d Delivery) bool {
	return f.IsAll() || d.VehicleType == f.value
}
