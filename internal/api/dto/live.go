package dto

// Message a live client sends to change its filter selection.
type LiveRequest struct {
	VehicleType string `json:"vehicle_type"`
}

const (
	LiveFrameDashboard = "dashboard"
	LiveFrameError     = "error"
)

// Frame pushed to live clients: a full dashboard or an error for the last event.
type LiveFrame struct {
	Type  string             `json:"type"`
	Data  *DashboardResponse `json:"data,omitempty"`
	Error string             `json:"error,omitempty"`
}
