package ports

import (
	"context"
	"delivery-dashboard-service/internal/domain"
)

// Contract for a display surface that receives a freshly computed dashboard.
type DashboardPublisher interface {
	// Replace whatever the surface currently shows with d.
	Publish(ctx context.Context, d domain.Dashboard) error
}
