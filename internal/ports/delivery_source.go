package ports

import (
	"context"
	"delivery-dashboard-service/internal/domain"
)

// Port: a boundary for reading the delivery table once at startup.
type DeliverySource interface {
	// Return every delivery row, validated and in source order.
	LoadDeliveries(ctx context.Context) ([]domain.Delivery, error)
}
