package repositories

import (
	"context"
	"database/sql"
	"delivery-dashboard-service/internal/adapters/loader"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/obs"
	"errors"
	"fmt"
	"log/slog"
)

// database/sql implementation of the DeliverySource port.
// Works with both the SQLite and the pgx drivers.
type SQLDeliveryRepository struct {
	DB     *sql.DB
	Labels domain.OnTimeLabels
}

func NewSQLDeliveryRepository(db *sql.DB, labels domain.OnTimeLabels) *SQLDeliveryRepository {
	return &SQLDeliveryRepository{DB: db, Labels: labels}
}

// Return all deliveries stored in the database, in delivery_id order.
func (s *SQLDeliveryRepository) LoadDeliveries(ctx context.Context) (_ []domain.Delivery, err error) {
	defer obs.Time(ctx, "deliveries.LoadDeliveries")(&err)

	if s.DB == nil {
		return nil, errors.New("sql delivery repository: DB is nil")
	}

	query := `
	SELECT
		vehicle_type,
		delivery_cost,
		delivery_time_min,
		on_time
	FROM deliveries
	ORDER BY delivery_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]domain.Delivery, 0, 256)
	for n := 1; rows.Next(); n++ {
		var d domain.Delivery
		var label string
		if err := rows.Scan(&d.VehicleType, &d.DeliveryCost, &d.DeliveryTimeMin, &label); err != nil {
			return nil, fmt.Errorf("load deliveries: scan row %d: %w", n, err)
		}

		d.OnTime, err = loader.ParseOnTime(label, s.Labels)
		if err != nil {
			return nil, fmt.Errorf("load deliveries: row %d: %w", n, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("load deliveries: row %d: %w", n, err)
		}

		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load deliveries: row iteration: %w", err)
	}

	slog.InfoContext(ctx, "dataset loaded", "source", "sql", "records", len(deliveries))
	return deliveries, nil
}
