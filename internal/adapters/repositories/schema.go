package repositories

import (
	"context"
	"database/sql"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/db"
	"errors"
	"fmt"
	"strings"
)

// Initialize the deliveries schema. The DDL is valid for both SQLite and PostgreSQL.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		delivery_id INTEGER PRIMARY KEY,
		vehicle_type TEXT NOT NULL,
		delivery_cost DOUBLE PRECISION NOT NULL,
		delivery_time_min DOUBLE PRECISION NOT NULL,
		on_time TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_vehicle_type
    ON deliveries(vehicle_type);
	`

	statements := []string{
		createDeliveriesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the contents of the deliveries table with rows, storing on_time as its label.
func SeedDeliveries(
	ctx context.Context,
	conn *sql.DB,
	driver string,
	rows []domain.Delivery,
	labels domain.OnTimeLabels,
) error {
	if conn == nil {
		return errors.New("seed deliveries: DB is nil")
	}

	for i, r := range rows {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("seed deliveries: row %d: %w", i+1, err)
		}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed deliveries: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deliveries;`); err != nil {
		return fmt.Errorf("seed deliveries: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertDeliveryQuery(driver))
	if err != nil {
		return fmt.Errorf("seed deliveries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		id := i + 1
		if _, err := stmt.ExecContext(ctx, id, r.VehicleType, r.DeliveryCost, r.DeliveryTimeMin, labels.Label(r.OnTime)); err != nil {
			return fmt.Errorf("seed deliveries: insert delivery_id=%d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed deliveries: commit tx: %w", err)
	}

	return nil
}

// SQLite binds "?" placeholders; pgx expects "$n".
func insertDeliveryQuery(driver string) string {
	ph := []string{"?", "?", "?", "?", "?"}
	if driver == db.DriverPostgres {
		for i := range ph {
			ph[i] = fmt.Sprintf("$%d", i+1)
		}
	}

	return fmt.Sprintf(`
	INSERT INTO deliveries (
		delivery_id,
		vehicle_type,
		delivery_cost,
		delivery_time_min,
		on_time
	)
	VALUES (%s);
	`, strings.Join(ph, ", "))
}
