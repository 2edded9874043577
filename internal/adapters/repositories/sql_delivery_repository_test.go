package repositories

import (
	"context"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/db"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func openTestDB(t *testing.T) *SQLDeliveryRepository {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "deliveries.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return NewSQLDeliveryRepository(conn, domain.DefaultOnTimeLabels)
}

func TestSeedAndLoadDeliveriesRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	rows := []domain.Delivery{
		{VehicleType: "Truck", DeliveryCost: 10, DeliveryTimeMin: 30, OnTime: true},
		{VehicleType: "Truck", DeliveryCost: 20, DeliveryTimeMin: 40, OnTime: false},
		{VehicleType: "Van", DeliveryCost: 15.25, DeliveryTimeMin: 20, OnTime: true},
	}
	if err := SeedDeliveries(ctx, repo.DB, db.DriverSQLite, rows, domain.DefaultOnTimeLabels); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.LoadDeliveries(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("loaded %d rows, want %d", len(got), len(rows))
	}
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], rows[i])
		}
	}

	// Seeding again replaces the table instead of appending.
	if err := SeedDeliveries(ctx, repo.DB, db.DriverSQLite, rows[:1], domain.DefaultOnTimeLabels); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	got, err = repo.LoadDeliveries(ctx)
	if err != nil {
		t.Fatalf("load after reseed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("loaded %d rows after reseed, want 1", len(got))
	}
}

func TestLoadDeliveriesRejectsUnknownLabel(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	_, err := repo.DB.ExecContext(ctx,
		`INSERT INTO deliveries (delivery_id, vehicle_type, delivery_cost, delivery_time_min, on_time) VALUES (1, 'Van', 1, 2, 'Late');`)
	if err != nil {
		t.Fatalf("insert fixture: %v", err)
	}

	_, err = repo.LoadDeliveries(ctx)
	if !errors.Is(err, domain.ErrInvalidLabel) {
		t.Fatalf("expected ErrInvalidLabel, got %v", err)
	}
}

func TestSeedDeliveriesRejectsInvalidRow(t *testing.T) {
	repo := openTestDB(t)

	err := SeedDeliveries(context.Background(), repo.DB, db.DriverSQLite,
		[]domain.Delivery{{VehicleType: "", DeliveryCost: 1}}, domain.DefaultOnTimeLabels)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestInsertDeliveryQueryPlaceholders(t *testing.T) {
	if q := insertDeliveryQuery(db.DriverSQLite); !strings.Contains(q, "VALUES (?, ?, ?, ?, ?)") {
		t.Errorf("sqlite query = %s", q)
	}
	if q := insertDeliveryQuery(db.DriverPostgres); !strings.Contains(q, "VALUES ($1, $2, $3, $4, $5)") {
		t.Errorf("postgres query = %s", q)
	}
}

func TestNilDB(t *testing.T) {
	if err := InitSchema(context.Background(), nil); err == nil {
		t.Error("InitSchema(nil) should fail")
	}
	if _, err := (&SQLDeliveryRepository{}).LoadDeliveries(context.Background()); err == nil {
		t.Error("LoadDeliveries with nil DB should fail")
	}
}
