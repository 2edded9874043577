package main

import (
	"context"
	"database/sql"
	"delivery-dashboard-service/internal/adapters/loader"
	"delivery-dashboard-service/internal/adapters/repositories"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/config"
	"delivery-dashboard-service/internal/platform/db"
	"delivery-dashboard-service/internal/platform/logging"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// importConfig is read from the same environment as the server, plus the
// database the rows are written to.
type importConfig struct {
	Target      string `env:"IMPORT_TARGET" envDefault:"sqlite"`
	DataPath    string `env:"DATA_PATH"     envDefault:"data/synthetic_delivery_data.csv"`
	DatabaseURL string `env:"DATABASE_URL"`
	OnTimeLabel string `env:"ON_TIME_LABEL" envDefault:"Yes"`
	LateLabel   string `env:"LATE_LABEL"    envDefault:"No"`
	LogLevel    string `env:"LOG_LEVEL"     envDefault:"INFO"`
}

// dbtool loads the delivery CSV and writes it to the deliveries table so the
// server can run with DATA_SOURCE=sqlite or DATA_SOURCE=postgres.
func main() {
	envErr := godotenv.Load()

	var cfg importConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("config: %v", err)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, "dbtool"))
	if envErr != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	driver, dsn, err := target(cfg)
	if err != nil {
		config.Exitf("dbtool: %v", err)
	}

	ctx := context.Background()
	labels := domain.OnTimeLabels{OnTime: cfg.OnTimeLabel, Late: cfg.LateLabel}

	rows, err := loader.NewCSVDeliverySource(cfg.DataPath, labels).LoadDeliveries(ctx)
	if err != nil {
		config.Exitf("dbtool: %v", err)
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		config.Exitf("dbtool: %v", err)
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, driver, rows, labels); err != nil {
		conn.Close()
		config.Exitf("dbtool: %v", err)
	}
}

func target(cfg importConfig) (driver, dsn string, err error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Target)) {
	case "sqlite":
		dsn = cfg.DatabaseURL
		if strings.TrimSpace(dsn) == "" {
			dsn = "data/deliveries.db"
		}
		return db.DriverSQLite, dsn, nil
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return "", "", fmt.Errorf("target: DATABASE_URL is required for postgres")
		}
		return db.DriverPostgres, cfg.DatabaseURL, nil
	default:
		return "", "", fmt.Errorf("target: %q: %w", cfg.Target, domain.ErrUnsupportedSource)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver string, rows []domain.Delivery, labels domain.OnTimeLabels) error {
	slog.Info("initializing database schema", "driver", driver)
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	slog.Info("seeding deliveries", "records", len(rows))
	if err := repositories.SeedDeliveries(ctx, conn, driver, rows, labels); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	slog.Info("seeding complete")

	return nil
}
