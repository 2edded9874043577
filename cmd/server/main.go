package main

import (
	"context"
	"delivery-dashboard-service/internal/adapters/loader"
	"delivery-dashboard-service/internal/adapters/repositories"
	"delivery-dashboard-service/internal/api"
	"delivery-dashboard-service/internal/domain"
	"delivery-dashboard-service/internal/platform/config"
	"delivery-dashboard-service/internal/platform/db"
	"delivery-dashboard-service/internal/platform/logging"
	"delivery-dashboard-service/internal/platform/metrics"
	"delivery-dashboard-service/internal/platform/otel"
	"delivery-dashboard-service/internal/ports"
	"delivery-dashboard-service/internal/services"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSQLitePath = "data/deliveries.db"

// main is the application composition root.
// It loads the dataset once through the configured row source, then serves the dashboard.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.LogLevel, cfg.ServiceName))
	if envErr != nil {
		slog.Info("no .env file found (using environment variables)")
	}

	ctx := context.Background()

	shutdown, err := otel.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		config.Exitf("otel: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("otel shutdown failed", "err", err)
		}
	}()

	labels := domain.OnTimeLabels{OnTime: cfg.OnTimeLabel, Late: cfg.LateLabel}

	source, closeSource, err := openSource(cfg, labels)
	if err != nil {
		config.Exitf("data source: %v", err)
	}

	rows, err := source.LoadDeliveries(ctx)
	closeSource()
	if err != nil {
		config.Exitf("load dataset: %v", err)
	}

	dataset := domain.NewDataset(rows, labels)
	metrics.DatasetRecords.Set(float64(dataset.Len()))

	binder := services.NewViewBinder(dataset, cfg.HistogramBins)
	router := api.NewRouter(binder)

	slog.Info("server listening", "addr", ":"+cfg.Port, "source", cfg.DataSource, "records", dataset.Len())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		config.Exitf("server: %v", err)
	}
}

// openSource picks the row source named by DATA_SOURCE. The returned close
// function releases any database handle once the dataset is loaded.
func openSource(cfg config.Config, labels domain.OnTimeLabels) (ports.DeliverySource, func(), error) {
	noop := func() {}

	driver, location, err := resolveSource(cfg)
	if err != nil {
		return nil, noop, err
	}
	if driver == "" {
		return loader.NewCSVDeliverySource(location, labels), noop, nil
	}
	return openSQLSource(driver, location, labels)
}

// resolveSource maps DATA_SOURCE to a database driver and DSN. The csv source
// has no driver and reads from DATA_PATH.
func resolveSource(cfg config.Config) (driver, location string, err error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DataSource)) {
	case "csv":
		return "", cfg.DataPath, nil

	case "sqlite":
		dsn := cfg.DatabaseURL
		if strings.TrimSpace(dsn) == "" {
			dsn = defaultSQLitePath
		}
		return db.DriverSQLite, dsn, nil

	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return "", "", fmt.Errorf("open source: DATABASE_URL is required for postgres")
		}
		return db.DriverPostgres, cfg.DatabaseURL, nil

	default:
		return "", "", fmt.Errorf("open source: %q: %w", cfg.DataSource, domain.ErrUnsupportedSource)
	}
}

func openSQLSource(driver, dsn string, labels domain.OnTimeLabels) (ports.DeliverySource, func(), error) {
	conn, err := db.Open(driver, dsn)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open source: %w", err)
	}

	closeDB := func() {
		if err := conn.Close(); err != nil {
			slog.Warn("close database failed", "driver", driver, "err", err)
		}
	}
	return repositories.NewSQLDeliveryRepository(conn, labels), closeDB, nil
}
