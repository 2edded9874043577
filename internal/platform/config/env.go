package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// MaxHistogramBins caps HISTOGRAM_BINS so the time chart stays readable.
const MaxHistogramBins = 200

// Config is the dashboard server configuration. Every field has a default so
// the server starts with no environment at all.
type Config struct {
	Port          string `env:"PORT"           envDefault:"8080"`
	DataSource    string `env:"DATA_SOURCE"    envDefault:"csv"`
	DataPath      string `env:"DATA_PATH"      envDefault:"data/synthetic_delivery_data.csv"`
	DatabaseURL   string `env:"DATABASE_URL"`
	HistogramBins int    `env:"HISTOGRAM_BINS" envDefault:"10"`
	OnTimeLabel   string `env:"ON_TIME_LABEL"  envDefault:"Yes"`
	LateLabel     string `env:"LATE_LABEL"     envDefault:"No"`
	LogLevel      string `env:"LOG_LEVEL"      envDefault:"INFO"`
	OTelEndpoint  string `env:"OTEL_ENDPOINT"`
	ServiceName   string `env:"SERVICE_NAME"   envDefault:"delivery-dashboard"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.HistogramBins <= 0 || cfg.HistogramBins > MaxHistogramBins {
		return Config{}, fmt.Errorf("load config: HISTOGRAM_BINS must be between 1 and %d, got %d", MaxHistogramBins, cfg.HistogramBins)
	}
	if cfg.OnTimeLabel == cfg.LateLabel {
		return Config{}, fmt.Errorf("load config: ON_TIME_LABEL and LATE_LABEL must differ (both %q)", cfg.OnTimeLabel)
	}
	return cfg, nil
}
