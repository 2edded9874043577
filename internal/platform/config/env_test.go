package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DataSource != "csv" {
		t.Errorf("data source = %q, want csv", cfg.DataSource)
	}
	if cfg.HistogramBins != 10 {
		t.Errorf("bins = %d, want 10", cfg.HistogramBins)
	}
	if cfg.OnTimeLabel != "Yes" || cfg.LateLabel != "No" {
		t.Errorf("labels = %q/%q, want Yes/No", cfg.OnTimeLabel, cfg.LateLabel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "25")
	t.Setenv("DATA_SOURCE", "sqlite")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistogramBins != 25 {
		t.Errorf("bins = %d, want 25", cfg.HistogramBins)
	}
	if cfg.DataSource != "sqlite" {
		t.Errorf("data source = %q, want sqlite", cfg.DataSource)
	}
}

func TestLoadRejectsBadBins(t *testing.T) {
	for _, bins := range []string{"0", "-3", "201", "700"} {
		t.Run(bins, func(t *testing.T) {
			t.Setenv("HISTOGRAM_BINS", bins)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s bins", bins)
			}
		})
	}
}

func TestLoadAcceptsMaxBins(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistogramBins != MaxHistogramBins {
		t.Fatalf("bins = %d, want %d", cfg.HistogramBins, MaxHistogramBins)
	}
}

func TestLoadRejectsEqualLabels(t *testing.T) {
	t.Setenv("ON_TIME_LABEL", "Y")
	t.Setenv("LATE_LABEL", "Y")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for equal labels")
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("HISTOGRAM_BINS", "not-an-int")

	var cfg Config
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
