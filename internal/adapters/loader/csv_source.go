package loader

import (
	"context"
	"delivery-dashboard-service/internal/domain"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Column names every delivery table must provide.
const (
	ColVehicleType     = "vehicle_type"
	ColDeliveryCost    = "delivery_cost"
	ColDeliveryTimeMin = "delivery_time_min"
	ColOnTime          = "on_time"
)

var requiredColumns = []string{ColVehicleType, ColDeliveryCost, ColDeliveryTimeMin, ColOnTime}

// CSV file implementation of the DeliverySource port.
type CSVDeliverySource struct {
	Path   string
	Labels domain.OnTimeLabels
}

func NewCSVDeliverySource(path string, labels domain.OnTimeLabels) *CSVDeliverySource {
	return &CSVDeliverySource{Path: path, Labels: labels}
}

// Read and validate every row of the CSV file.
func (s *CSVDeliverySource) LoadDeliveries(ctx context.Context) ([]domain.Delivery, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: open %q: %w", s.Path, err)
	}
	defer f.Close()

	rows, columns, err := ParseDeliveriesCSV(f, s.Labels)
	if err != nil {
		return nil, fmt.Errorf("load deliveries: %q: %w", s.Path, err)
	}

	slog.InfoContext(ctx, "dataset loaded", "path", s.Path, "columns", strings.Join(columns, ","), "records", len(rows))
	return rows, nil
}

// ParseDeliveriesCSV reads a delivery table with a header row. Header names are
// trimmed and snake-cased; extra columns are ignored. It also returns the
// normalized header so callers can report the columns they saw.
func ParseDeliveriesCSV(r io.Reader, labels domain.OnTimeLabels) ([]domain.Delivery, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("parse csv: empty file: %w", domain.ErrMissingColumn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: read header: %w", err)
	}

	columns := make([]string, len(headers))
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		key := toSnakeCase(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		columns[i] = key
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, columns, fmt.Errorf("parse csv: column %q: %w", col, domain.ErrMissingColumn)
		}
	}

	out := make([]domain.Delivery, 0, 256)
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, columns, fmt.Errorf("parse csv: %w", err)
		}

		d, err := parseRow(rec, index, labels)
		if err != nil {
			return nil, columns, fmt.Errorf("parse csv: line %d: %w", line, err)
		}
		out = append(out, d)
	}

	return out, columns, nil
}

func parseRow(rec []string, index map[string]int, labels domain.OnTimeLabels) (domain.Delivery, error) {
	field := func(col string) string { return strings.TrimSpace(rec[index[col]]) }

	cost, err := strconv.ParseFloat(field(ColDeliveryCost), 64)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("%s: %w", ColDeliveryCost, err)
	}

	mins, err := strconv.ParseFloat(field(ColDeliveryTimeMin), 64)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("%s: %w", ColDeliveryTimeMin, err)
	}

	onTime, err := ParseOnTime(field(ColOnTime), labels)
	if err != nil {
		return domain.Delivery{}, err
	}

	d := domain.Delivery{
		VehicleType:     field(ColVehicleType),
		DeliveryCost:    cost,
		DeliveryTimeMin: mins,
		OnTime:          onTime,
	}
	if err := d.Validate(); err != nil {
		return domain.Delivery{}, err
	}
	return d, nil
}

// ParseOnTime maps a raw on_time cell to a flag, rejecting anything but the two labels.
func ParseOnTime(raw string, labels domain.OnTimeLabels) (bool, error) {
	v, ok := labels.Parse(raw)
	if !ok {
		return false, fmt.Errorf("%s: %q is neither %q nor %q: %w", ColOnTime, raw, labels.OnTime, labels.Late, domain.ErrInvalidLabel)
	}
	return v, nil
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
