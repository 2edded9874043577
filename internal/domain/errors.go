package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn      = errors.New("missing required column")
	ErrInvalidLabel       = errors.New("invalid on_time label")
	ErrUnsupportedSource  = errors.New("unsupported data source")
	ErrMissingRequiredVal = errors.New("missing required value")
	ErrReservedValue      = errors.New("reserved value")
)

// DataError reports a record that lacks a required field during aggregation.
type DataError struct {
	Index int
	Field string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("data error: record %d: field %q is missing", e.Index, e.Field)
}

func (e *DataError) Unwrap() error { return ErrMissingRequiredVal }
