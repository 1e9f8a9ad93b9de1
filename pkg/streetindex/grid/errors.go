package grid

import (
	"errors"
	"fmt"
)

// ErrDrained indicates an insert into a grid whose entries were already drained.
var ErrDrained = errors.New("grid: entries already drained")

// ErrInvalidColumn indicates a column label that contains characters outside A-Z.
var ErrInvalidColumn = errors.New("grid: invalid column label")

// ConfigError represents an invalid grid or page configuration.
type ConfigError struct {
	Field  string // "cell_width", "cell_height", "page_width", "page_height", "coverage"
	Value  any
	Reason string // empty means "must be positive and finite"
}

func (e *ConfigError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive and finite"
	}
	return fmt.Sprintf("invalid grid config: %s %s, got %v", e.Field, reason, e.Value)
}

// GeometryError represents a label rectangle with negative, non-finite or
// out-of-range geometry.
type GeometryError struct {
	StreetName string
	Field      string // "x", "y", "width", "height", "x+width", "y+height"
	Value      float64
	Reason     string // empty means "must be non-negative and finite"
}

func (e *GeometryError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be non-negative and finite"
	}
	return fmt.Sprintf("invalid geometry for %q: %s %s, got %v", e.StreetName, e.Field, reason, e.Value)
}

// CellLimitError reports a label whose full coverage would exceed Limit cells.
type CellLimitError struct {
	StreetName string
	Columns    int
	Rows       int
	Limit      int
}

func (e *CellLimitError) Error() string {
	return fmt.Sprintf("label %q spans %d columns by %d rows, more than %d cells", e.StreetName, e.Columns, e.Rows, e.Limit)
}
