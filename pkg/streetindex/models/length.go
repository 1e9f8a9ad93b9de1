// Package models defines data structures for street index construction.
package models

import "math"

// Millimeter is a length on the printed page.
type Millimeter float64

// Valid reports whether m is finite and non-negative.
func (m Millimeter) Valid() bool {
	f := float64(m)
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}

// BoundingBox represents the extent of a page or a label.
type BoundingBox struct {
	// Width is the horizontal extent in millimetres.
	Width Millimeter `json:"width" yaml:"width" toml:"width"`
	// Height is the vertical extent in millimetres.
	Height Millimeter `json:"height" yaml:"height" toml:"height"`
}

// GridConfig holds the dimensions of one reference grid cell.
type GridConfig struct {
	// CellWidth is the column width in millimetres (must be > 0).
	CellWidth Millimeter `json:"cell_width" yaml:"cell_width" toml:"cell_width"`
	// CellHeight is the row height in millimetres (must be > 0).
	CellHeight Millimeter `json:"cell_height" yaml:"cell_height" toml:"cell_height"`
}
