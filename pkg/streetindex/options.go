// Package streetindex builds printed street indexes from label layouts.
package streetindex

import (
	"github.com/ukaji3/streetindex-go/pkg/streetindex/grid"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

// Source selects where labels are read from in an xlsx input.
type Source string

const (
	// SourceCells reads labels from sheet rows (name, x, y, width, height).
	SourceCells Source = "cells"
	// SourceShapes reads labels from text boxes drawn on the sheet.
	SourceShapes Source = "shapes"
)

// Options configures index construction.
type Options struct {
	// Page is the extent of the printed page.
	Page models.BoundingBox
	// Grid holds the reference grid cell dimensions.
	Grid models.GridConfig
	// Coverage selects corner-only or full cell coverage per label.
	Coverage grid.Coverage
	// Sheet names the xlsx sheet to read. Empty selects the first sheet.
	Sheet string
	// Source selects rows or text boxes for xlsx input.
	Source Source
}

// DefaultOptions returns default build options: a 200x200 mm page with
// 20 mm cells and corner coverage.
func DefaultOptions() Options {
	return Options{
		Page:     models.BoundingBox{Width: 200, Height: 200},
		Grid:     models.GridConfig{CellWidth: 20, CellHeight: 20},
		Coverage: grid.CoverageCorners,
		Source:   SourceCells,
	}
}
