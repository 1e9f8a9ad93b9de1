package grid

import (
	"math"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

// Option configures a Grid.
type Option func(*Grid)

// WithCoverage selects how many cells each label contributes.
// The default is CoverageCorners. New rejects values other than
// CoverageCorners, CoverageFull and the empty string.
func WithCoverage(c Coverage) Option {
	return func(g *Grid) {
		g.coverage = c
	}
}

// Grid accumulates street entries for the labels placed on one page.
// It is not safe for concurrent use.
type Grid struct {
	page     models.BoundingBox
	config   models.GridConfig
	coverage Coverage
	entries  []models.StreetEntry
	drained  bool
}

// New validates page and config and returns an empty grid.
// Cell dimensions must be positive; page dimensions must be non-negative.
func New(page models.BoundingBox, config models.GridConfig, opts ...Option) (*Grid, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	if err := validatePage(page.Width, config.CellWidth, "page_width"); err != nil {
		return nil, err
	}
	if err := validatePage(page.Height, config.CellHeight, "page_height"); err != nil {
		return nil, err
	}

	g := &Grid{
		page:     page,
		config:   config,
		coverage: CoverageCorners,
	}
	for _, opt := range opts {
		opt(g)
	}

	coverage, ok := ParseCoverage(string(g.coverage))
	if !ok {
		return nil, &ConfigError{Field: "coverage", Value: string(g.coverage), Reason: `must be "corners" or "full"`}
	}
	g.coverage = coverage
	return g, nil
}

func validatePage(length, cell models.Millimeter, field string) error {
	if !length.Valid() {
		return &ConfigError{Field: field, Value: float64(length), Reason: "must be non-negative and finite"}
	}
	if !(math.Ceil(float64(length)/float64(cell)) < maxIndex) {
		return &ConfigError{Field: field, Value: float64(length), Reason: "spans more cells than the grid can address"}
	}
	return nil
}

// Insert assigns rect to grid cells and appends one entry per cell.
// Nothing is appended when rect has invalid geometry.
func (g *Grid) Insert(rect models.LabelRect) error {
	if g.drained {
		return ErrDrained
	}

	positions, err := assignWith(g.coverage, rect, g.config)
	if err != nil {
		return err
	}
	for _, pos := range positions {
		g.entries = append(g.entries, models.StreetEntry{
			StreetName: rect.StreetName,
			Position:   pos,
		})
	}
	return nil
}

// InsertAll inserts rects in order and stops at the first error.
func (g *Grid) InsertAll(rects []models.LabelRect) error {
	for _, rect := range rects {
		if err := g.Insert(rect); err != nil {
			return err
		}
	}
	return nil
}

// Drain returns the accumulated entries in insertion order. The grid
// gives up ownership: later inserts fail with ErrDrained.
func (g *Grid) Drain() []models.StreetEntry {
	entries := g.entries
	g.entries = nil
	g.drained = true
	return entries
}

// Len returns the number of accumulated entries.
func (g *Grid) Len() int {
	return len(g.entries)
}

// Columns returns the number of columns needed to cover the page width.
func (g *Grid) Columns() int {
	return int(math.Ceil(float64(g.page.Width) / float64(g.config.CellWidth)))
}

// Rows returns the number of rows needed to cover the page height.
func (g *Grid) Rows() int {
	return int(math.Ceil(float64(g.page.Height) / float64(g.config.CellHeight)))
}

// Config returns the cell dimensions of the grid.
func (g *Grid) Config() models.GridConfig {
	return g.config
}
