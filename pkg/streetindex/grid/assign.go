package grid

import (
	"math"

	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

// Coverage selects which touched cells a label contributes.
type Coverage string

const (
	// CoverageCorners records only the cells under the label's corners.
	// Labels spanning more than 2x2 cells miss their interior cells.
	CoverageCorners Coverage = "corners"
	// CoverageFull records every cell in the label's column and row ranges.
	CoverageFull Coverage = "full"
)

// ParseCoverage converts a string to a Coverage. An empty string selects corners.
func ParseCoverage(s string) (Coverage, bool) {
	switch Coverage(s) {
	case "", CoverageCorners:
		return CoverageCorners, true
	case CoverageFull:
		return CoverageFull, true
	}
	return "", false
}

// MaxCells bounds the number of positions AssignFull returns for one label.
const MaxCells = 10000

// maxIndex is the exclusive upper bound for a floored cell offset. Offsets
// below it convert to int and leave room for the 1-based row shift.
const maxIndex = float64(math.MaxInt)

// cellRange holds the zero-based column and 1-based row bounds of a label.
type cellRange struct {
	minCol, maxCol int
	minRow, maxRow int
}

// Assign returns the sorted, duplicate-free grid positions touched by the
// corners of rect. The result has 1, 2 or 4 positions.
func Assign(rect models.LabelRect, cfg models.GridConfig) ([]models.GridPosition, error) {
	cr, err := rangeOf(rect, cfg)
	if err != nil {
		return nil, err
	}

	minCol, maxCol := ColumnLabel(cr.minCol), ColumnLabel(cr.maxCol)
	sameCol := cr.minCol == cr.maxCol
	sameRow := cr.minRow == cr.maxRow

	switch {
	case sameCol && sameRow:
		return []models.GridPosition{
			{Column: minCol, Row: cr.minRow},
		}, nil
	case sameCol:
		return []models.GridPosition{
			{Column: minCol, Row: cr.minRow},
			{Column: minCol, Row: cr.maxRow},
		}, nil
	case sameRow:
		return []models.GridPosition{
			{Column: minCol, Row: cr.minRow},
			{Column: maxCol, Row: cr.minRow},
		}, nil
	default:
		return []models.GridPosition{
			{Column: minCol, Row: cr.minRow},
			{Column: minCol, Row: cr.maxRow},
			{Column: maxCol, Row: cr.minRow},
			{Column: maxCol, Row: cr.maxRow},
		}, nil
	}
}

// AssignFull returns every grid position in the column and row ranges
// covered by rect, sorted by column then row.
func AssignFull(rect models.LabelRect, cfg models.GridConfig) ([]models.GridPosition, error) {
	cr, err := rangeOf(rect, cfg)
	if err != nil {
		return nil, err
	}

	cols, rows := cr.maxCol-cr.minCol+1, cr.maxRow-cr.minRow+1
	if cols > MaxCells || rows > MaxCells/cols {
		return nil, &CellLimitError{StreetName: rect.StreetName, Columns: cols, Rows: rows, Limit: MaxCells}
	}

	positions := make([]models.GridPosition, 0, cols*rows)
	for col := cr.minCol; col <= cr.maxCol; col++ {
		label := ColumnLabel(col)
		for row := cr.minRow; row <= cr.maxRow; row++ {
			positions = append(positions, models.GridPosition{Column: label, Row: row})
		}
	}
	return positions, nil
}

// assignWith dispatches on the coverage mode. c must be a parsed Coverage.
func assignWith(c Coverage, rect models.LabelRect, cfg models.GridConfig) ([]models.GridPosition, error) {
	if c == CoverageFull {
		return AssignFull(rect, cfg)
	}
	return Assign(rect, cfg)
}

func rangeOf(rect models.LabelRect, cfg models.GridConfig) (cellRange, error) {
	if err := validateConfig(cfg); err != nil {
		return cellRange{}, err
	}
	if err := validateRect(rect); err != nil {
		return cellRange{}, err
	}

	cw, ch := float64(cfg.CellWidth), float64(cfg.CellHeight)
	x, y := float64(rect.XFromLeft), float64(rect.YFromTop)
	w, h := float64(rect.Width), float64(rect.Height)

	var cr cellRange
	var err error
	if cr.minCol, err = cellIndex(rect, "x", x, cw); err != nil {
		return cellRange{}, err
	}
	if cr.maxCol, err = cellIndex(rect, "x+width", x+w, cw); err != nil {
		return cellRange{}, err
	}
	if cr.minRow, err = cellIndex(rect, "y", y, ch); err != nil {
		return cellRange{}, err
	}
	if cr.maxRow, err = cellIndex(rect, "y+height", y+h, ch); err != nil {
		return cellRange{}, err
	}
	cr.minRow++
	cr.maxRow++
	return cr, nil
}

// cellIndex returns floor(offset/size) as an int, or a GeometryError when
// the quotient does not fit.
func cellIndex(rect models.LabelRect, field string, offset, size float64) (int, error) {
	i := math.Floor(offset / size)
	if !(i < maxIndex) {
		return 0, &GeometryError{
			StreetName: rect.StreetName,
			Field:      field,
			Value:      offset,
			Reason:     "lies beyond the addressable grid",
		}
	}
	return int(i), nil
}

func validateConfig(cfg models.GridConfig) error {
	if !positive(cfg.CellWidth) {
		return &ConfigError{Field: "cell_width", Value: float64(cfg.CellWidth)}
	}
	if !positive(cfg.CellHeight) {
		return &ConfigError{Field: "cell_height", Value: float64(cfg.CellHeight)}
	}
	return nil
}

func validateRect(rect models.LabelRect) error {
	fields := []struct {
		name  string
		value models.Millimeter
	}{
		{"x", rect.XFromLeft},
		{"y", rect.YFromTop},
		{"width", rect.Width},
		{"height", rect.Height},
	}
	for _, f := range fields {
		if !f.value.Valid() {
			return &GeometryError{StreetName: rect.StreetName, Field: f.name, Value: float64(f.value)}
		}
	}
	return nil
}

func positive(m models.Millimeter) bool {
	return m.Valid() && m > 0
}
