package models

import (
	"slices"
	"sort"
)

// DeduplicatedRoads maps street names to a sorted, duplicate-free set of
// grid positions. The zero value is not usable; call NewDeduplicatedRoads.
type DeduplicatedRoads struct {
	roads map[string][]GridPosition
}

// NewDeduplicatedRoads returns an empty collection.
func NewDeduplicatedRoads() *DeduplicatedRoads {
	return &DeduplicatedRoads{roads: make(map[string][]GridPosition)}
}

// Add inserts pos into the set of name. It reports whether pos was new.
func (d *DeduplicatedRoads) Add(name string, pos GridPosition) bool {
	set := d.roads[name]
	i, found := slices.BinarySearchFunc(set, pos, GridPosition.Compare)
	if found {
		return false
	}
	d.roads[name] = slices.Insert(set, i, pos)
	return true
}

// Streets returns the street names in lexicographic order.
func (d *DeduplicatedRoads) Streets() []string {
	names := make([]string, 0, len(d.roads))
	for name := range d.roads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Positions returns a copy of the sorted positions of name.
func (d *DeduplicatedRoads) Positions(name string) []GridPosition {
	return slices.Clone(d.roads[name])
}

// Len returns the number of distinct streets.
func (d *DeduplicatedRoads) Len() int {
	return len(d.roads)
}

// Equal reports whether d and o hold the same streets and positions.
func (d *DeduplicatedRoads) Equal(o *DeduplicatedRoads) bool {
	if len(d.roads) != len(o.roads) {
		return false
	}
	for name, set := range d.roads {
		other, ok := o.roads[name]
		if !ok || !slices.Equal(set, other) {
			return false
		}
	}
	return true
}

// PositionKind distinguishes the two compact forms of a street reference.
type PositionKind string

const (
	// SingleCellKind means the street lies within one cell, e.g. "A6".
	SingleCellKind PositionKind = "single"
	// CellPairKind means the street crosses exactly two cells, e.g. "A9-B2".
	CellPairKind PositionKind = "pair"
)

// FinalizedPosition is a compact street reference: one cell or a sorted
// pair of cells. Build it with SingleCell or CellPair.
type FinalizedPosition struct {
	Kind  PositionKind   `json:"kind"`
	Cells []GridPosition `json:"cells"`
}

// SingleCell returns the reference for a street inside one cell.
func SingleCell(p GridPosition) FinalizedPosition {
	return FinalizedPosition{Kind: SingleCellKind, Cells: []GridPosition{p}}
}

// CellPair returns the reference for a street spanning two cells.
// The positions are stored in sorted order.
func CellPair(a, b GridPosition) FinalizedPosition {
	if b.Less(a) {
		a, b = b, a
	}
	return FinalizedPosition{Kind: CellPairKind, Cells: []GridPosition{a, b}}
}

// String renders "A9" for a single cell and "A9-I5" for a pair.
func (f FinalizedPosition) String() string {
	switch len(f.Cells) {
	case 0:
		return ""
	case 1:
		return f.Cells[0].String()
	}
	return f.Cells[0].String() + "-" + f.Cells[1].String()
}

// ProcessedRoad is a street that can be printed with a compact reference.
type ProcessedRoad struct {
	Name     string            `json:"name"`
	Position FinalizedPosition `json:"position"`
}

// UnprocessedRoad is a street touching three or more cells. It needs
// manual cartographic review before printing.
type UnprocessedRoad struct {
	Name      string         `json:"name"`
	Positions []GridPosition `json:"positions"`
}

// StreetIndex is the result of one index build.
type StreetIndex struct {
	// ID identifies the build.
	ID string `json:"id"`
	// Columns is the number of grid columns covering the page.
	Columns int `json:"columns"`
	// Rows is the number of grid rows covering the page.
	Rows int `json:"rows"`
	// Processed holds streets with one or two references.
	Processed []ProcessedRoad `json:"processed"`
	// Unprocessed holds streets needing manual review.
	Unprocessed []UnprocessedRoad `json:"unprocessed"`
}
