package models

import (
	"strconv"
	"strings"
)

// GridPosition identifies a grid cell such as "A9" or "B4".
type GridPosition struct {
	// Column is the letter label of the column.
	Column string `json:"column"`
	// Row is the row number (1-based).
	Row int `json:"row"`
}

// String renders the position as "<column><row>".
func (p GridPosition) String() string {
	return p.Column + strconv.Itoa(p.Row)
}

// Compare orders positions by column then row. Shorter column labels sort
// first ("Z" < "AA"), labels of equal length compare lexicographically.
// It returns -1, 0 or +1.
func (p GridPosition) Compare(o GridPosition) int {
	if c := CompareColumns(p.Column, o.Column); c != 0 {
		return c
	}
	switch {
	case p.Row < o.Row:
		return -1
	case p.Row > o.Row:
		return 1
	}
	return 0
}

// Less reports whether p sorts before o.
func (p GridPosition) Less(o GridPosition) bool {
	return p.Compare(o) < 0
}

// CompareColumns compares two column labels, shorter first.
func CompareColumns(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
