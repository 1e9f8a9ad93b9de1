package models

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridPosition_String(t *testing.T) {
	assert.Equal(t, "A9", GridPosition{Column: "A", Row: 9}.String())
	assert.Equal(t, "HR12", GridPosition{Column: "HR", Row: 12}.String())
}

func TestGridPosition_Order(t *testing.T) {
	positions := []GridPosition{
		{Column: "AA", Row: 1},
		{Column: "B", Row: 2},
		{Column: "Z", Row: 1},
		{Column: "B", Row: 1},
		{Column: "AB", Row: 3},
		{Column: "A", Row: 10},
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })

	assert.Equal(t, []GridPosition{
		{Column: "A", Row: 10},
		{Column: "B", Row: 1},
		{Column: "B", Row: 2},
		{Column: "Z", Row: 1},
		{Column: "AA", Row: 1},
		{Column: "AB", Row: 3},
	}, positions)

	p := GridPosition{Column: "C", Row: 4}
	assert.Equal(t, 0, p.Compare(GridPosition{Column: "C", Row: 4}))
	assert.False(t, p.Less(p))
}

func TestCompareColumns(t *testing.T) {
	assert.Equal(t, -1, CompareColumns("Z", "AA"))
	assert.Equal(t, 1, CompareColumns("AA", "Z"))
	assert.Equal(t, -1, CompareColumns("AB", "BA"))
	assert.Equal(t, 0, CompareColumns("HR", "HR"))
}

func TestFinalizedPosition(t *testing.T) {
	a := GridPosition{Column: "A", Row: 9}
	b := GridPosition{Column: "I", Row: 5}

	assert.Equal(t, "A9", SingleCell(a).String())
	assert.Equal(t, "A9-I5", CellPair(a, b).String())
	assert.Equal(t, "A9-I5", CellPair(b, a).String())
	assert.Equal(t, CellPairKind, CellPair(b, a).Kind)
	assert.Equal(t, "", FinalizedPosition{}.String())
}

func TestDeduplicatedRoads_Add(t *testing.T) {
	d := NewDeduplicatedRoads()
	assert.True(t, d.Add("Mill Lane", GridPosition{Column: "B", Row: 2}))
	assert.True(t, d.Add("Mill Lane", GridPosition{Column: "A", Row: 2}))
	assert.False(t, d.Add("Mill Lane", GridPosition{Column: "B", Row: 2}))

	got := d.Positions("Mill Lane")
	assert.Equal(t, []GridPosition{{Column: "A", Row: 2}, {Column: "B", Row: 2}}, got)

	got[0].Row = 99
	assert.Equal(t, 2, d.Positions("Mill Lane")[0].Row)
	assert.Nil(t, d.Positions("Unknown"))
}

func TestMillimeter_Valid(t *testing.T) {
	assert.True(t, Millimeter(0).Valid())
	assert.True(t, Millimeter(12.5).Valid())
	assert.False(t, Millimeter(-0.1).Valid())
}
