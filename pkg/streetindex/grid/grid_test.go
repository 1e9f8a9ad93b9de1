package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/streetindex-go/pkg/streetindex/models"
)

var page200 = models.BoundingBox{Width: 200, Height: 200}

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name  string
		page  models.BoundingBox
		cfg   models.GridConfig
		field string
	}{
		{"ZeroCellWidth", page200, models.GridConfig{CellWidth: 0, CellHeight: 20}, "cell_width"},
		{"NegativeCellHeight", page200, models.GridConfig{CellWidth: 20, CellHeight: -20}, "cell_height"},
		{"NegativePageWidth", models.BoundingBox{Width: -1, Height: 10}, cells20, "page_width"},
		{"NegativePageHeight", models.BoundingBox{Width: 10, Height: -1}, cells20, "page_height"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.page, tc.cfg)
			assert.Nil(t, g)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}

func TestGrid_InsertAndDrain(t *testing.T) {
	g, err := New(page200, cells20)
	require.NoError(t, err)

	require.NoError(t, g.Insert(models.LabelRect{
		StreetName: "Canterbury Road",
		XFromLeft:  30, YFromTop: 30, Width: 50, Height: 8,
	}))
	require.NoError(t, g.Insert(models.LabelRect{
		StreetName: "Station Road",
		XFromLeft:  15, YFromTop: 15, Width: 10, Height: 10,
	}))
	assert.Equal(t, 6, g.Len())

	entries := g.Drain()
	require.Len(t, entries, 6)
	assert.Equal(t, models.StreetEntry{StreetName: "Canterbury Road", Position: pos("B", 2)}, entries[0])
	assert.Equal(t, models.StreetEntry{StreetName: "Canterbury Road", Position: pos("E", 2)}, entries[1])
	for _, e := range entries[2:] {
		assert.Equal(t, "Station Road", e.StreetName)
	}

	assert.Equal(t, 0, g.Len())
	assert.ErrorIs(t, g.Insert(models.LabelRect{StreetName: "Late", Width: 1, Height: 1}), ErrDrained)
}

func TestGrid_InsertInvalidGeometryAddsNothing(t *testing.T) {
	g, err := New(page200, cells20)
	require.NoError(t, err)

	err = g.Insert(models.LabelRect{StreetName: "Bad", XFromLeft: -5, Width: 1, Height: 1})
	var geoErr *GeometryError
	require.True(t, errors.As(err, &geoErr))
	assert.Equal(t, 0, g.Len())
}

func TestGrid_InsertAllStopsAtFirstError(t *testing.T) {
	g, err := New(page200, cells20)
	require.NoError(t, err)

	err = g.InsertAll([]models.LabelRect{
		{StreetName: "Mill Lane", XFromLeft: 1, YFromTop: 1, Width: 1, Height: 1},
		{StreetName: "Bad", Width: -1, Height: 1},
		{StreetName: "Never", XFromLeft: 1, YFromTop: 1, Width: 1, Height: 1},
	})
	require.Error(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestGrid_FullCoverage(t *testing.T) {
	g, err := New(page200, cells20, WithCoverage(CoverageFull))
	require.NoError(t, err)

	require.NoError(t, g.Insert(models.LabelRect{StreetName: "Ring Road", Width: 70, Height: 50}))
	assert.Equal(t, 12, g.Len())
}

func TestGrid_Extent(t *testing.T) {
	g, err := New(models.BoundingBox{Width: 210, Height: 297}, cells20)
	require.NoError(t, err)
	assert.Equal(t, 11, g.Columns())
	assert.Equal(t, 15, g.Rows())
	assert.Equal(t, cells20, g.Config())
}

func TestNew_Coverage(t *testing.T) {
	g, err := New(page200, cells20, WithCoverage(""))
	require.NoError(t, err)
	require.NoError(t, g.Insert(models.LabelRect{StreetName: "Ring Road", Width: 70, Height: 50}))
	assert.Equal(t, 4, g.Len())

	g, err = New(page200, cells20, WithCoverage("interior"))
	assert.Nil(t, g)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "coverage", cfgErr.Field)
	assert.Equal(t, "interior", cfgErr.Value)
	assert.Contains(t, err.Error(), `"corners" or "full"`)
}

func TestNew_PageBeyondAddressableGrid(t *testing.T) {
	g, err := New(models.BoundingBox{Width: 1e300, Height: 10}, cells20)
	assert.Nil(t, g)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "page_width", cfgErr.Field)
}

func TestGrid_InsertCellLimitAddsNothing(t *testing.T) {
	g, err := New(page200, models.GridConfig{CellWidth: 0.01, CellHeight: 0.01}, WithCoverage(CoverageFull))
	require.NoError(t, err)

	err = g.Insert(models.LabelRect{StreetName: "Long Road", Width: 1e6, Height: 1})
	var limitErr *CellLimitError
	require.True(t, errors.As(err, &limitErr))
	assert.Equal(t, 0, g.Len())
}
