// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package terrain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarsim/sarsim/terrain"
)

func flatGrid(rows, cols int, value float64) *terrain.Grid {
	elev := make([]float64, rows*cols)
	for i := range elev {
		elev[i] = value
	}
	return terrain.NewGrid(elev, rows, cols, terrain.Bounds{
		West: -1, South: -1, East: 1, North: 1,
	}, 100)
}

func TestToIndexCorners(t *testing.T) {
	g := flatGrid(10, 10, 100)
	row, col := g.ToIndex(1, -1)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	row, col = g.ToIndex(-0.999999, 0.999999)
	if row > 9 {
		row = 9
	}
	if col > 9 {
		col = 9
	}
	assert.Equal(t, 9, row)
	assert.Equal(t, 9, col)
}

func TestElevationAtCellCenterMatchesStoredValue(t *testing.T) {
	rows, cols := 4, 4
	elev := make([]float64, rows*cols)
	for i := range elev {
		elev[i] = float64(i)
	}
	g := terrain.NewGrid(elev, rows, cols, terrain.Bounds{West: 0, South: 0, East: 4, North: 4}, 1000)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			latPerRow := 4.0 / float64(rows)
			lonPerCol := 4.0 / float64(cols)
			lat := 4 - (float64(row)+0.5)*latPerRow
			lon := 0 + (float64(col)+0.5)*lonPerCol
			v, ok := g.Elevation(lat, lon)
			require.True(t, ok)
			assert.InDelta(t, elev[row*cols+col], v, 1e-9)
		}
	}
}

func TestElevationOutsideBoundsIsNone(t *testing.T) {
	g := flatGrid(5, 5, 10)
	_, ok := g.Elevation(100, 100)
	assert.False(t, ok)
}

func TestElevationNoDataCorner(t *testing.T) {
	rows, cols := 2, 2
	elev := []float64{terrain.NoData, 10, 10, 10}
	g := terrain.NewGrid(elev, rows, cols, terrain.Bounds{West: 0, South: 0, East: 2, North: 2}, 1000)
	_, ok := g.Elevation(1, 1)
	assert.False(t, ok)
}

func TestSlopeZeroForCoincidentPoints(t *testing.T) {
	g := flatGrid(4, 4, 100)
	s, ok := g.Slope(0, 0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, s)
}

func TestSlopeFlatTerrainIsZero(t *testing.T) {
	g := flatGrid(10, 10, 500)
	s, ok := g.Slope(0.1, 0.1, 0.2, 0.2)
	require.True(t, ok)
	assert.InDelta(t, 0, s, 1e-9)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Roughly 1 degree of latitude is about 111.19 km
	d := terrain.HaversineMeters(0, 0, 1, 0)
	assert.InDelta(t, 111195, d, 500)
}
