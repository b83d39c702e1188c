// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package density_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarsim/sarsim/agent"
	"github.com/sarsim/sarsim/density"
	"github.com/sarsim/sarsim/terrain"
)

func testGrid() *terrain.Grid {
	rows, cols := 50, 50
	elev := make([]float64, rows*cols)
	bounds := terrain.Bounds{West: -110.05, South: 44.95, East: -109.95, North: 45.05}
	return terrain.NewGrid(elev, rows, cols, bounds, 30)
}

func TestReduceAllInactiveYieldsAllZeroGrid(t *testing.T) {
	g := testGrid()
	agents := agent.Seed(10, 45.0, -110.0, nil, 1)
	for i := range agents {
		agents[i].IsActive = false
	}

	result := density.Reduce(agents, g, 20)
	require.Len(t, result.Grid, 400)
	for _, v := range result.Grid {
		assert.Equal(t, 0.0, v)
	}
	assert.Empty(t, result.Heatmap)
}

func TestReduceNormalizesToUnitMax(t *testing.T) {
	g := testGrid()
	agents := agent.Seed(500, 45.0, -110.0, nil, 3)

	result := density.Reduce(agents, g, 20)
	var max float64
	for _, v := range result.Grid {
		if v > max {
			max = v
		}
	}
	assert.InDelta(t, 1.0, max, 1e-9)
}

func TestReduceHeatmapPointsWithinBounds(t *testing.T) {
	g := testGrid()
	agents := agent.Seed(500, 45.0, -110.0, nil, 5)

	result := density.Reduce(agents, g, 20)
	b := g.Bounds()
	for _, p := range result.Heatmap {
		assert.GreaterOrEqual(t, p.Lat, b.South)
		assert.LessOrEqual(t, p.Lat, b.North)
		assert.GreaterOrEqual(t, p.Lon, b.West)
		assert.LessOrEqual(t, p.Lon, b.East)
		assert.Greater(t, p.Value, 0.0001)
	}
}

func TestReduceGridSizeMatchesRequest(t *testing.T) {
	g := testGrid()
	agents := agent.Seed(50, 45.0, -110.0, nil, 9)

	result := density.Reduce(agents, g, 35)
	assert.Equal(t, 35, result.GridSize)
	assert.Len(t, result.Grid, 35*35)
}
