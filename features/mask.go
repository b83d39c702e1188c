// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package features implements rasterization of linear geographic features
// (trails, roads, rivers, cliffs) into boolean masks aligned to a terrain
// grid, for use as movement attractors and repulsors.
package features

import (
	"math"

	"github.com/sarsim/sarsim/terrain"
)

// Class identifies a linear feature class.
type Class int

// Valid feature classes, ordered by increasing buffer radius.
const (
	Cliffs Class = iota
	Trails
	Roads
	Rivers
)

// BufferMeters returns the default corridor half-width, in meters, used to
// rasterize a class of linear feature.
func (c Class) BufferMeters() float64 {
	switch c {
	case Cliffs:
		return 10
	case Trails:
		return 10
	case Roads:
		return 15
	case Rivers:
		return 20
	default:
		return 10
	}
}

// Point is a geographic point in decimal degrees.
type Point struct {
	Lat, Lon float64
}

// Line is a sequence of points describing one linear feature.
type Line []Point

// Set holds the raw linestrings fetched from a feature provider, grouped by
// class.
type Set struct {
	Trails []Line
	Roads  []Line
	Rivers []Line
	Cliffs []Line
}

// Masks holds one boolean raster per feature class, with the same shape as
// the terrain grid that produced it. Masks are immutable after construction.
type Masks struct {
	rows, cols int
	trails     []bool
	roads      []bool
	rivers     []bool
	cliffs     []bool
}

// Rasterize builds feature Masks for the given terrain grid from a Set of
// linestrings. An empty Set (or a class with no lines) produces an
// all-false mask for that class.
func Rasterize(g *terrain.Grid, set Set) *Masks {
	rows, cols := g.Rows(), g.Cols()
	m := &Masks{
		rows:   rows,
		cols:   cols,
		trails: make([]bool, rows*cols),
		roads:  make([]bool, rows*cols),
		rivers: make([]bool, rows*cols),
		cliffs: make([]bool, rows*cols),
	}

	rasterizeClass(g, set.Trails, Trails.BufferMeters(), m.trails)
	rasterizeClass(g, set.Roads, Roads.BufferMeters(), m.roads)
	rasterizeClass(g, set.Rivers, Rivers.BufferMeters(), m.rivers)
	rasterizeClass(g, set.Cliffs, Cliffs.BufferMeters(), m.cliffs)

	return m
}

func rasterizeClass(g *terrain.Grid, lines []Line, bufferM float64, mask []bool) {
	if len(lines) == 0 {
		return
	}

	b := g.Bounds()
	rows, cols := g.Rows(), g.Cols()
	latPerRow := (b.North - b.South) / float64(rows)
	lonPerCol := (b.East - b.West) / float64(cols)

	for row := 0; row < rows; row++ {
		lat := b.North - (float64(row)+0.5)*latPerRow
		for col := 0; col < cols; col++ {
			lon := b.West + (float64(col)+0.5)*lonPerCol
			idx := row*cols + col
			if mask[idx] {
				continue
			}
			if withinBuffer(lat, lon, lines, bufferM) {
				mask[idx] = true
			}
		}
	}
}

// withinBuffer reports whether (lat, lon) lies within bufferM meters of any
// segment of any line.
func withinBuffer(lat, lon float64, lines []Line, bufferM float64) bool {
	for _, line := range lines {
		for i := 0; i+1 < len(line); i++ {
			d := pointToSegmentMeters(lat, lon, line[i], line[i+1])
			if d <= bufferM {
				return true
			}
		}
	}
	return false
}

// pointToSegmentMeters returns the approximate planar distance, in meters,
// from (lat, lon) to the segment a-b. Coordinates are projected to a local
// equirectangular plane centered on the point, which is accurate enough for
// buffers on the order of tens of meters.
func pointToSegmentMeters(lat, lon float64, a, b Point) float64 {
	cosLat := math.Cos(lat * math.Pi / 180)
	toXY := func(p Point) (x, y float64) {
		x = (p.Lon - lon) * 111320 * cosLat
		y = (p.Lat - lat) * 111320
		return x, y
	}

	px, py := 0.0, 0.0
	ax, ay := toXY(a)
	bx, by := toXY(b)

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-ax, py-ay)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	cx := ax + t*dx
	cy := ay + t*dy
	return math.Hypot(px-cx, py-cy)
}

// At reports whether each feature class is present at the given row/col.
func (m *Masks) At(row, col int) (trail, road, river, cliff bool) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return false, false, false, false
	}
	idx := row*m.cols + col
	return m.trails[idx], m.roads[idx], m.rivers[idx], m.cliffs[idx]
}

// IsTrailOrRoad reports whether the given cell is part of a trail or road.
func (m *Masks) IsTrailOrRoad(row, col int) bool {
	trail, road, _, _ := m.At(row, col)
	return trail || road
}

// IsRiver reports whether the given cell is part of a river corridor.
func (m *Masks) IsRiver(row, col int) bool {
	_, _, river, _ := m.At(row, col)
	return river
}

// IsCliff reports whether the given cell is part of a cliff corridor.
func (m *Masks) IsCliff(row, col int) bool {
	_, _, _, cliff := m.At(row, col)
	return cliff
}
