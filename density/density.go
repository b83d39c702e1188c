// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package density reduces an agent population's positions into a
// fixed-size probability grid and a sparse geo-referenced heatmap, both
// smoothed with a separable Gaussian kernel and normalized to a unit peak.
//
// The row/col accumulation and image-cell addressing here generalizes the
// pixel-bucketing idiom of the teacher's probmap.Image, which accumulates
// particle visits into a spherical pixelation; this package accumulates
// into a plain rectangular grid instead, since the domain here is a local
// DEM raster rather than a global isolatitude pixelation.
package density

import (
	"math"

	"github.com/sarsim/sarsim/agent"
	"github.com/sarsim/sarsim/terrain"
)

// sparseThreshold is the minimum smoothed, normalized value worth reporting
// in the heatmap.
const sparseThreshold = 1e-4

// HeatmapPoint is one emitted (lat, lon, value) sample of the heatmap.
type HeatmapPoint struct {
	Lat, Lon, Value float64
}

// Result is the output of one density reduction: a fixed-size probability
// grid plus the sparse heatmap derived from the terrain's native
// resolution.
type Result struct {
	// Grid is a GridSize x GridSize row-major probability array,
	// normalized so its maximum is 1 (or all zero if no agents were
	// active).
	Grid     []float64
	GridSize int

	Heatmap []HeatmapPoint

	// ActiveCount is the number of agents that were active when this
	// reduction ran.
	ActiveCount int
}

// Reduce accumulates the active agents in population into the output grid
// (gridSize x gridSize) and into a heatmap at the terrain's native
// resolution, smooths each with an isotropic Gaussian, and normalizes.
func Reduce(population []agent.Agent, g *terrain.Grid, gridSize int) Result {
	b := g.Bounds()
	rows, cols := g.Rows(), g.Cols()

	grid := make([]float64, gridSize*gridSize)
	heat := make([]float64, rows*cols)

	var activeCount int
	for _, a := range population {
		if !a.IsActive {
			continue
		}
		activeCount++

		gRow, gCol := toGridIndex(a.Lat, a.Lon, b, gridSize)
		if gRow >= 0 && gRow < gridSize && gCol >= 0 && gCol < gridSize {
			grid[gRow*gridSize+gCol]++
		}

		row, col := g.ToIndex(a.Lat, a.Lon)
		if row >= 0 && row < rows && col >= 0 && col < cols {
			heat[row*cols+col]++
		}
	}

	if activeCount == 0 {
		return Result{Grid: grid, GridSize: gridSize}
	}

	scale := 1.0 / float64(activeCount)
	for i := range grid {
		grid[i] *= scale
	}
	for i := range heat {
		heat[i] *= scale
	}

	grid = gaussianBlur2D(grid, gridSize, gridSize, 0.5)
	heat = gaussianBlur2D(heat, rows, cols, 1.5)

	normalize(grid)
	normalize(heat)

	points := make([]HeatmapPoint, 0)
	latPerRow := (b.North - b.South) / float64(rows)
	lonPerCol := (b.East - b.West) / float64(cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := heat[row*cols+col]
			if v <= sparseThreshold {
				continue
			}
			points = append(points, HeatmapPoint{
				Lat:   b.North - (float64(row)+0.5)*latPerRow,
				Lon:   b.West + (float64(col)+0.5)*lonPerCol,
				Value: v,
			})
		}
	}

	return Result{Grid: grid, GridSize: gridSize, Heatmap: points, ActiveCount: activeCount}
}

// toGridIndex maps a lat/lon into the fixed gridSize x gridSize output
// grid using the same north/west-referenced convention as terrain.Grid,
// clamped to [0, gridSize-1].
func toGridIndex(lat, lon float64, b terrain.Bounds, gridSize int) (row, col int) {
	row = int((b.North - lat) * float64(gridSize) / (b.North - b.South))
	col = int((lon - b.West) * float64(gridSize) / (b.East - b.West))
	if row < 0 {
		row = 0
	}
	if row >= gridSize {
		row = gridSize - 1
	}
	if col < 0 {
		col = 0
	}
	if col >= gridSize {
		col = gridSize - 1
	}
	return row, col
}

// normalize scales data in place so its maximum is 1, leaving an all-zero
// slice unchanged.
func normalize(data []float64) {
	var max float64
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return
	}
	for i := range data {
		data[i] /= max
	}
}

// gaussianBlur2D applies a separable isotropic Gaussian blur of standard
// deviation sigma (in cells) to a rows x cols row-major array, returning a
// new array.
func gaussianBlur2D(data []float64, rows, cols int, sigma float64) []float64 {
	kernel := gaussianKernel1D(sigma)
	radius := len(kernel) / 2

	horiz := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				cc := c + k
				if cc < 0 || cc >= cols {
					continue
				}
				sum += data[r*cols+cc] * kernel[k+radius]
			}
			horiz[r*cols+c] = sum
		}
	}

	out := make([]float64, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				rr := r + k
				if rr < 0 || rr >= rows {
					continue
				}
				sum += horiz[rr*cols+c] * kernel[k+radius]
			}
			out[r*cols+c] = sum
		}
	}
	return out
}

// gaussianKernel1D builds a normalized 1-D Gaussian kernel spanning
// +/-3*sigma cells (at least one cell wide).
func gaussianKernel1D(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
