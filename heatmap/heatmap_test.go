// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package heatmap_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarsim/sarsim/heatmap"
)

func TestBoundsMatchesGridSize(t *testing.T) {
	img := &heatmap.Image{Grid: make([]float64, 100), GridSize: 10}
	b := img.Bounds()
	assert.Equal(t, 10, b.Dx())
	assert.Equal(t, 10, b.Dy())
}

func TestAtOutOfBoundsReturnsNeutralGray(t *testing.T) {
	img := &heatmap.Image{Grid: make([]float64, 100), GridSize: 10}
	c := img.At(-1, 0)
	assert.Equal(t, color.RGBA{211, 211, 211, 255}, c)
}

func TestGrayScaleClampsToRange(t *testing.T) {
	g := heatmap.GrayScale{}
	light := g.Gradient(-5)
	black := g.Gradient(5)
	assert.Equal(t, color.RGBA{200, 200, 200, 255}, light)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, black)
}
