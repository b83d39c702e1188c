// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package heatmap renders a density.Result's probability grid as a color
// image, for local inspection of a simulation run.
//
// Image adapts the teacher's probmap.Image: the same Gradienter interface
// and pixel-to-color mapping idiom, generalized from a spherical
// pixelation over geologic time stages to a plain row/col probability
// grid at a single point in time — there is no landscape model, no
// rotation, and no contour overlay here, since this image has nothing
// analogous to render as context around a single value.
package heatmap

import (
	"image"
	"image/color"

	"github.com/js-arias/blind"
)

// Gradienter returns a color for a probability in [0, 1].
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Image is an image.Image view over a row-major probability grid.
type Image struct {
	Grid     []float64
	GridSize int

	// Gradient selects the color scheme; Incandescent is used if nil.
	Gradient Gradienter
}

func (img *Image) gradient() Gradienter {
	if img.Gradient == nil {
		return Incandescent{}
	}
	return img.Gradient
}

func (img *Image) ColorModel() color.Model { return color.RGBAModel }

func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.GridSize, img.GridSize)
}

// At returns the color of cell (x, y), where x is the column and y is the
// row (row 0 = north, matching the grid's own convention).
func (img *Image) At(x, y int) color.Color {
	if x < 0 || x >= img.GridSize || y < 0 || y >= img.GridSize {
		return color.RGBA{211, 211, 211, 255}
	}
	v := img.Grid[y*img.GridSize+x]
	return img.gradient().Gradient(v)
}

// Incandescent is the color-blind-safe incandescent scheme of Paul Tol,
// the same gradient the teacher's probmap package uses.
type Incandescent struct{}

func (Incandescent) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return blind.Sequential(blind.Incandescent, v)
}

// GrayScale renders values on a gray ramp: 0 maps to light gray (200) and
// 1 maps to black (0).
type GrayScale struct{}

func (GrayScale) Gradient(v float64) color.Color {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c := 200 - uint8(v*200)
	return color.RGBA{c, c, c, 255}
}
