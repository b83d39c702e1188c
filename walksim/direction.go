// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package walksim

import "math"

// compassHeadings are the eight candidate headings evaluated by non-DT
// strategies, in radians, 0 = north, clockwise, in compass order
// N, NE, E, SE, S, SW, W, NW.
var compassHeadings = [8]float64{
	0,
	math.Pi / 4,
	math.Pi / 2,
	3 * math.Pi / 4,
	math.Pi,
	5 * math.Pi / 4,
	3 * math.Pi / 2,
	7 * math.Pi / 4,
}

// vector is a 2-component movement direction, ordered (sinComponent,
// cosComponent) to match the sin(theta), cos(theta) pair used throughout
// this package to convert a heading into a lat/lon displacement.
type vector struct {
	sin, cos float64
}

func headingVector(theta float64) vector {
	return vector{sin: math.Sin(theta), cos: math.Cos(theta)}
}

func (v vector) normalize() vector {
	n := math.Hypot(v.sin, v.cos)
	if n == 0 {
		return vector{sin: 0, cos: 1}
	}
	return vector{sin: v.sin / n, cos: v.cos / n}
}

// candidatePosition returns the lat/lon reached by moving dMeters from
// (lat, lon) along v, using the displacement conversion mandated for this
// simulator (see candidateLatLon in kernel.go for the shared formula).
func candidatePosition(lat, lon, dMeters float64, v vector) (cLat, cLon float64) {
	return candidateLatLon(lat, lon, dMeters, v)
}
