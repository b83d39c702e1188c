// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package providers defines the collaborator contracts the simulator
// depends on for elevation, linear features and weather, along with
// deterministic in-memory fixtures and a minimal disk-backed elevation
// cache standing in for real DEM tile acquisition.
package providers

import (
	"context"
	"errors"

	"github.com/sarsim/sarsim/features"
	"github.com/sarsim/sarsim/terrain"
	"github.com/sarsim/sarsim/weather"
)

// ErrBoundsUnavailable is returned by an ElevationProvider when no data
// covers the requested bounds.
var ErrBoundsUnavailable = errors.New("providers: bounds unavailable")

// ErrProviderTimeout is returned by any provider when the upstream source
// did not respond in time.
var ErrProviderTimeout = errors.New("providers: timed out")

// ElevationWindow is a rectangular elevation raster covering a bounding
// box, ready to be wrapped as a terrain.Grid.
type ElevationWindow struct {
	Elevation   []float64
	Rows, Cols  int
	Bounds      terrain.Bounds
	ResolutionM float64
}

// ElevationProvider returns a raster covering bounds, at approximately
// resolutionM per cell.
type ElevationProvider interface {
	GetElevationWindow(ctx context.Context, bounds terrain.Bounds, resolutionM float64) (ElevationWindow, error)
}

// FeatureProvider returns the linear features (trails, roads, rivers,
// cliffs) intersecting bounds. A failing provider is never fatal to the
// caller: the driver substitutes an empty features.Set and continues.
type FeatureProvider interface {
	FetchFeatures(ctx context.Context, bounds terrain.Bounds) (features.Set, error)
}

// WeatherProvider returns the conditions at a point, optionally at a
// specific time and elevation. A failing provider is never fatal: the
// driver substitutes weather.Default().
type WeatherProvider interface {
	GetConditions(ctx context.Context, lat, lon float64, when *int64, elevationM *float64) (weather.Conditions, error)
}
