// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package providers

import (
	"context"

	"github.com/sarsim/sarsim/features"
	"github.com/sarsim/sarsim/terrain"
	"github.com/sarsim/sarsim/weather"
)

// FixtureElevation is a deterministic in-memory ElevationProvider, used by
// tests and the CLI. It always returns the same flat (or caller-supplied)
// raster, with its own rows and cols, whatever the requested bounds and
// resolution; the window reports the requested bounds and resolution.
type FixtureElevation struct {
	Elevation  []float64
	Rows, Cols int
}

// FlatFixtureElevation builds a FixtureElevation whose every cell is
// elevationM.
func FlatFixtureElevation(rows, cols int, elevationM float64) FixtureElevation {
	e := make([]float64, rows*cols)
	for i := range e {
		e[i] = elevationM
	}
	return FixtureElevation{Elevation: e, Rows: rows, Cols: cols}
}

func (f FixtureElevation) GetElevationWindow(_ context.Context, bounds terrain.Bounds, resolutionM float64) (ElevationWindow, error) {
	return ElevationWindow{
		Elevation:   f.Elevation,
		Rows:        f.Rows,
		Cols:        f.Cols,
		Bounds:      bounds,
		ResolutionM: resolutionM,
	}, nil
}

// FixtureFeatures is a deterministic in-memory FeatureProvider that always
// returns the same feature set.
type FixtureFeatures struct {
	Set features.Set
}

func (f FixtureFeatures) FetchFeatures(_ context.Context, _ terrain.Bounds) (features.Set, error) {
	return f.Set, nil
}

// FixtureWeather is a deterministic in-memory WeatherProvider that always
// returns the same conditions.
type FixtureWeather struct {
	Conditions weather.Conditions
}

func (f FixtureWeather) GetConditions(_ context.Context, _, _ float64, _ *int64, _ *float64) (weather.Conditions, error) {
	return f.Conditions, nil
}
