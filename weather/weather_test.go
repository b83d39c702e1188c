// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weather_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarsim/sarsim/weather"
)

func TestMovementPenaltyBenign(t *testing.T) {
	c := weather.Default()
	assert.Equal(t, 0.0, c.MovementPenalty())
}

func TestMovementPenaltyColdUsesWorseBoundOnly(t *testing.T) {
	cold := weather.Conditions{TemperatureC: -5}
	assert.InDelta(t, 0.2, cold.MovementPenalty(), 1e-9)

	veryCold := weather.Conditions{TemperatureC: -15}
	assert.InDelta(t, 0.4, veryCold.MovementPenalty(), 1e-9)
}

func TestMovementPenaltyHot(t *testing.T) {
	hot := weather.Conditions{TemperatureC: 35}
	assert.InDelta(t, 0.2, hot.MovementPenalty(), 1e-9)
}

func TestMovementPenaltyRainCappedAt03(t *testing.T) {
	heavy := weather.Conditions{TemperatureC: 15, PrecipitationMMPerH: 50}
	assert.InDelta(t, 0.3, heavy.MovementPenalty(), 1e-9)

	light := weather.Conditions{TemperatureC: 15, PrecipitationMMPerH: 2}
	assert.InDelta(t, 0.1, light.MovementPenalty(), 1e-9)
}

func TestMovementPenaltyWind(t *testing.T) {
	windy := weather.Conditions{TemperatureC: 15, WindMS: 12}
	assert.InDelta(t, 0.1, windy.MovementPenalty(), 1e-9)
}

func TestMovementPenaltyClampedToMax(t *testing.T) {
	severe := weather.Conditions{TemperatureC: -20, PrecipitationMMPerH: 100, WindMS: 30}
	assert.InDelta(t, 0.8, severe.MovementPenalty(), 1e-9)
}
