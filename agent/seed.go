// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package agent

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// jitterSigmaDeg is the standard deviation, in decimal degrees, of the
// Gaussian jitter applied to each agent's initial position (about 30 m).
const jitterSigmaDeg = 0.000333

// strategyWeights is the categorical distribution over initial strategies,
// in Strategy enum order.
var strategyWeights = []float64{
	DirectionTraveling: 0.559,
	RouteTraveling:     0.377,
	RandomWalking:      0.055,
	ViewEnhancing:      0.006,
	StayingPut:         0.003,
}

// Elevationer resolves the elevation at a coordinate, used to set an
// agent's starting elevation. It is satisfied by *terrain.Grid.
type Elevationer interface {
	Elevation(lat, lon float64) (float64, bool)
}

// Seed places n agents near (centerLat, centerLon), each with its own
// private RNG derived from (runSeed, id), and returns the initial
// population. Strategy and heading are sampled per agent; lat/lon jitter
// uses a Gaussian offset with a Quantile-based draw, mirroring how the
// teacher's discretized distributions are built from Quantile rather than
// Rand.
func Seed(n int, centerLat, centerLon float64, terrainGrid Elevationer, runSeed uint64) []Agent {
	jitter := distuv.Normal{Mu: 0, Sigma: jitterSigmaDeg}

	agents := make([]Agent, n)
	for i := 0; i < n; i++ {
		rng := NewRNG(runSeed, i)

		dLat := jitter.Quantile(rng.Float64())
		dLon := jitter.Quantile(rng.Float64())
		lat := centerLat + dLat
		lon := centerLon + dLon

		elev := 0.0
		if terrainGrid != nil {
			if e, ok := terrainGrid.Elevation(lat, lon); ok {
				elev = e
			}
		}

		agents[i] = Agent{
			ID:         i,
			Lat:        lat,
			Lon:        lon,
			Elevation:  elev,
			Strategy:   drawStrategy(rng.Float64()),
			Heading:    rng.Float64() * 2 * math.Pi,
			StepsTaken: 0,
			Energy:     1.0,
			IsActive:   true,
			RNG:        rng,
		}
	}
	return agents
}

// drawStrategy inverts the cumulative strategy distribution at the given
// uniform draw u in [0, 1).
func drawStrategy(u float64) Strategy {
	var cum float64
	for s, w := range strategyWeights {
		cum += w
		if u < cum {
			return Strategy(s)
		}
	}
	return StayingPut
}
