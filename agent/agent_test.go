// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarsim/sarsim/agent"
)

func TestSeedProducesRequestedCount(t *testing.T) {
	agents := agent.Seed(100, 45.0, -110.0, nil, 42)
	require.Len(t, agents, 100)
	for i, a := range agents {
		assert.Equal(t, i, a.ID)
		assert.True(t, a.IsActive)
		assert.Equal(t, 1.0, a.Energy)
		assert.Equal(t, 0, a.StepsTaken)
		assert.NotNil(t, a.RNG)
	}
}

func TestSeedIsDeterministicForSameRunSeed(t *testing.T) {
	a := agent.Seed(50, 45.0, -110.0, nil, 7)
	b := agent.Seed(50, 45.0, -110.0, nil, 7)

	for i := range a {
		assert.Equal(t, a[i].Lat, b[i].Lat)
		assert.Equal(t, a[i].Lon, b[i].Lon)
		assert.Equal(t, a[i].Strategy, b[i].Strategy)
		assert.Equal(t, a[i].Heading, b[i].Heading)
	}
}

func TestSeedJitterIsNearCenter(t *testing.T) {
	agents := agent.Seed(200, 45.0, -110.0, nil, 1)
	for _, a := range agents {
		assert.InDelta(t, 45.0, a.Lat, 0.01)
		assert.InDelta(t, -110.0, a.Lon, 0.01)
	}
}

func TestStrategyDistributionRoughlyMatchesWeights(t *testing.T) {
	agents := agent.Seed(20000, 45.0, -110.0, nil, 99)
	var dt int
	for _, a := range agents {
		if a.Strategy == agent.DirectionTraveling {
			dt++
		}
	}
	frac := float64(dt) / float64(len(agents))
	assert.InDelta(t, 0.559, frac, 0.02)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "DT", agent.DirectionTraveling.String())
	assert.Equal(t, "SP", agent.StayingPut.String())
}
