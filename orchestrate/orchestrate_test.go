// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package orchestrate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarsim/sarsim/agent"
	"github.com/sarsim/sarsim/features"
	"github.com/sarsim/sarsim/orchestrate"
	"github.com/sarsim/sarsim/profile"
	"github.com/sarsim/sarsim/terrain"
	"github.com/sarsim/sarsim/walksim"
	"github.com/sarsim/sarsim/weather"
)

func testParams() walksim.Params {
	rows, cols := 200, 200
	elev := make([]float64, rows*cols)
	bounds := terrain.Bounds{West: -110.05, South: 44.95, East: -109.95, North: 45.05}
	g := terrain.NewGrid(elev, rows, cols, bounds, 30)
	return walksim.Params{
		Terrain:   g,
		Masks:     features.Rasterize(g, features.Set{}),
		Profile:   profile.Profile{SkillLevel: 3},
		Weather:   weather.Default(),
		CenterLat: 45.0,
		CenterLon: -110.0,
		RadiusKm:  5,
		Rates:     walksim.DefaultAbandonmentRates(),
	}
}

func TestStepAdvancesAllActiveAgents(t *testing.T) {
	agents := agent.Seed(100, 45.0, -110.0, nil, 7)
	p := testParams()

	res, err := orchestrate.Step(context.Background(), agents, p, orchestrate.NoTrackedAgent, 4, nil)
	require.NoError(t, err)
	assert.Nil(t, res.TrackedEvents)

	var movedAny bool
	for _, a := range agents {
		if a.StepsTaken > 0 {
			movedAny = true
		}
	}
	assert.True(t, movedAny)
}

func TestStepTracksOneAgentOnCallingGoroutine(t *testing.T) {
	agents := agent.Seed(50, 45.0, -110.0, nil, 3)
	p := testParams()

	res, err := orchestrate.Step(context.Background(), agents, p, agents[5].ID, 2, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.TrackedEvents)
	assert.Equal(t, agents[5].ID, res.TrackedID)
}

func TestStepReselectsTrackedAgentWhenDeactivated(t *testing.T) {
	agents := agent.Seed(10, 45.0, -110.0, nil, 9)
	for i := range agents {
		agents[i].IsActive = i == 3
	}
	p := testParams()

	res, err := orchestrate.Step(context.Background(), agents, p, agents[0].ID, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, agents[3].ID, res.TrackedID)
	assert.NotEmpty(t, res.TrackedEvents)
}

func TestStepReselectionGivesUpWhenNoAgentsActive(t *testing.T) {
	agents := agent.Seed(10, 45.0, -110.0, nil, 9)
	for i := range agents {
		agents[i].IsActive = false
	}
	p := testParams()

	res, err := orchestrate.Step(context.Background(), agents, p, agents[0].ID, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, orchestrate.NoTrackedAgent, res.TrackedID)
	assert.Nil(t, res.TrackedEvents)
}

func TestStepHonorsCancellation(t *testing.T) {
	agents := agent.Seed(200, 45.0, -110.0, nil, 11)
	p := testParams()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrate.Step(ctx, agents, p, orchestrate.NoTrackedAgent, 4, nil)
	assert.Error(t, err)
}

func TestStepSkipsInactiveAgents(t *testing.T) {
	agents := agent.Seed(20, 45.0, -110.0, nil, 5)
	for i := range agents {
		agents[i].IsActive = false
	}
	p := testParams()

	res, err := orchestrate.Step(context.Background(), agents, p, orchestrate.NoTrackedAgent, 2, nil)
	require.NoError(t, err)
	assert.Nil(t, res.TrackedEvents)
	for _, a := range agents {
		assert.Equal(t, 0, a.StepsTaken)
	}
}
