// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package orchestrate advances an entire agent population by one timestep,
// isolating a single tracked agent (run on the calling goroutine, so its
// event log is always produced deterministically) and spreading the rest
// across a bounded worker pool.
//
// The teacher's infer/walk package starts a fixed pool of goroutines fed by
// a single shared channel for the lifetime of a reconstruction (Start/End).
// That shape does not fit a driver that issues one call per timestep across
// a whole run, so the channel-and-worker-goroutines idea is generalized
// here into an errgroup.Group bounded per call, which starts and stops
// cleanly within a single Step call instead of needing a matching End.
package orchestrate

import (
	"context"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/sarsim/sarsim/agent"
	"github.com/sarsim/sarsim/walksim"
)

// NoTrackedAgent is the trackedID value that disables tracking. Any other
// trackedID names the single agent whose step is run on the calling
// goroutine (outside the worker pool) so its event log is captured without
// a race against concurrent workers.
const NoTrackedAgent = -1

// Result is the outcome of advancing one population by one timestep.
type Result struct {
	// TrackedID is the id of the agent that was actually tracked this
	// call, or NoTrackedAgent if none was (no agent requested, or none
	// left active to reselect). Callers should carry this value forward
	// as the trackedID of the next Step call.
	TrackedID int

	// TrackedEvents holds the event log for the tracked agent, or nil if
	// no agent was tracked this call.
	TrackedEvents []walksim.Event
}

// Step advances every active agent in agents by one timestep using p,
// running the tracked agent's step (if any) on the calling goroutine and
// the rest across a worker pool bounded by workers. A workers value < 1
// is treated as 1.
//
// If trackedID no longer names an active agent (it deactivated on a
// previous step, or was never valid), a replacement is reselected among
// the agents still active at the start of this call, drawn from
// trackerRNG; trackerRNG may be nil, in which case the first remaining
// active agent is used. Tracking stays off for the rest of the run once
// no active agents remain. Result.TrackedID reports whichever agent ended
// up tracked, so the caller can pass it back in on the next call.
func Step(ctx context.Context, agents []agent.Agent, p walksim.Params, trackedID, workers int, trackerRNG *rand.Rand) (Result, error) {
	if workers < 1 {
		workers = 1
	}

	result := Result{TrackedID: NoTrackedAgent}

	trackedIdx := -1
	if trackedID != NoTrackedAgent {
		for i := range agents {
			if agents[i].ID == trackedID && agents[i].IsActive {
				trackedIdx = i
				break
			}
		}
		if trackedIdx < 0 {
			trackedIdx = selectReplacementTracked(agents, trackerRNG)
		}
	}

	if trackedIdx >= 0 {
		result.TrackedID = agents[trackedIdx].ID
		result.TrackedEvents = walksim.Step(&agents[trackedIdx], p)
	}

	others := make([]int, 0, len(agents))
	for i := range agents {
		if i == trackedIdx {
			continue
		}
		if !agents[i].IsActive {
			continue
		}
		others = append(others, i)
	}
	if len(others) == 0 {
		return result, ctx.Err()
	}

	chunkSize := len(others) / (4 * workers)
	if chunkSize < 1 {
		chunkSize = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(others); start += chunkSize {
		end := start + chunkSize
		if end > len(others) {
			end = len(others)
		}
		chunk := others[start:end]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for _, idx := range chunk {
				walksim.Step(&agents[idx], p)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// selectReplacementTracked picks the index of a still-active agent to
// track, after the previously tracked agent deactivated. It returns -1 if
// no agent is active. With a nil rng the first active agent (by
// population order) is used; otherwise one is drawn uniformly at random
// from the active set.
func selectReplacementTracked(agents []agent.Agent, rng *rand.Rand) int {
	var actives []int
	for i := range agents {
		if agents[i].IsActive {
			actives = append(actives, i)
		}
	}
	if len(actives) == 0 {
		return -1
	}
	if rng == nil {
		return actives[0]
	}
	return actives[rng.IntN(len(actives))]
}
