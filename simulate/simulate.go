// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package simulate owns the top-level time loop: it wires the terrain,
// feature and weather providers together with agent seeding, the step
// orchestrator and the density reducer, and turns the result into an
// ordered sequence of TimeSlices.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/sarsim/sarsim/agent"
	"github.com/sarsim/sarsim/density"
	"github.com/sarsim/sarsim/features"
	"github.com/sarsim/sarsim/orchestrate"
	"github.com/sarsim/sarsim/profile"
	"github.com/sarsim/sarsim/providers"
	"github.com/sarsim/sarsim/terrain"
	"github.com/sarsim/sarsim/walksim"
	"github.com/sarsim/sarsim/weather"
)

// ErrBadRequest is returned, wrapped with detail, when a Request fails
// validation.
var ErrBadRequest = errors.New("simulate: bad request")

// defaultResolutionM is the terrain cell resolution used when a request
// does not override it.
const defaultResolutionM = 30.0

// stepMinutes is the fixed timestep duration.
const stepMinutes = 15

// capMinutes is the maximum total simulated duration, regardless of how
// long ago the hiker was last seen.
const capMinutes = 480

// trackerRNGSalt distinguishes the tracked-agent-reselection RNG stream
// from any per-agent RNG that happens to share the same run seed.
const trackerRNGSalt = ^uint64(0)

// Request is the simulator's entry point input.
type Request struct {
	CenterLat, CenterLon float64
	RadiusKm             float64
	Profile              profile.Profile

	// TimeLastSeenUnix and CurrentTimeUnix are optional Unix timestamps.
	// The elapsed time between them does not change the number of
	// simulated steps (see numSteps); CurrentTimeUnix is passed to the
	// weather provider.
	TimeLastSeenUnix, CurrentTimeUnix *int64

	GridSize int

	ResolutionM float64

	Workers int

	RunSeed uint64

	// TrackedAgentID names a single agent whose per-step event log is
	// collected into Result.TrackedEvents. Set to orchestrate.NoTrackedAgent
	// to disable tracking; the zero value tracks agent 0.
	TrackedAgentID int

	Rates walksim.AbandonmentRates
}

// TimeSlice is one timestep's output: a probability grid and/or a sparse
// heatmap, at least one of which is always populated.
type TimeSlice struct {
	TimeOffsetMinutes int
	Grid              []float64
	GridSize          int
	Points            []density.HeatmapPoint
}

// Result is the simulator's output.
type Result struct {
	TimeSlices []TimeSlice

	CenterLat, CenterLon float64
	RadiusKm             float64

	FinalPositions []agent.Agent

	TrackedEvents [][]walksim.Event
}

// Driver owns the provider collaborators used to build each run's terrain,
// features and weather.
type Driver struct {
	Elevation providers.ElevationProvider
	Features  providers.FeatureProvider
	Weather   providers.WeatherProvider

	Log *logrus.Logger
}

// NewDriver builds a Driver with a default logger if log is nil.
func NewDriver(elev providers.ElevationProvider, feat providers.FeatureProvider, wx providers.WeatherProvider, log *logrus.Logger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{Elevation: elev, Features: feat, Weather: wx, Log: log}
}

func validate(req Request) error {
	if req.CenterLat < -90 || req.CenterLat > 90 {
		return fmt.Errorf("%w: center_lat %v out of range", ErrBadRequest, req.CenterLat)
	}
	if req.CenterLon < -180 || req.CenterLon > 180 {
		return fmt.Errorf("%w: center_lon %v out of range", ErrBadRequest, req.CenterLon)
	}
	if req.RadiusKm <= 0 {
		return fmt.Errorf("%w: radius_km must be positive", ErrBadRequest)
	}
	if req.GridSize < 2 {
		return fmt.Errorf("%w: grid_size must be >= 2", ErrBadRequest)
	}
	return nil
}

// boundsForRequest derives a bounding box covering radius_km around the
// center, using a local equirectangular approximation (matching the one
// used for feature-buffer rasterization): not geodesically exact, but
// adequate for the local-area rasters this simulator works with.
func boundsForRequest(req Request) terrain.Bounds {
	latDeg := req.RadiusKm * 1000 / 111320
	lonDeg := req.RadiusKm * 1000 / (111320 * math.Cos(req.CenterLat*math.Pi/180))
	return terrain.Bounds{
		West:  req.CenterLon - lonDeg,
		East:  req.CenterLon + lonDeg,
		South: req.CenterLat - latDeg,
		North: req.CenterLat + latDeg,
	}
}

// numSteps computes the number of 15-minute timesteps for a request as
// min(elapsed+cap, cap) minutes. Since elapsed is never negative, every
// request simulates the full 8-hour cap (32 steps), however much time has
// passed since the hiker was last seen.
func numSteps(req Request) int {
	elapsedMin := 0.0
	if req.TimeLastSeenUnix != nil && req.CurrentTimeUnix != nil {
		elapsedMin = float64(*req.CurrentTimeUnix-*req.TimeLastSeenUnix) / 60
		if elapsedMin < 0 {
			elapsedMin = 0
		}
	}
	totalMin := math.Min(elapsedMin+capMinutes, capMinutes)
	return int(totalMin) / stepMinutes
}

// Run executes the full time loop described for this simulator: load
// terrain, features and weather from the providers, seed the agent
// population, then for each timestep advance every active agent and
// reduce their positions into a TimeSlice.
//
// An elevation provider error is fatal and returned verbatim (wrapped
// with context). A feature or weather provider error is logged at debug
// level and replaced by an empty feature set or weather.Default(),
// respectively. Per-agent kernel failures are contained inside walksim.Step
// and never surface here. ctx is checked between timesteps; on
// cancellation the partial result is discarded and ctx.Err() is returned.
func (d *Driver) Run(ctx context.Context, req Request) (Result, error) {
	if req.GridSize == 0 {
		req.GridSize = 50
	}
	if err := validate(req); err != nil {
		return Result{}, err
	}
	if req.ResolutionM == 0 {
		req.ResolutionM = defaultResolutionM
	}
	if req.Workers == 0 {
		req.Workers = min(runtime.NumCPU(), 8)
	}
	if req.Rates == (walksim.AbandonmentRates{}) {
		req.Rates = walksim.DefaultAbandonmentRates()
	}

	bounds := boundsForRequest(req)

	win, err := d.Elevation.GetElevationWindow(ctx, bounds, req.ResolutionM)
	if err != nil {
		return Result{}, fmt.Errorf("simulate: elevation provider: %w", err)
	}
	grid := terrain.NewGrid(win.Elevation, win.Rows, win.Cols, win.Bounds, win.ResolutionM)

	var set features.Set
	if fs, ferr := d.Features.FetchFeatures(ctx, bounds); ferr != nil {
		d.Log.WithError(ferr).Debug("feature provider failed, continuing with no features")
	} else {
		set = fs
	}
	masks := features.Rasterize(grid, set)

	wx := weather.Default()
	if w, werr := d.Weather.GetConditions(ctx, req.CenterLat, req.CenterLon, req.CurrentTimeUnix, nil); werr != nil {
		d.Log.WithError(werr).Debug("weather provider failed, substituting benign default")
	} else {
		wx = w
	}

	population := agent.Seed(defaultAgentCount, req.CenterLat, req.CenterLon, grid, req.RunSeed)

	params := walksim.Params{
		Terrain:   grid,
		Masks:     masks,
		Profile:   req.Profile,
		Weather:   wx,
		CenterLat: req.CenterLat,
		CenterLon: req.CenterLon,
		RadiusKm:  req.RadiusKm,
		Rates:     req.Rates,
	}

	n := numSteps(req)
	result := Result{
		CenterLat: req.CenterLat,
		CenterLon: req.CenterLon,
		RadiusKm:  req.RadiusKm,
	}

	trackerRNG := rand.New(rand.NewPCG(req.RunSeed, trackerRNGSalt))
	trackedID := req.TrackedAgentID

	for step := 0; step < n; step++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		stepRes, err := orchestrate.Step(ctx, population, params, trackedID, req.Workers, trackerRNG)
		if err != nil {
			return Result{}, err
		}
		trackedID = stepRes.TrackedID
		if stepRes.TrackedEvents != nil {
			result.TrackedEvents = append(result.TrackedEvents, stepRes.TrackedEvents)
		}

		reduced := density.Reduce(population, grid, req.GridSize)
		result.TimeSlices = append(result.TimeSlices, TimeSlice{
			TimeOffsetMinutes: step * stepMinutes,
			Grid:              reduced.Grid,
			GridSize:          reduced.GridSize,
			Points:            reduced.Heatmap,
		})
	}

	for _, a := range population {
		if a.IsActive {
			result.FinalPositions = append(result.FinalPositions, a)
		}
	}

	return result, nil
}

// defaultAgentCount is the Monte Carlo sample size used for every run.
const defaultAgentCount = 2000
