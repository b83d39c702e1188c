// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package walksim implements the per-agent step kernel: the strategy-specific
// direction choice, Tobler-function speed, bounds/terrain validation, energy
// update and stop test that together advance one agent by one timestep.
//
// Step is pure except for in-place mutation of the agent argument, so the
// step orchestrator can run it concurrently across independently-owned
// agents without any shared mutable state beyond the read-only terrain,
// feature and weather inputs.
package walksim

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarsim/sarsim/agent"
	"github.com/sarsim/sarsim/features"
	"github.com/sarsim/sarsim/profile"
	"github.com/sarsim/sarsim/terrain"
	"github.com/sarsim/sarsim/weather"
)

// DtSeconds is the fixed simulation timestep.
const DtSeconds = 900

// lookaheadM is the distance used to probe candidate directions before
// committing to one.
const lookaheadM = 50

// toblerM is the distance used to sample the slope that feeds the Tobler
// speed function for the committed direction.
const toblerM = 20

// toblerNormalization is the teacher's calibration constant: the original
// behavior applies speed_factor to both DT and non-DT paths through this
// fixed divisor. Its derivation is not given upstream; it is retained
// verbatim as a tunable, not re-derived.
const toblerNormalization = 1.317

// AbandonmentRates are the tunable time-based abandonment probabilities.
// These are empirical constants, not structural invariants.
type AbandonmentRates struct {
	// ShortTerm applies for 4 < steps_taken <= 20.
	ShortTerm float64
	// MidTerm applies for 20 < steps_taken <= 96.
	MidTerm float64
	// LongTerm applies for steps_taken > 96.
	LongTerm float64
}

// DefaultAbandonmentRates are the values given by the behavioral model.
func DefaultAbandonmentRates() AbandonmentRates {
	return AbandonmentRates{ShortTerm: 0.005, MidTerm: 0.02, LongTerm: 0.05}
}

func (r AbandonmentRates) pStop(stepsTaken int) float64 {
	switch {
	case stepsTaken > 96:
		return r.LongTerm
	case stepsTaken > 20:
		return r.MidTerm
	case stepsTaken > 4:
		return r.ShortTerm
	default:
		return 0
	}
}

// Params bundles the read-only inputs shared by every agent's step within a
// timestep.
type Params struct {
	Terrain *terrain.Grid
	Masks   *features.Masks
	Profile profile.Profile
	Weather weather.Conditions

	CenterLat, CenterLon float64
	RadiusKm             float64

	Rates AbandonmentRates
}

// Event is one entry of a tracked agent's per-step decision log.
type Event struct {
	Kind   string
	Detail string
}

// Step advances a by one timestep in place, returning a short event log.
// The event log is always returned but is only worth collecting for the
// single tracked agent; it is cheap to build and safe to discard.
func Step(a *agent.Agent, p Params) []Event {
	var log []Event

	a.StepsTaken++

	if a.StepsTaken > 4 {
		pStop := p.Rates.pStop(a.StepsTaken)
		if a.RNG.Float64() < pStop {
			a.IsActive = false
			log = append(log, Event{Kind: "stop", Detail: "time-based abandonment"})
			return log
		}
	}

	if a.Strategy == agent.StayingPut {
		if a.RNG.Float64() < 0.99 {
			log = append(log, Event{Kind: "stay", Detail: "staying-put strategy"})
			return log
		}
	}

	dir, ok := chooseDirection(a, p, &log)
	if !ok {
		a.IsActive = false
		return log
	}

	tLat, tLon := candidatePosition(a.Lat, a.Lon, toblerM, dir)
	s, ok := p.Terrain.Slope(a.Lat, a.Lon, tLat, tLon)
	if !ok {
		s = 0
	}

	vKmh := 6 * math.Exp(-3.5*math.Abs(s+0.05))
	v := (vKmh / 3.6) * (p.Profile.SpeedFactor() / toblerNormalization) * (1 - p.Weather.MovementPenalty()) * a.Energy
	dMeters := v * DtSeconds

	cLat, cLon := candidateLatLon(a.Lat, a.Lon, dMeters, dir)

	if !p.Terrain.Contains(cLat, cLon) {
		a.IsActive = false
		log = append(log, Event{Kind: "stop", Detail: "out of terrain bounds"})
		return log
	}
	if terrain.HaversineMeters(p.CenterLat, p.CenterLon, cLat, cLon) > p.RadiusKm*1000 {
		a.IsActive = false
		log = append(log, Event{Kind: "stop", Detail: "exceeded search radius"})
		return log
	}
	elev, ok := p.Terrain.Elevation(cLat, cLon)
	if !ok {
		a.IsActive = false
		log = append(log, Event{Kind: "stop", Detail: "candidate off terrain"})
		return log
	}

	a.Lat, a.Lon, a.Elevation = cLat, cLon, elev
	log = append(log, Event{Kind: "move", Detail: a.Strategy.String()})

	energyDrop := 0.005
	if s > 0 {
		energyDrop += s * 0.05
	}
	a.Energy -= energyDrop
	if a.Energy < 0.1 {
		a.Energy = 0.1
	}

	return log
}

// candidateLatLon converts a displacement of dMeters along dir into a new
// lat/lon, using the displacement formula mandated for this simulator:
// lat moves with the sin component, lon moves with the cos component
// (adjusted by the cosine of latitude). This mapping is applied
// consistently everywhere a direction is turned into a position, so that
// direction weighting (which scores candidate positions) and final
// movement (which commits to one) always agree on where "this direction"
// actually leads.
func candidateLatLon(lat, lon, dMeters float64, dir vector) (cLat, cLon float64) {
	dLat := dMeters * dir.sin / 111320
	dLon := dMeters * dir.cos / (111320 * math.Cos(lat*math.Pi/180))
	return lat + dLat, lon + dLon
}

// chooseDirection implements step 3 of the kernel: DT perturbs its own
// heading, every other strategy evaluates the eight compass directions and
// samples one by weight.
func chooseDirection(a *agent.Agent, p Params, log *[]Event) (vector, bool) {
	if a.Strategy == agent.DirectionTraveling {
		n := distuv.Normal{Mu: 0, Sigma: 0.15}
		theta := a.Heading + n.Quantile(a.RNG.Float64())
		return headingVector(theta), true
	}

	weights := make([]float64, 8)
	var total float64
	for i, h := range compassHeadings {
		v := headingVector(h)
		cLat, cLon := candidatePosition(a.Lat, a.Lon, lookaheadM, v)
		weights[i] = candidateWeight(a, p, cLat, cLon)
		total += weights[i]
	}

	if total < 0.001 {
		*log = append(*log, Event{Kind: "stop", Detail: "no viable direction"})
		return vector{}, false
	}

	u := a.RNG.Float64() * total
	var cum float64
	chosen := compassHeadings[len(compassHeadings)-1]
	for i, w := range weights {
		cum += w
		if u < cum {
			chosen = compassHeadings[i]
			break
		}
	}

	r := 1.0
	if a.Strategy != agent.RandomWalking {
		r = p.Profile.DirectionRandomness()
	}

	nrm := distuv.Normal{Mu: 0, Sigma: 0.3 * r}
	base := headingVector(chosen)
	perturbed := vector{
		sin: base.sin + nrm.Quantile(a.RNG.Float64()),
		cos: base.cos + nrm.Quantile(a.RNG.Float64()),
	}
	return perturbed.normalize(), true
}

// candidateWeight scores one of the eight compass candidate positions per
// the direction-weighting table: slope contribution, trail/road
// attraction, river/cliff repulsion, floored at 0.01. Out-of-bounds or
// off-terrain candidates get the floor weight 0.01.
func candidateWeight(a *agent.Agent, p Params, cLat, cLon float64) float64 {
	if !p.Terrain.Contains(cLat, cLon) {
		return 0.01
	}
	s, ok := p.Terrain.Slope(a.Lat, a.Lon, cLat, cLon)
	if !ok {
		return 0.01
	}

	w := 1.0
	switch {
	case s > 0:
		if a.Strategy == agent.ViewEnhancing {
			w *= 3.0
		} else {
			w *= 1.2
		}
	case s < 0:
		w *= 0.8
	}

	row, col := p.Terrain.ToIndex(cLat, cLon)
	if p.Masks != nil {
		if p.Masks.IsTrailOrRoad(row, col) {
			if a.Strategy == agent.RouteTraveling {
				w *= 5.0
			} else {
				w *= 2.0
			}
		}
		if p.Masks.IsRiver(row, col) {
			w *= 0.1
		}
		if p.Masks.IsCliff(row, col) {
			w *= 0.01
		}
	}

	if w < 0.01 {
		w = 0.01
	}
	return w
}
