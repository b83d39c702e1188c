// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package agent implements the per-particle state of the motion simulator
// and the initial seeding of the agent population around a last-known
// point.
package agent

import "math/rand/v2"

// Strategy is a lost-person behavioral strategy.
type Strategy int

// Valid strategies.
const (
	// DirectionTraveling keeps walking roughly along its initial heading.
	DirectionTraveling Strategy = iota
	// RouteTraveling strongly prefers trails and roads.
	RouteTraveling
	// RandomWalking picks directions close to uniformly at random.
	RandomWalking
	// ViewEnhancing seeks higher ground.
	ViewEnhancing
	// StayingPut rarely moves at all.
	StayingPut
)

// String returns the short code used in logs and output.
func (s Strategy) String() string {
	switch s {
	case DirectionTraveling:
		return "DT"
	case RouteTraveling:
		return "RT"
	case RandomWalking:
		return "RW"
	case ViewEnhancing:
		return "VE"
	case StayingPut:
		return "SP"
	default:
		return "?"
	}
}

// Agent is one Monte Carlo sample of a possible lost-person trajectory.
type Agent struct {
	ID int

	Lat, Lon, Elevation float64

	Strategy Strategy
	Heading  float64 // radians, 0 = north, clockwise

	StepsTaken int
	Energy     float64
	IsActive   bool

	// RNG is this agent's private random source, seeded once at creation
	// from (run seed, agent id) so that results are reproducible
	// regardless of how many workers process the population.
	RNG *rand.Rand
}

// NewRNG builds the per-agent random source used throughout an agent's
// lifetime, derived from a run-wide seed and the agent's id.
func NewRNG(runSeed uint64, id int) *rand.Rand {
	return rand.New(rand.NewPCG(runSeed, uint64(id)))
}
