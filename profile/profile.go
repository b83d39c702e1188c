// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package profile implements the hiker profile record and its derived
// movement parameters.
package profile

// Gender identifies the subject's recorded gender.
type Gender string

// Valid genders.
const (
	Male    Gender = "male"
	Female  Gender = "female"
	Other   Gender = "other"
	Unknown Gender = "unknown"
)

// Profile is the personal profile of the missing hiker.
type Profile struct {
	// Age, in years. It is only consulted when HasAge is true; otherwise
	// the default (adult) age scale is used.
	Age int

	// HasAge reports whether Age was actually provided.
	HasAge bool

	Gender Gender

	// SkillLevel ranges from 1 (novice) to 5 (expert).
	SkillLevel int
}

// ageScale returns the speed multiplier implied by the subject's age.
func (p Profile) ageScale() float64 {
	if !p.HasAge {
		return 1.0
	}
	switch {
	case p.Age < 18:
		return 0.8
	case p.Age >= 60 && p.Age <= 70:
		return 0.7
	case p.Age > 70:
		return 0.5
	default:
		return 1.0
	}
}

// SpeedFactor is the hiker's baseline speed multiplier.
func (p Profile) SpeedFactor() float64 {
	return (0.6 + 0.1*float64(p.SkillLevel)) * p.ageScale()
}

// DirectionRandomness scales the perturbation applied to a chosen direction.
func (p Profile) DirectionRandomness() float64 {
	return 1 - 0.2*(float64(p.SkillLevel)-1)
}

// TrailPreference is the hiker's derived trail-preference value. The step
// kernel does not use it: its direction weighting applies a fixed 2.0
// multiplier to on-trail/on-road candidates for non-route-traveling
// strategies.
func (p Profile) TrailPreference() float64 {
	if p.SkillLevel >= 4 {
		return 0.5
	}
	return 0.8
}
