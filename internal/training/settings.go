package training

import (
	"time"

	"github.com/2beens/runplan/internal/plan"
)

// Settings is the singleton user configuration. Fields missing from a
// stored snapshot are backfilled from the defaults on every read, so the
// schema can grow without breaking older data files.
type Settings struct {
	// PlanStart is the first day of plan week 1; it should be a Monday,
	// although that is not enforced here
	PlanStart        string  `json:"planStart"`
	GoalWeightKg     float64 `json:"goalWeightKg"`
	StartingWeightKg float64 `json:"startingWeightKg"`
}

func (s Settings) PlanStartDate() (time.Time, error) {
	return time.Parse(DateLayout, s.PlanStart)
}

// DefaultSettings are used to seed a fresh snapshot and to backfill
// fields missing from an older stored one.
func DefaultSettings() Settings {
	return Settings{
		PlanStart:        "2025-01-06",
		GoalWeightKg:     80,
		StartingWeightKg: 95,
	}
}

// reconcileSettings overlays every present (non-zero) field of stored
// onto the defaults. An explicit field-wise merge, so the forward
// compatible behavior does not depend on any decode ordering trick.
func reconcileSettings(defaults, stored Settings) Settings {
	merged := defaults
	if stored.PlanStart != "" {
		merged.PlanStart = stored.PlanStart
	}
	if stored.GoalWeightKg != 0 {
		merged.GoalWeightKg = stored.GoalWeightKg
	}
	if stored.StartingWeightKg != 0 {
		merged.StartingWeightKg = stored.StartingWeightKg
	}
	return merged
}

// MilestoneFlags tracks which plan milestones were ever achieved.
// Every flag is monotonic: once true it stays true, even if the
// qualifying run is deleted later.
type MilestoneFlags struct {
	First10K     bool `json:"first10k"`
	First15K     bool `json:"first15k"`
	First20K     bool `json:"first20k"`
	HalfMarathon bool `json:"halfMarathon"`
}

// merge ORs the two flag sets, preserving monotonicity on writes.
func (mf MilestoneFlags) merge(other MilestoneFlags) MilestoneFlags {
	return MilestoneFlags{
		First10K:     mf.First10K || other.First10K,
		First15K:     mf.First15K || other.First15K,
		First20K:     mf.First20K || other.First20K,
		HalfMarathon: mf.HalfMarathon || other.HalfMarathon,
	}
}

// Achieved reports whether the flag for the given plan milestone is set.
func (mf MilestoneFlags) Achieved(m plan.Milestone) bool {
	switch m.Week {
	case 9:
		return mf.First10K
	case 23:
		return mf.First15K
	case 35:
		return mf.First20K
	case 44:
		return mf.HalfMarathon
	default:
		return false
	}
}

func (mf *MilestoneFlags) set(m plan.Milestone) {
	switch m.Week {
	case 9:
		mf.First10K = true
	case 23:
		mf.First15K = true
	case 35:
		mf.First20K = true
	case 44:
		mf.HalfMarathon = true
	}
}
