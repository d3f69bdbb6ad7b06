package training

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// DateLayout is the calendar date form used across all stored entries.
const DateLayout = "2006-01-02"

// RunType can be one of:
//   - parkrun
//   - long
//   - easy
//   - tempo
//   - intervals
//   - recovery
//   - treadmill
type RunType string

const (
	RunTypeParkrun   RunType = "parkrun"
	RunTypeLong      RunType = "long"
	RunTypeEasy      RunType = "easy"
	RunTypeTempo     RunType = "tempo"
	RunTypeIntervals RunType = "intervals"
	RunTypeRecovery  RunType = "recovery"
	RunTypeTreadmill RunType = "treadmill"
)

func (rt RunType) String() string {
	return string(rt)
}

func (rt RunType) IsValid() bool {
	switch rt {
	case RunTypeParkrun,
		RunTypeLong,
		RunTypeEasy,
		RunTypeTempo,
		RunTypeIntervals,
		RunTypeRecovery,
		RunTypeTreadmill:
		return true
	default:
		return false
	}
}

// Run is a single logged training run. Pace and Week are derived on every
// save, edits overwrite in place, there is no versioning.
type Run struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Type         RunType `json:"type"`
	DistanceKm   float64 `json:"distanceKm"`
	DurationSec  int     `json:"durationSec"`
	PaceSecPerKm int     `json:"paceSecPerKm"`
	HeartRate    int     `json:"heartRate,omitempty"`
	Note         string  `json:"note,omitempty"`
	// supplementary sessions done alongside the run
	GymSession        bool `json:"gymSession"`
	BodyweightSession bool `json:"bodyweightSession"`
	// training week number, computed from Date at create/edit time
	Week int `json:"week"`
}

func (r Run) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

func (r Run) Validate() error {
	var err error
	if _, dateErr := r.ParsedDate(); dateErr != nil {
		err = multierr.Append(err, fmt.Errorf("invalid date [%s]: expected %s", r.Date, DateLayout))
	}
	if !r.Type.IsValid() {
		err = multierr.Append(err, fmt.Errorf("invalid run type [%s]", r.Type))
	}
	if r.DistanceKm <= 0 {
		err = multierr.Append(err, fmt.Errorf("distance must be positive, got %v", r.DistanceKm))
	}
	if r.DurationSec <= 0 {
		err = multierr.Append(err, fmt.Errorf("duration must be positive, got %d", r.DurationSec))
	}
	if r.HeartRate < 0 {
		err = multierr.Append(err, fmt.Errorf("heart rate cannot be negative, got %d", r.HeartRate))
	}
	return err
}
