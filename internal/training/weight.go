package training

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Weight is a body weight measurement. At most one entry exists per
// calendar date, a second save for the same date overwrites the first
// while keeping its original ID.
type Weight struct {
	ID    string  `json:"id"`
	Date  string  `json:"date"`
	Kilos float64 `json:"kilos"`
	Note  string  `json:"note,omitempty"`
}

func (w Weight) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, w.Date)
}

func (w Weight) Validate() error {
	var err error
	if _, dateErr := w.ParsedDate(); dateErr != nil {
		err = multierr.Append(err, fmt.Errorf("invalid date [%s]: expected %s", w.Date, DateLayout))
	}
	if w.Kilos <= 0 {
		err = multierr.Append(err, fmt.Errorf("weight must be positive, got %v", w.Kilos))
	}
	return err
}
