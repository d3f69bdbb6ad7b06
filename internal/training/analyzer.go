package training

import (
	"context"
	"math"
	"sort"

	"github.com/2beens/runplan/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type trainingRepo interface {
	ListRuns(ctx context.Context) ([]Run, error)
	ListWeights(ctx context.Context) ([]Weight, error)
	GetSettings(ctx context.Context) (Settings, error)
}

// Analyzer derives records, streaks and weight progress from the
// training log. It never mutates anything, every call is a full pass
// over the current snapshot (the data volume is a personal training log,
// a few thousand entries at the very most).
type Analyzer struct {
	repo trainingRepo
}

func NewAnalyzer(repo trainingRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// NormalizedRecord is a personal best over a normalized distance:
// the run's pace held for exactly 5 or 10 kilometers.
type NormalizedRecord struct {
	Run     Run `json:"run"`
	TimeSec int `json:"timeSec"`
}

// PersonalRecords holds the four tracked records. A nil entry means no
// run qualifies for it yet, which is a regular outcome, not an error.
type PersonalRecords struct {
	Fastest5K   *NormalizedRecord `json:"fastest5k,omitempty"`
	Fastest10K  *NormalizedRecord `json:"fastest10k,omitempty"`
	LongestRun  *Run              `json:"longestRun,omitempty"`
	FastestPace *Run              `json:"fastestPace,omitempty"`
}

// Records computes all personal records in one pass over the runs.
// Ties are broken by whichever run is encountered first in input order.
func (a *Analyzer) Records(ctx context.Context) (_ *PersonalRecords, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.training.records")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	runs, err := a.repo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	records := &PersonalRecords{}
	var best5k, best10k float64

	for i := range runs {
		run := runs[i]
		if run.DistanceKm <= 0 || run.DurationSec <= 0 {
			continue
		}

		normalized := float64(run.DurationSec) / run.DistanceKm

		if run.DistanceKm >= 5 {
			if t := normalized * 5; records.Fastest5K == nil || t < best5k {
				best5k = t
				records.Fastest5K = &NormalizedRecord{Run: run, TimeSec: int(math.Round(t))}
			}
		}
		if run.DistanceKm >= 10 {
			if t := normalized * 10; records.Fastest10K == nil || t < best10k {
				best10k = t
				records.Fastest10K = &NormalizedRecord{Run: run, TimeSec: int(math.Round(t))}
			}
		}
		if records.LongestRun == nil || run.DistanceKm > records.LongestRun.DistanceKm {
			longest := run
			records.LongestRun = &longest
		}
		if records.FastestPace == nil || run.PaceSecPerKm < records.FastestPace.PaceSecPerKm {
			fastest := run
			records.FastestPace = &fastest
		}
	}

	return records, nil
}

// Streaks are counted in training weeks: a streak week is any week with
// at least one logged run.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Streaks walks backward from currentWeek for the current streak and
// scans all distinct run weeks for the longest one. An in-progress
// streak that is already the longest is reflected immediately.
func (a *Analyzer) Streaks(ctx context.Context, currentWeek int) (_ Streaks, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.training.streaks")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("current_week", currentWeek))

	runs, err := a.repo.ListRuns(ctx)
	if err != nil {
		return Streaks{}, err
	}

	weekHasRun := make(map[int]bool)
	for _, run := range runs {
		if run.Week >= 1 {
			weekHasRun[run.Week] = true
		}
	}

	var current int
	for week := currentWeek; week >= 1; week-- {
		if !weekHasRun[week] {
			break
		}
		current++
	}

	weeks := make([]int, 0, len(weekHasRun))
	for week := range weekHasRun {
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	var longest, runLength int
	for i, week := range weeks {
		if i > 0 && week == weeks[i-1]+1 {
			runLength++
		} else {
			runLength = 1
		}
		if runLength > longest {
			longest = runLength
		}
	}

	if current > longest {
		longest = current
	}

	return Streaks{
		Current: current,
		Longest: longest,
	}, nil
}

// WeightProgress is how far along the user is between the starting
// weight and the goal weight, in percent.
type WeightProgress struct {
	StartingKg float64 `json:"startingKg"`
	GoalKg     float64 `json:"goalKg"`
	CurrentKg  float64 `json:"currentKg"`
	Percentage float64 `json:"percentage"`
}

// WeightProgress returns nil when there are no weight entries yet, or
// when starting and goal weight coincide and the ratio is undefined.
func (a *Analyzer) WeightProgress(ctx context.Context) (_ *WeightProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.training.weightProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	weights, err := a.repo.ListWeights(ctx)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, nil
	}

	settings, err := a.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.StartingWeightKg == settings.GoalWeightKg {
		return nil, nil
	}

	// weights are date ascending, the last one is the latest
	current := weights[len(weights)-1].Kilos

	percentage := (settings.StartingWeightKg - current) /
		(settings.StartingWeightKg - settings.GoalWeightKg) * 100
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	return &WeightProgress{
		StartingKg: settings.StartingWeightKg,
		GoalKg:     settings.GoalWeightKg,
		CurrentKg:  current,
		Percentage: percentage,
	}, nil
}
