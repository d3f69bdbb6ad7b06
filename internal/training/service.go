package training

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/runplan/internal/plan"
	"github.com/2beens/runplan/internal/telemetry/tracing"
	"github.com/2beens/runplan/pkg"

	log "github.com/sirupsen/logrus"
)

type serviceRepo interface {
	trainingRepo
	AddRun(ctx context.Context, run Run) (Run, error)
	UpdateRun(ctx context.Context, run Run) error
	DeleteRun(ctx context.Context, id string) error
	GetRun(ctx context.Context, id string) (Run, error)
	SaveWeight(ctx context.Context, weight Weight) (Weight, error)
	DeleteWeight(ctx context.Context, id string) error
	UpdateSettings(ctx context.Context, settings Settings) error
	MilestoneFlags(ctx context.Context) (MilestoneFlags, error)
	SetMilestoneFlags(ctx context.Context, flags MilestoneFlags) error
}

// Service ties the plan table, the snapshot store and the analyzer
// together: it derives pace and training week on every run save, runs
// the milestone check, and assembles the dashboard.
type Service struct {
	repo     serviceRepo
	analyzer *Analyzer
}

func NewService(repo serviceRepo, analyzer *Analyzer) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
	}
}

// AddRun validates and stores a new run. The returned milestone is
// non-nil only when this save newly achieved one.
func (s *Service) AddRun(ctx context.Context, run Run) (_ Run, _ *plan.Milestone, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.addRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := run.Validate(); err != nil {
		return Run{}, nil, fmt.Errorf("validate run: %w", err)
	}
	if err := s.deriveRunFields(ctx, &run); err != nil {
		return Run{}, nil, err
	}

	added, err := s.repo.AddRun(ctx, run)
	if err != nil {
		return Run{}, nil, fmt.Errorf("add run: %w", err)
	}

	achieved, err := s.checkMilestones(ctx)
	if err != nil {
		return Run{}, nil, err
	}
	return added, achieved, nil
}

// UpdateRun overwrites a run in place and re-derives its pace and week
// from the possibly edited date, distance and duration.
func (s *Service) UpdateRun(ctx context.Context, run Run) (_ Run, _ *plan.Milestone, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.updateRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := run.Validate(); err != nil {
		return Run{}, nil, fmt.Errorf("validate run: %w", err)
	}
	if err := s.deriveRunFields(ctx, &run); err != nil {
		return Run{}, nil, err
	}

	if err := s.repo.UpdateRun(ctx, run); err != nil {
		return Run{}, nil, fmt.Errorf("update run: %w", err)
	}

	achieved, err := s.checkMilestones(ctx)
	if err != nil {
		return Run{}, nil, err
	}
	return run, achieved, nil
}

// DeleteRun removes a run. Milestone flags are deliberately left alone,
// an achieved milestone survives the deletion of its qualifying run.
func (s *Service) DeleteRun(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.deleteRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.DeleteRun(ctx, id)
}

func (s *Service) deriveRunFields(ctx context.Context, run *Run) error {
	run.PaceSecPerKm = pkg.CalculatePace(run.DistanceKm, run.DurationSec)

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("get settings: %w", err)
	}
	planStart, err := settings.PlanStartDate()
	if err != nil {
		return fmt.Errorf("plan start date: %w", err)
	}
	runDate, err := run.ParsedDate()
	if err != nil {
		return fmt.Errorf("run date: %w", err)
	}

	run.Week = plan.CurrentWeek(runDate, planStart)
	return nil
}

// checkMilestones sets the flag of every distance threshold the log has
// reached, and returns at most one newly achieved milestone per save.
// Thresholds are checked highest distance first, so when a single run
// crosses several at once only the biggest one is announced; the rest
// are set silently.
func (s *Service) checkMilestones(ctx context.Context) (_ *plan.Milestone, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.checkMilestones")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	var maxDistance float64
	for _, run := range runs {
		if run.DistanceKm > maxDistance {
			maxDistance = run.DistanceKm
		}
	}

	flags, err := s.repo.MilestoneFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("get milestone flags: %w", err)
	}

	milestones := plan.Milestones()

	var newlyAchieved *plan.Milestone
	for i := len(milestones) - 1; i >= 0; i-- {
		m := milestones[i]
		if maxDistance < m.DistanceKm || flags.Achieved(m) {
			continue
		}
		flags.set(m)
		if newlyAchieved == nil {
			newlyAchieved = &milestones[i]
		}
	}

	if newlyAchieved == nil {
		return nil, nil
	}

	if err := s.repo.SetMilestoneFlags(ctx, flags); err != nil {
		return nil, fmt.Errorf("set milestone flags: %w", err)
	}

	log.Infof("milestone achieved: %s (%.1f km)", newlyAchieved.Name, newlyAchieved.DistanceKm)
	return newlyAchieved, nil
}

// SaveWeight validates and stores a body weight entry. A second entry
// for the same date overwrites the first one.
func (s *Service) SaveWeight(ctx context.Context, weight Weight) (_ Weight, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.saveWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := weight.Validate(); err != nil {
		return Weight{}, fmt.Errorf("validate weight: %w", err)
	}
	return s.repo.SaveWeight(ctx, weight)
}

// Dashboard is everything the views need for the main screen.
type Dashboard struct {
	// Week is the raw training week: 0 before the plan starts, above 44
	// once the plan is done
	Week          int
	NotStarted    bool
	PlanComplete  bool
	PlanWeek      *plan.Week
	Phase         *plan.Phase
	WeekFrom      time.Time
	WeekTo        time.Time
	NextMilestone *plan.Milestone

	Records        *PersonalRecords
	Streaks        Streaks
	WeightProgress *WeightProgress

	TotalRuns int
	TotalKm   float64
}

// Dashboard assembles the full dashboard for the given day. Pure
// derivation over the current snapshot, nothing is mutated.
func (s *Service) Dashboard(ctx context.Context, today time.Time) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.training.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	planStart, err := settings.PlanStartDate()
	if err != nil {
		return nil, fmt.Errorf("plan start date: %w", err)
	}

	week := plan.CurrentWeek(today, planStart)
	dashboard := &Dashboard{
		Week:         week,
		NotStarted:   week == 0,
		PlanComplete: week > plan.TotalWeeks,
	}

	// lookups are clamped, the raw week stays as is
	lookupWeek := week
	if lookupWeek > plan.TotalWeeks {
		lookupWeek = plan.TotalWeeks
	}
	if planWeek, ok := plan.ForWeek(lookupWeek); ok {
		dashboard.PlanWeek = &planWeek
		dashboard.WeekFrom, dashboard.WeekTo = plan.WeekDateRange(planStart, lookupWeek)
	}
	if phase, ok := plan.PhaseForWeek(lookupWeek); ok {
		dashboard.Phase = &phase
	}

	flags, err := s.repo.MilestoneFlags(ctx)
	if err != nil {
		return nil, fmt.Errorf("get milestone flags: %w", err)
	}
	for _, m := range plan.Milestones() {
		if !flags.Achieved(m) {
			next := m
			dashboard.NextMilestone = &next
			break
		}
	}

	if dashboard.Records, err = s.analyzer.Records(ctx); err != nil {
		return nil, fmt.Errorf("records: %w", err)
	}
	if dashboard.Streaks, err = s.analyzer.Streaks(ctx, week); err != nil {
		return nil, fmt.Errorf("streaks: %w", err)
	}
	if dashboard.WeightProgress, err = s.analyzer.WeightProgress(ctx); err != nil {
		return nil, fmt.Errorf("weight progress: %w", err)
	}

	runs, err := s.repo.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	dashboard.TotalRuns = len(runs)
	for _, run := range runs {
		dashboard.TotalKm += run.DistanceKm
	}

	return dashboard, nil
}
