package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/2beens/runplan/internal/config"
	"github.com/2beens/runplan/internal/logging"
	"github.com/2beens/runplan/internal/plan"
	"github.com/2beens/runplan/internal/training"
	"github.com/2beens/runplan/pkg"

	log "github.com/sirupsen/logrus"
)

const usage = `runplan - 44 week half marathon training tracker

usage: runplan [flags] <command> [command flags]

commands:
  dashboard    current week, plan, milestones, records, streaks (default)
  plan         print the full 44 week plan
  add-run      log a run
  edit-run     edit a logged run by id
  runs         list logged runs
  delete-run   delete a run by id
  add-weight   log a body weight measurement
  weights      list weight entries
  records      personal records
  settings     show or update settings
  export       write the full data snapshot as JSON
  import       replace the data snapshot from a JSON file
`

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: false,
	})

	log.Debugf("running in [%s] environment", cfg.Environment)
	log.Debugf("using data dir: [%s]", cfg.DataDir)

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		log.Fatalf("create data dir: %s", err)
	}

	defaults := training.DefaultSettings()
	if cfg.PlanStart != "" {
		defaults.PlanStart = cfg.PlanStart
	}
	if cfg.GoalWeightKg > 0 {
		defaults.GoalWeightKg = cfg.GoalWeightKg
	}
	if cfg.StartingWeightKg > 0 {
		defaults.StartingWeightKg = cfg.StartingWeightKg
	}

	store, err := training.NewStore(cfg.DataDir, defaults)
	if err != nil {
		log.Fatalf("create store: %s", err)
	}
	service := training.NewService(store, training.NewAnalyzer(store))

	command := "dashboard"
	args := flag.Args()
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	ctx := context.Background()
	if err := runCommand(ctx, command, args, store, service); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func loadConfig(env, configPath string) (*config.Config, error) {
	configExists, err := pkg.PathExists(configPath, false)
	if err != nil {
		return nil, err
	}
	if configExists {
		return config.Load(env, configPath)
	}

	// no config file: run with builtin defaults
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get user home dir: %w", err)
	}
	return &config.Config{
		Environment: env,
		LogLevel:    "error",
		LogToStdout: true,
		DataDir:     path.Join(homeDir, ".runplan"),
	}, nil
}

func runCommand(
	ctx context.Context,
	command string,
	args []string,
	store *training.Store,
	service *training.Service,
) error {
	switch command {
	case "dashboard":
		return showDashboard(ctx, service)
	case "plan":
		return showPlan()
	case "add-run":
		return addRun(ctx, args, service)
	case "edit-run":
		return editRun(ctx, args, store, service)
	case "runs":
		return listRuns(ctx, store)
	case "delete-run":
		return deleteRun(ctx, args, service)
	case "add-weight":
		return addWeight(ctx, args, service)
	case "weights":
		return listWeights(ctx, store)
	case "records":
		return showRecords(ctx, service)
	case "settings":
		return showOrUpdateSettings(ctx, args, store)
	case "export":
		return exportSnapshot(ctx, args, store)
	case "import":
		return importSnapshot(ctx, args, store)
	case "help":
		fmt.Print(usage)
		return nil
	default:
		return fmt.Errorf("unknown command: %s (try: runplan help)", command)
	}
}

func showDashboard(ctx context.Context, service *training.Service) error {
	dashboard, err := service.Dashboard(ctx, time.Now())
	if err != nil {
		return err
	}

	switch {
	case dashboard.NotStarted:
		fmt.Println("the training plan has not started yet")
	case dashboard.PlanComplete:
		fmt.Printf("plan complete (week %d is past the 44 week plan)\n", dashboard.Week)
	default:
		fmt.Printf("week %d of %d", dashboard.Week, plan.TotalWeeks)
		if dashboard.PlanWeek != nil && dashboard.PlanWeek.Recovery {
			fmt.Print("  [recovery week]")
		}
		fmt.Println()
	}

	if dashboard.Phase != nil {
		fmt.Printf("phase %d: %s - %s\n", dashboard.Phase.Number, dashboard.Phase.Name, dashboard.Phase.Description)
	}
	if dashboard.PlanWeek != nil {
		fmt.Printf("planned: long run %.1f km, short run %.1f km (total %.1f km)\n",
			dashboard.PlanWeek.LongRunKm, dashboard.PlanWeek.ShortRunKm, dashboard.PlanWeek.TotalKm())
		fmt.Printf("week span: %s .. %s\n",
			dashboard.WeekFrom.Format(training.DateLayout), dashboard.WeekTo.Format(training.DateLayout))
	}

	if dashboard.NextMilestone != nil {
		fmt.Printf("next milestone: %s (%.1f km, week %d)\n",
			dashboard.NextMilestone.Name, dashboard.NextMilestone.DistanceKm, dashboard.NextMilestone.Week)
	} else {
		fmt.Println("all milestones achieved")
	}

	fmt.Printf("streak: %d week(s), longest %d\n", dashboard.Streaks.Current, dashboard.Streaks.Longest)
	fmt.Printf("totals: %d runs, %.1f km\n", dashboard.TotalRuns, dashboard.TotalKm)

	if dashboard.WeightProgress != nil {
		fmt.Printf("weight: %.1f kg (%.0f%% from %.1f to %.1f)\n",
			dashboard.WeightProgress.CurrentKg, dashboard.WeightProgress.Percentage,
			dashboard.WeightProgress.StartingKg, dashboard.WeightProgress.GoalKg)
	}

	printRecords(dashboard.Records)
	return nil
}

func printRecords(records *training.PersonalRecords) {
	fmt.Println("personal records:")
	if records == nil {
		fmt.Println("  -")
		return
	}

	if records.Fastest5K != nil {
		fmt.Printf("  5K:      %s (%s, %.1f km)\n",
			pkg.FormatDuration(records.Fastest5K.TimeSec), records.Fastest5K.Run.Date, records.Fastest5K.Run.DistanceKm)
	} else {
		fmt.Println("  5K:      -")
	}
	if records.Fastest10K != nil {
		fmt.Printf("  10K:     %s (%s, %.1f km)\n",
			pkg.FormatDuration(records.Fastest10K.TimeSec), records.Fastest10K.Run.Date, records.Fastest10K.Run.DistanceKm)
	} else {
		fmt.Println("  10K:     -")
	}
	if records.LongestRun != nil {
		fmt.Printf("  longest: %.1f km (%s)\n", records.LongestRun.DistanceKm, records.LongestRun.Date)
	} else {
		fmt.Println("  longest: -")
	}
	if records.FastestPace != nil {
		fmt.Printf("  pace:    %s (%s, %.1f km)\n",
			pkg.FormatPace(records.FastestPace.PaceSecPerKm), records.FastestPace.Date, records.FastestPace.DistanceKm)
	} else {
		fmt.Println("  pace:    -")
	}
}

func showPlan() error {
	fmt.Println("44 week half marathon plan")
	for _, phase := range plan.Phases() {
		fmt.Printf("\nphase %d: %s (weeks %d-%d) - %s\n",
			phase.Number, phase.Name, phase.FromWeek, phase.ToWeek, phase.Description)
		for week := phase.FromWeek; week <= phase.ToWeek; week++ {
			planWeek, _ := plan.ForWeek(week)
			marker := " "
			if planWeek.Recovery {
				marker = "R"
			}
			milestoneNote := ""
			if milestone, ok := plan.MilestoneForWeek(week); ok {
				milestoneNote = fmt.Sprintf("  << %s (%.1f km)", milestone.Name, milestone.DistanceKm)
			}
			fmt.Printf("  week %2d %s  long %5.1f km  short %4.1f km%s\n",
				planWeek.Number, marker, planWeek.LongRunKm, planWeek.ShortRunKm, milestoneNote)
		}
	}
	return nil
}

func addRun(ctx context.Context, args []string, service *training.Service) error {
	fs := flag.NewFlagSet("add-run", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(training.DateLayout), "run date (YYYY-MM-DD)")
	runType := fs.String("type", "easy", "run type [parkrun|long|easy|tempo|intervals|recovery|treadmill]")
	distance := fs.Float64("distance", 0, "distance in km")
	duration := fs.String("duration", "", "duration as H:MM:SS, MM:SS or seconds")
	heartRate := fs.Int("hr", 0, "average heart rate (optional)")
	note := fs.String("note", "", "free text note (optional)")
	gym := fs.Bool("gym", false, "supplementary gym session done")
	bodyweight := fs.Bool("bodyweight", false, "supplementary bodyweight session done")
	if err := fs.Parse(args); err != nil {
		return err
	}

	durationSec, err := pkg.ParseDuration(*duration)
	if err != nil {
		return err
	}

	run, achieved, err := service.AddRun(ctx, training.Run{
		Date:              *date,
		Type:              training.RunType(*runType),
		DistanceKm:        *distance,
		DurationSec:       durationSec,
		HeartRate:         *heartRate,
		Note:              *note,
		GymSession:        *gym,
		BodyweightSession: *bodyweight,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run saved [%s]: %.1f km in %s, pace %s, week %d\n",
		run.ID, run.DistanceKm, pkg.FormatDuration(run.DurationSec), pkg.FormatPace(run.PaceSecPerKm), run.Week)
	if achieved != nil {
		fmt.Printf("milestone achieved: %s (%.1f km)!\n", achieved.Name, achieved.DistanceKm)
	}
	return nil
}

func editRun(ctx context.Context, args []string, store *training.Store, service *training.Service) error {
	fs := flag.NewFlagSet("edit-run", flag.ExitOnError)
	id := fs.String("id", "", "id of the run to edit")
	date := fs.String("date", "", "new run date (YYYY-MM-DD)")
	runType := fs.String("type", "", "new run type")
	distance := fs.Float64("distance", 0, "new distance in km")
	duration := fs.String("duration", "", "new duration as H:MM:SS, MM:SS or seconds")
	heartRate := fs.Int("hr", -1, "new average heart rate")
	note := fs.String("note", "", "new note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("run id is required")
	}

	run, err := store.GetRun(ctx, *id)
	if err != nil {
		return err
	}

	if *date != "" {
		run.Date = *date
	}
	if *runType != "" {
		run.Type = training.RunType(*runType)
	}
	if *distance > 0 {
		run.DistanceKm = *distance
	}
	if *duration != "" {
		durationSec, err := pkg.ParseDuration(*duration)
		if err != nil {
			return err
		}
		run.DurationSec = durationSec
	}
	if *heartRate >= 0 {
		run.HeartRate = *heartRate
	}
	if *note != "" {
		run.Note = *note
	}

	updated, achieved, err := service.UpdateRun(ctx, run)
	if err != nil {
		return err
	}

	fmt.Printf("run updated [%s]: %.1f km in %s, pace %s, week %d\n",
		updated.ID, updated.DistanceKm, pkg.FormatDuration(updated.DurationSec),
		pkg.FormatPace(updated.PaceSecPerKm), updated.Week)
	if achieved != nil {
		fmt.Printf("milestone achieved: %s (%.1f km)!\n", achieved.Name, achieved.DistanceKm)
	}
	return nil
}

func listRuns(ctx context.Context, store *training.Store) error {
	runs, err := store.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs logged yet")
		return nil
	}
	for _, run := range runs {
		flags := ""
		if run.GymSession {
			flags += " +gym"
		}
		if run.BodyweightSession {
			flags += " +bodyweight"
		}
		fmt.Printf("%s  wk %2d  %-9s  %5.1f km  %8s  %s%s  [%s]\n",
			run.Date, run.Week, run.Type, run.DistanceKm,
			pkg.FormatDuration(run.DurationSec), pkg.FormatPace(run.PaceSecPerKm), flags, run.ID)
	}
	return nil
}

func deleteRun(ctx context.Context, args []string, service *training.Service) error {
	fs := flag.NewFlagSet("delete-run", flag.ExitOnError)
	id := fs.String("id", "", "run id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("run id is required")
	}
	if err := service.DeleteRun(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("run [%s] deleted\n", *id)
	return nil
}

func addWeight(ctx context.Context, args []string, service *training.Service) error {
	fs := flag.NewFlagSet("add-weight", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(training.DateLayout), "measurement date (YYYY-MM-DD)")
	kilos := fs.Float64("kilos", 0, "weight in kg")
	note := fs.String("note", "", "free text note (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	weight, err := service.SaveWeight(ctx, training.Weight{
		Date:  *date,
		Kilos: *kilos,
		Note:  *note,
	})
	if err != nil {
		return err
	}
	fmt.Printf("weight saved [%s]: %.1f kg on %s\n", weight.ID, weight.Kilos, weight.Date)
	return nil
}

func listWeights(ctx context.Context, store *training.Store) error {
	weights, err := store.ListWeights(ctx)
	if err != nil {
		return err
	}
	if len(weights) == 0 {
		fmt.Println("no weight entries yet")
		return nil
	}
	for _, weight := range weights {
		fmt.Printf("%s  %5.1f kg  [%s]\n", weight.Date, weight.Kilos, weight.ID)
	}
	return nil
}

func showRecords(ctx context.Context, service *training.Service) error {
	dashboard, err := service.Dashboard(ctx, time.Now())
	if err != nil {
		return err
	}
	printRecords(dashboard.Records)
	return nil
}

func showOrUpdateSettings(ctx context.Context, args []string, store *training.Store) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	planStart := fs.String("plan-start", "", "plan start date (YYYY-MM-DD, should be a Monday)")
	goalWeight := fs.Float64("goal-weight", 0, "goal weight in kg")
	startingWeight := fs.Float64("starting-weight", 0, "starting weight in kg")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *planStart != "" || *goalWeight > 0 || *startingWeight > 0 {
		settings, err := store.GetSettings(ctx)
		if err != nil {
			return err
		}
		if *planStart != "" {
			if _, err := time.Parse(training.DateLayout, *planStart); err != nil {
				return fmt.Errorf("invalid plan start date [%s]: expected %s", *planStart, training.DateLayout)
			}
			settings.PlanStart = *planStart
		}
		if *goalWeight > 0 {
			settings.GoalWeightKg = *goalWeight
		}
		if *startingWeight > 0 {
			settings.StartingWeightKg = *startingWeight
		}
		if err := store.UpdateSettings(ctx, settings); err != nil {
			return err
		}
	}

	settings, err := store.GetSettings(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("plan start:      %s\n", settings.PlanStart)
	fmt.Printf("starting weight: %.1f kg\n", settings.StartingWeightKg)
	fmt.Printf("goal weight:     %.1f kg\n", settings.GoalWeightKg)
	return nil
}

func exportSnapshot(ctx context.Context, args []string, store *training.Store) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		return store.Export(ctx, os.Stdout)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Errorf("close export file: %s", closeErr)
		}
	}()

	if err := store.Export(ctx, f); err != nil {
		return err
	}
	fmt.Printf("snapshot exported to %s\n", *out)
	return nil
}

func importSnapshot(ctx context.Context, args []string, store *training.Store) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "input JSON snapshot file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("input file is required")
	}

	f, err := os.Open(*in)
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Errorf("close import file: %s", closeErr)
		}
	}()

	if err := store.Import(ctx, f); err != nil {
		return err
	}
	fmt.Println("snapshot imported")
	return nil
}
