package training_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/2beens/runplan/internal/training"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaults = training.Settings{
	PlanStart:        "2025-01-06",
	GoalWeightKg:     80,
	StartingWeightKg: 95,
}

func newTestStore(t *testing.T) *training.Store {
	t.Helper()
	store, err := training.NewStore(t.TempDir(), testDefaults)
	require.NoError(t, err)
	return store
}

func testRun(date string, distanceKm float64, durationSec int) training.Run {
	return training.Run{
		Date:        date,
		Type:        training.RunTypeEasy,
		DistanceKm:  distanceKm,
		DurationSec: durationSec,
		Note:        gofakeit.Sentence(4),
	}
}

func TestNewStore(t *testing.T) {
	store, err := training.NewStore("", testDefaults)
	require.Error(t, err)
	assert.Nil(t, store)

	store, err = training.NewStore(path.Join(t.TempDir(), "nope"), testDefaults)
	require.Error(t, err)
	assert.Nil(t, store)

	dataDir := t.TempDir()
	store, err = training.NewStore(dataDir, testDefaults)
	require.NoError(t, err)
	require.NotNil(t, store)

	// a fresh snapshot file is created right away
	_, err = os.Stat(path.Join(dataDir, "runplan.json"))
	require.NoError(t, err)

	settings, err := store.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testDefaults, settings)
}

func TestStore_RunsCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	added, err := store.AddRun(ctx, testRun("2025-01-08", 5, 1500))
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	added2, err := store.AddRun(ctx, testRun("2025-01-06", 3, 1000))
	require.NoError(t, err)
	assert.NotEqual(t, added.ID, added2.ID)

	got, err := store.GetRun(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	_, err = store.GetRun(ctx, "no-such-id")
	require.ErrorIs(t, err, training.ErrRunNotFound)

	// listed date ascending
	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, added2.ID, runs[0].ID)
	assert.Equal(t, added.ID, runs[1].ID)

	added.DistanceKm = 6.5
	require.NoError(t, store.UpdateRun(ctx, added))
	got, err = store.GetRun(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, 6.5, got.DistanceKm)

	missing := added
	missing.ID = "no-such-id"
	require.ErrorIs(t, store.UpdateRun(ctx, missing), training.ErrRunNotFound)

	require.NoError(t, store.DeleteRun(ctx, added2.ID))
	require.ErrorIs(t, store.DeleteRun(ctx, added2.ID), training.ErrRunNotFound)

	runs, err = store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestStore_Persistence(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	store, err := training.NewStore(dataDir, testDefaults)
	require.NoError(t, err)

	added, err := store.AddRun(ctx, testRun("2025-01-08", 5, 1500))
	require.NoError(t, err)
	_, err = store.SaveWeight(ctx, training.Weight{Date: "2025-01-08", Kilos: 94.5})
	require.NoError(t, err)
	require.NoError(t, store.SetMilestoneFlags(ctx, training.MilestoneFlags{First10K: true}))

	// a brand new store over the same dir sees everything
	reopened, err := training.NewStore(dataDir, testDefaults)
	require.NoError(t, err)

	got, err := reopened.GetRun(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, got)

	weights, err := reopened.ListWeights(ctx)
	require.NoError(t, err)
	require.Len(t, weights, 1)

	flags, err := reopened.MilestoneFlags(ctx)
	require.NoError(t, err)
	assert.True(t, flags.First10K)
	assert.False(t, flags.HalfMarathon)
}

func TestStore_LoadBackfillsMissingFields(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	// an old snapshot version: no weights, no milestones, partial settings
	oldSnapshot := `{"runs":[],"settings":{"planStart":"2025-03-03"}}`
	require.NoError(t, os.WriteFile(path.Join(dataDir, "runplan.json"), []byte(oldSnapshot), 0600))

	store, err := training.NewStore(dataDir, testDefaults)
	require.NoError(t, err)

	weights, err := store.ListWeights(ctx)
	require.NoError(t, err)
	assert.Empty(t, weights)

	flags, err := store.MilestoneFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, training.MilestoneFlags{}, flags)

	// present fields kept, missing ones backfilled from defaults
	settings, err := store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", settings.PlanStart)
	assert.Equal(t, testDefaults.GoalWeightKg, settings.GoalWeightKg)
	assert.Equal(t, testDefaults.StartingWeightKg, settings.StartingWeightKg)
}

func TestStore_SaveWeight_SameDateOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.SaveWeight(ctx, training.Weight{Date: "2025-01-10", Kilos: 94})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := store.SaveWeight(ctx, training.Weight{Date: "2025-01-10", Kilos: 93.5, Note: gofakeit.Sentence(3)})
	require.NoError(t, err)
	// original ID preserved
	assert.Equal(t, first.ID, second.ID)

	weights, err := store.ListWeights(ctx)
	require.NoError(t, err)
	require.Len(t, weights, 1)
	assert.Equal(t, 93.5, weights[0].Kilos)

	require.NoError(t, store.DeleteWeight(ctx, first.ID))
	require.ErrorIs(t, store.DeleteWeight(ctx, first.ID), training.ErrWeightNotFound)
}

func TestStore_SetMilestoneFlags_Monotonic(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SetMilestoneFlags(ctx, training.MilestoneFlags{First10K: true, First15K: true}))

	// an all-false write cannot clear anything
	require.NoError(t, store.SetMilestoneFlags(ctx, training.MilestoneFlags{}))

	flags, err := store.MilestoneFlags(ctx)
	require.NoError(t, err)
	assert.True(t, flags.First10K)
	assert.True(t, flags.First15K)
	assert.False(t, flags.First20K)
}

func TestStore_ExportImport(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	added, err := store.AddRun(ctx, testRun("2025-01-08", 5, 1500))
	require.NoError(t, err)

	var exported bytes.Buffer
	require.NoError(t, store.Export(ctx, &exported))

	var snapshot map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(exported.Bytes(), &snapshot))
	for _, field := range []string{"runs", "weights", "settings", "milestones"} {
		assert.Contains(t, snapshot, field)
	}

	// import into a fresh store replaces its content wholesale
	other := newTestStore(t)
	_, err = other.AddRun(ctx, testRun("2025-02-01", 7, 2500))
	require.NoError(t, err)

	require.NoError(t, other.Import(ctx, bytes.NewReader(exported.Bytes())))

	runs, err := other.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, added.ID, runs[0].ID)
}

func TestStore_Import_RejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.AddRun(ctx, testRun("2025-01-08", 5, 1500))
	require.NoError(t, err)

	for name, payload := range map[string]string{
		"not json":         "definitely not json",
		"missing runs":     `{"weights":[],"settings":{}}`,
		"missing weights":  `{"runs":[],"settings":{}}`,
		"missing settings": `{"runs":[],"weights":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := store.Import(ctx, strings.NewReader(payload))
			require.ErrorIs(t, err, training.ErrInvalidSnapshot)
		})
	}

	// store content untouched after the rejections
	runs, err := store.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
