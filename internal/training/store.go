package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"sync"

	"github.com/2beens/runplan/internal/telemetry/tracing"
	"github.com/2beens/runplan/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const snapshotFileName = "runplan.json"

var (
	ErrRunNotFound     = errors.New("run not found")
	ErrWeightNotFound  = errors.New("weight entry not found")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Snapshot is the single persisted record. Exactly four top level fields;
// anything missing in a stored file is backfilled from defaults on read
// instead of being rejected.
type Snapshot struct {
	Runs       []Run          `json:"runs"`
	Weights    []Weight       `json:"weights"`
	Settings   Settings       `json:"settings"`
	Milestones MilestoneFlags `json:"milestones"`
}

// Store keeps the whole training log in memory and writes the full
// snapshot to a single JSON file after every mutation.
type Store struct {
	dataDir  string
	defaults Settings
	data     *Snapshot
	mutex    sync.RWMutex
}

func NewStore(dataDir string, defaults Settings) (*Store, error) {
	if dataDir == "" {
		return nil, errors.New("data dir cannot be empty")
	}
	snapshot, err := loadSnapshot(dataDir, defaults)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &Store{
		dataDir:  dataDir,
		defaults: defaults,
		data:     snapshot,
	}, nil
}

func dataDirExists(dataDir string) error {
	exists, err := pkg.PathExists(dataDir, true)
	if err != nil {
		return fmt.Errorf("check data dir %s: %w", dataDir, err)
	}
	if !exists {
		return fmt.Errorf("data dir [%s] does not exist", dataDir)
	}
	return nil
}

func loadSnapshot(dataDir string, defaults Settings) (*Snapshot, error) {
	if err := dataDirExists(dataDir); err != nil {
		return nil, err
	}

	snapshotPath := path.Join(dataDir, snapshotFileName)
	log.Debugf("loading training snapshot from: %s", snapshotPath)

	snapshotExists, err := pkg.PathExists(snapshotPath, false)
	if err != nil {
		return nil, fmt.Errorf("check snapshot file [%s]: %w", snapshotPath, err)
	}

	if !snapshotExists {
		log.Debugln("training snapshot does not exist, creating a fresh one ...")
		snapshot := &Snapshot{
			Runs:     []Run{},
			Weights:  []Weight{},
			Settings: defaults,
		}
		if err := saveSnapshot(dataDir, snapshot); err != nil {
			return nil, fmt.Errorf("fresh snapshot created, but failed to save: %w", err)
		}
		return snapshot, nil
	}

	snapshotJson, err := os.ReadFile(snapshotPath)
	if err != nil {
		return nil, err
	}
	var snapshot Snapshot
	if err := json.Unmarshal(snapshotJson, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	// backfill whatever an older snapshot version does not have
	if snapshot.Runs == nil {
		snapshot.Runs = []Run{}
	}
	if snapshot.Weights == nil {
		snapshot.Weights = []Weight{}
	}
	snapshot.Settings = reconcileSettings(defaults, snapshot.Settings)

	return &snapshot, nil
}

func saveSnapshot(dataDir string, snapshot *Snapshot) error {
	if err := dataDirExists(dataDir); err != nil {
		return err
	}

	snapshotJson, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	snapshotPath := path.Join(dataDir, snapshotFileName)
	if err := os.WriteFile(snapshotPath, snapshotJson, 0600); err != nil {
		return fmt.Errorf("write snapshot [%s]: %w", snapshotPath, err)
	}
	return nil
}

// persist must be called with the write lock held.
func (s *Store) persist() error {
	return saveSnapshot(s.dataDir, s.data)
}

func (s *Store) AddRun(ctx context.Context, run Run) (_ Run, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.addRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	s.data.Runs = append(s.data.Runs, run)

	if err := s.persist(); err != nil {
		return Run{}, err
	}

	log.Debugf("store: run [%s] added", run.ID)
	return run, nil
}

func (s *Store) UpdateRun(ctx context.Context, run Run) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.updateRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("run.id", run.ID))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.data.Runs {
		if s.data.Runs[i].ID == run.ID {
			s.data.Runs[i] = run
			return s.persist()
		}
	}
	return ErrRunNotFound
}

func (s *Store) DeleteRun(ctx context.Context, id string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.deleteRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("run.id", id))

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.data.Runs {
		if s.data.Runs[i].ID == id {
			s.data.Runs = append(s.data.Runs[:i], s.data.Runs[i+1:]...)
			return s.persist()
		}
	}
	return ErrRunNotFound
}

func (s *Store) GetRun(ctx context.Context, id string) (_ Run, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.getRun")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, run := range s.data.Runs {
		if run.ID == id {
			return run, nil
		}
	}
	return Run{}, ErrRunNotFound
}

// ListRuns returns a copy of all runs, date ascending. Runs sharing a
// date keep their insertion order.
func (s *Store) ListRuns(ctx context.Context) (_ []Run, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.listRuns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	runs := make([]Run, len(s.data.Runs))
	copy(runs, s.data.Runs)
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Date < runs[j].Date
	})
	return runs, nil
}

// SaveWeight inserts a weight entry, or overwrites the existing entry for
// the same date while preserving that entry's original ID.
func (s *Store) SaveWeight(ctx context.Context, weight Weight) (_ Weight, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.saveWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.data.Weights {
		if s.data.Weights[i].Date == weight.Date {
			weight.ID = s.data.Weights[i].ID
			s.data.Weights[i] = weight
			if err := s.persist(); err != nil {
				return Weight{}, err
			}
			log.Debugf("store: weight for [%s] overwritten", weight.Date)
			return weight, nil
		}
	}

	if weight.ID == "" {
		weight.ID = uuid.NewString()
	}
	s.data.Weights = append(s.data.Weights, weight)

	if err := s.persist(); err != nil {
		return Weight{}, err
	}
	return weight, nil
}

func (s *Store) DeleteWeight(ctx context.Context, id string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.deleteWeight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := range s.data.Weights {
		if s.data.Weights[i].ID == id {
			s.data.Weights = append(s.data.Weights[:i], s.data.Weights[i+1:]...)
			return s.persist()
		}
	}
	return ErrWeightNotFound
}

func (s *Store) ListWeights(ctx context.Context) (_ []Weight, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.listWeights")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	weights := make([]Weight, len(s.data.Weights))
	copy(weights, s.data.Weights)
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Date < weights[j].Date
	})
	return weights, nil
}

func (s *Store) GetSettings(ctx context.Context) (_ Settings, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.getSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return reconcileSettings(s.defaults, s.data.Settings), nil
}

func (s *Store) UpdateSettings(ctx context.Context, settings Settings) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.updateSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data.Settings = reconcileSettings(s.defaults, settings)
	return s.persist()
}

func (s *Store) MilestoneFlags(ctx context.Context) (_ MilestoneFlags, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.milestoneFlags")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.data.Milestones, nil
}

// SetMilestoneFlags merges the given flags into the stored ones.
// The merge only ever turns flags on, an already achieved milestone
// cannot be un-achieved through this call.
func (s *Store) SetMilestoneFlags(ctx context.Context, flags MilestoneFlags) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.setMilestoneFlags")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data.Milestones = s.data.Milestones.merge(flags)
	return s.persist()
}

// Export writes the full snapshot as JSON.
func (s *Store) Export(ctx context.Context, w io.Writer) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s.data)
}

// Import replaces the whole snapshot with the one read from r.
// The incoming document must carry the runs, weights and settings top
// level fields, otherwise it is rejected wholesale. A set-wise replace,
// never a merge.
func (s *Store) Import(ctx context.Context, r io.Reader) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	for _, required := range []string{"runs", "weights", "settings"} {
		if _, ok := fields[required]; !ok {
			return fmt.Errorf("%w: missing field [%s]", ErrInvalidSnapshot, required)
		}
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	if snapshot.Runs == nil {
		snapshot.Runs = []Run{}
	}
	if snapshot.Weights == nil {
		snapshot.Weights = []Weight{}
	}
	snapshot.Settings = reconcileSettings(s.defaults, snapshot.Settings)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data = &snapshot
	if err := s.persist(); err != nil {
		return err
	}

	log.Infof("store: snapshot imported, %d runs, %d weight entries", len(snapshot.Runs), len(snapshot.Weights))
	return nil
}
