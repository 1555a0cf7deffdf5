package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/record"
)

const (
	metadataFile = "metadata.json"
	pathFile     = "path.csv"
	snapshotFile = "record.msgpack"
)

var ErrCorruptSnapshot = errors.New("storage: corrupt record snapshot")

var snapshotWriter = writeSnapshot

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a record was produced.
type RunInfo struct {
	Label   string
	Solver  string
	Trials  int
	Sigma   float64
	Seed    int64
	Metrics map[string]float64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Timestamp time.Time          `json:"timestamp"`
	Constants record.Constants   `json:"constants"`
	Points    int                `json:"points"`
	TStart    float64            `json:"t_start"`
	TEnd      float64            `json:"t_end"`
	Solver    string             `json:"solver"`
	Trials    int                `json:"trials"`
	Sigma     float64            `json:"sigma"`
	Seed      int64              `json:"seed"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (m RunMetadata) Duration() float64 {
	return m.TEnd - m.TStart
}

func (s *Store) Save(rec *record.Record, info RunInfo) (string, error) {
	if rec == nil || !rec.Initialized() {
		return "", record.ErrUninitialized
	}

	label := info.Label
	if label == "" {
		label = "run"
	}
	label = strings.ReplaceAll(label, string(filepath.Separator), "_")

	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%s", label, now.Format("20060102T150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Label:     info.Label,
		Timestamp: now,
		Constants: rec.Const(),
		Points:    rec.N(),
		TStart:    rec.T[0],
		TEnd:      rec.T[rec.N()-1],
		Solver:    info.Solver,
		Trials:    info.Trials,
		Sigma:     info.Sigma,
		Seed:      info.Seed,
		Metrics:   info.Metrics,
	}

	// metadata.json goes last: List only reports runs that have it.
	if err := writeRun(runDir, rec, meta); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, rec *record.Record, meta RunMetadata) error {
	if err := writePathCSV(filepath.Join(runDir, pathFile), rec); err != nil {
		return err
	}
	if err := snapshotWriter(filepath.Join(runDir, snapshotFile), rec); err != nil {
		return err
	}
	return writeMetadata(filepath.Join(runDir, metadataFile), meta)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

var pathHeader = []string{
	"t",
	"x_desired", "y_desired",
	"x_actual", "y_actual",
	"e_x", "e_y",
	"mean_x", "mean_y",
	"sd_x", "sd_y",
}

func writePathCSV(path string, rec *record.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(pathHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := 0; i < rec.N(); i++ {
		row := []string{format(rec.T[i])}
		for _, m := range []*mat.Dense{rec.PathDesired, rec.PathActual, rec.Field, rec.Noise.Mean, rec.Noise.SD} {
			row = append(row, format(m.At(i, 0)), format(m.At(i, 1)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadRecord rebuilds the saved record. The input table goes back through
// record.FromTable, so a restored record satisfies the same invariants as a
// fresh one.
func (s *Store) LoadRecord(runID string) (*record.Record, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, snapshotFile))
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return snap.restore()
}
