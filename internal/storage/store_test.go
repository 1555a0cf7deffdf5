package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/record"
)

func filledRecord(t *testing.T) *record.Record {
	t.Helper()
	c, err := record.NewConstants(2, 0.5, 1.5)
	require.NoError(t, err)
	rec, err := record.FromTable(c, [][]float64{
		{0, 1, 11},
		{0.5, 2, 12},
		{1.5, 3, 13},
	})
	require.NoError(t, err)

	rec.PathActual.Set(1, 0, 2.25)
	rec.Field.Set(2, 1, -0.75)
	rec.State.Set(4, 2, complex(0.3, -0.4))
	rec.Noise.Mean.Set(0, 1, 10.9)
	rec.Noise.SD.Set(2, 0, 0.05)
	return rec
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	rec := filledRecord(t)
	runID, err := st.Save(rec, RunInfo{
		Label:   "circle",
		Solver:  "ideal",
		Trials:  8,
		Sigma:   0.1,
		Seed:    42,
		Metrics: map[string]float64{"tracking_rms": 1.5},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "circle", meta.Label)
	assert.Equal(t, "ideal", meta.Solver)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 3, meta.Points)
	assert.Equal(t, 1.5, meta.Duration())
	assert.Equal(t, rec.Const(), meta.Constants)
	assert.Equal(t, 1.5, meta.Metrics["tracking_rms"])

	got, err := st.LoadRecord(runID)
	require.NoError(t, err)
	assert.Equal(t, rec.Const(), got.Const())
	assert.Equal(t, rec.T, got.T)
	assert.True(t, mat.Equal(rec.PathDesired, got.PathDesired))
	assert.True(t, mat.Equal(rec.PathActual, got.PathActual))
	assert.True(t, mat.Equal(rec.Field, got.Field))
	assert.True(t, mat.Equal(rec.Noise.Mean, got.Noise.Mean))
	assert.True(t, mat.Equal(rec.Noise.SD, got.Noise.SD))
	assert.Equal(t, complex(0.3, -0.4), got.State.At(4, 2))
	assert.Equal(t, complex(0, 0), got.State.At(0, 0))
}

func TestStoreRejectsUninitialized(t *testing.T) {
	st := New(t.TempDir())
	empty, err := record.New(record.DefaultConstants())
	require.NoError(t, err)
	_, err = st.Save(empty, RunInfo{})
	assert.ErrorIs(t, err, record.ErrUninitialized)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	rec := filledRecord(t)
	first, err := st.Save(rec, RunInfo{Label: "a"})
	require.NoError(t, err)
	second, err := st.Save(rec, RunInfo{Label: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	ids := []string{runs[0].ID, runs[1].ID}
	assert.ElementsMatch(t, []string{first, second}, ids)
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	saved := snapshotWriter
	t.Cleanup(func() { snapshotWriter = saved })
	snapshotWriter = func(string, *record.Record) error { return errors.New("disk full") }

	_, err := st.Save(filledRecord(t), RunInfo{Label: "x"})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	runID, err := st.Save(filledRecord(t), RunInfo{Label: "x"})
	require.NoError(t, err)

	for _, name := range []string{metadataFile, pathFile, snapshotFile} {
		_, err := os.Stat(filepath.Join(dir, runID, name))
		assert.NoError(t, err, name)
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, pathFile))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Equal(t, "t,x_desired,y_desired,x_actual,y_actual,e_x,e_y,mean_x,mean_y,sd_x,sd_y", string(lines[0]))
	assert.Equal(t, "0.5,2,12,2.25,0,0,0,0,0,0,0", string(lines[2]))
}

func TestLoadRecordCorrupt(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	runID, err := st.Save(filledRecord(t), RunInfo{Label: "x"})
	require.NoError(t, err)

	path := filepath.Join(dir, runID, snapshotFile)
	require.NoError(t, os.WriteFile(path, []byte{0xc1, 0x00}, 0644))
	_, err = st.LoadRecord(runID)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	snap := newSnapshot(filledRecord(t))
	snap.Field = snap.Field[:1]
	require.NoError(t, writeRaw(path, snap))
	_, err = st.LoadRecord(runID)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)

	snap = newSnapshot(filledRecord(t))
	snap.Table[2][0] = 0
	require.NoError(t, writeRaw(path, snap))
	_, err = st.LoadRecord(runID)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
	assert.ErrorIs(t, err, record.ErrNonIncreasingTime)
}

func TestExportJSON(t *testing.T) {
	rec := filledRecord(t)
	meta := &RunMetadata{ID: "r1", Points: rec.N()}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, rec))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "r1", got.Run.ID)
	assert.Equal(t, []float64{0, 0.5, 1.5}, got.Times)
	assert.Equal(t, [2]float64{2, 12}, got.PathDesired[1])
	assert.Equal(t, [2]float64{2.25, 0}, got.PathActual[1])
	assert.Equal(t, [2]float64{0, -0.75}, got.Field[2])

	empty, err := record.New(record.DefaultConstants())
	require.NoError(t, err)
	assert.ErrorIs(t, ExportJSON(&buf, meta, empty), record.ErrUninitialized)
}
