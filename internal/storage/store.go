// Package storage persists completed simulation runs: one directory per
// run holding metadata.json and the sampled state trace as trace.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/quadsim/internal/quad"
	"github.com/san-kum/quadsim/internal/sim"
)

var traceHeader = []string{
	"time",
	"x", "y", "z",
	"vx", "vy", "vz",
	"roll", "pitch", "yaw",
	"p", "q", "r",
	"thrust", "torque_roll", "torque_pitch", "torque_yaw",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Mission   string             `json:"mission"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Steps     int                `json:"steps"`
	Mass      float64            `json:"mass"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory and returns its id.
func (s *Store) Save(meta RunMetadata, entries []sim.Entry) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Mission, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(traceHeader); err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := w.Write(traceRow(e)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func traceRow(e sim.Entry) []string {
	st := e.State
	vals := []float64{
		e.Time,
		st.X, st.Y, st.Z,
		st.VX, st.VY, st.VZ,
		st.Roll, st.Pitch, st.Yaw,
		st.P, st.Q, st.R,
		st.Thrust, st.TorqueRoll, st.TorquePitch, st.TorqueYaw,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return row
}

// List returns metadata for every stored run. A missing base directory
// is an empty store, not an error.
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

	return runs, nil
}

// Load reads one run's metadata.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads one run's sampled state trace.
func (s *Store) LoadTrace(runID string) ([]sim.Entry, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Entry{}, nil
	}

	out := make([]sim.Entry, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(traceHeader) {
			return nil, fmt.Errorf("storage: malformed trace row with %d fields", len(record))
		}
		vals := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad trace value %q: %w", field, err)
			}
			vals[i] = v
		}
		out = append(out, sim.Entry{
			Time: vals[0],
			State: quad.State{
				X: vals[1], Y: vals[2], Z: vals[3],
				VX: vals[4], VY: vals[5], VZ: vals[6],
				Roll: vals[7], Pitch: vals[8], Yaw: vals[9],
				P: vals[10], Q: vals[11], R: vals[12],
				Thrust: vals[13], TorqueRoll: vals[14], TorquePitch: vals[15], TorqueYaw: vals[16],
			},
		})
	}

	return out, nil
}

// TracePath returns the on-disk location of a run's csv trace.
func (s *Store) TracePath(runID string) string {
	return filepath.Join(s.baseDir, runID, "trace.csv")
}
