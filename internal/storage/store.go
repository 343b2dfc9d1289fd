// Package storage persists run diagnostics (metadata, the psi time
// series, and a final particle snapshot) under a data directory, one
// subdirectory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/duncanam/particle-interactions-puzzle/internal/vicsek"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Params    vicsek.Params      `json:"params"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run: metadata.json, psi.csv (time, psi per step) and
// particles.csv (final x, y, u, v). Returns the generated run ID.
func (s *Store) Save(p vicsek.Params, seed int64, times, psi []float64, runMetrics map[string]float64, x, y, u, v []float64) (string, error) {
	runID := fmt.Sprintf("flock_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Seed:      seed,
		Params:    p,
		Steps:     len(psi),
		Metrics:   runMetrics,
	}

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

	if err := writeCSV(filepath.Join(runDir, "psi.csv"), []string{"time", "psi"}, times, psi); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, "particles.csv"), []string{"x", "y", "u", "v"}, x, y, u, v); err != nil {
		return "", err
	}

	return runID, nil
}

func writeCSV(path string, header []string, cols ...[]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}

	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0])
	}
	for i := 0; i < rows; i++ {
		row := make([]string, len(cols))
		for c := range cols {
			row[c] = strconv.FormatFloat(cols[c][i], 'f', 6, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func readCSV(path string, wantCols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv: %s", path)
	}

	cols := make([][]float64, wantCols)
	for _, record := range records[1:] {
		if len(record) < wantCols {
			return nil, fmt.Errorf("short row in %s", path)
		}
		for c := 0; c < wantCols; c++ {
			val, err := strconv.ParseFloat(record[c], 64)
			if err != nil {
				return nil, err
			}
			cols[c] = append(cols[c], val)
		}
	}
	return cols, nil
}

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

// LoadSeries returns the psi time series of a run as (times, psi).
func (s *Store) LoadSeries(runID string) ([]float64, []float64, error) {
	cols, err := readCSV(filepath.Join(s.baseDir, runID, "psi.csv"), 2)
	if err != nil {
		return nil, nil, err
	}
	return cols[0], cols[1], nil
}

// LoadParticles returns the final particle snapshot of a run.
func (s *Store) LoadParticles(runID string) (x, y, u, v []float64, err error) {
	cols, err := readCSV(filepath.Join(s.baseDir, runID, "particles.csv"), 4)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cols[0], cols[1], cols[2], cols[3], nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip partial or foreign directories
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}
