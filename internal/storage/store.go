// Package storage keeps a history of batch renders on disk. Each run is a
// directory holding metadata.json and, when metrics were collected, the
// escape-time histogram as histogram.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	CenterRe  float64            `json:"center_re"`
	CenterIm  float64            `json:"center_im"`
	ViewW     float64            `json:"view_width"`
	ViewH     float64            `json:"view_height"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Mode      string             `json:"mode"`
	Budget    int                `json:"budget"`
	Threshold float64            `json:"threshold"`
	Workers   int                `json:"workers"`
	Output    string             `json:"output"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Run is a finished render ready to be recorded.
type Run struct {
	Meta RunMetadata
	// Histogram holds escape counts per bin; BinWidth is iterations per bin.
	Histogram []float64
	BinWidth  float64
}

// Save writes run under a new id and returns it.
func (s *Store) Save(run *Run) (string, error) {
	now := time.Now()
	name := run.Meta.Preset
	if name == "" {
		name = "render"
	}
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := run.Meta
	meta.ID = runID
	meta.Timestamp = now

	if err := writeRun(runDir, meta, run); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, run *Run) error {
	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	if len(run.Histogram) == 0 {
		return nil
	}

	csvFile, err := os.Create(filepath.Join(runDir, "histogram.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"iteration", "count"}); err != nil {
		return err
	}
	for i, n := range run.Histogram {
		row := []string{
			strconv.FormatFloat(float64(i)*run.BinWidth, 'f', -1, 64),
			strconv.FormatFloat(n, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Unreadable entries are skipped.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadHistogram reads the histogram of a run. A run without one yields
// an empty slice.
func (s *Store) LoadHistogram(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "histogram.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return []float64{}, nil
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	counts := make([]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		n, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: histogram: %w", runID, err)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// ExportData is the self-contained JSON form of a run.
type ExportData struct {
	RunMetadata
	Histogram []float64 `json:"histogram,omitempty"`
}

// ExportJSON writes the run and its histogram to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	hist, err := s.LoadHistogram(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Histogram: hist})
}
