package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/forestfire/internal/metrics"
)

var censusHeader = []string{"generation", "empty", "saplings", "trees", "burning", "ash"}

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a headless run. Only statistics are archived, never
// the world itself.
type RunMetadata struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint32             `json:"seed"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Steps       int                `json:"steps"`
	Preset      string             `json:"preset,omitempty"`
	SaplingProb float64            `json:"sapling_prob"`
	SpreadProb  float64            `json:"spread_prob"`
	FireProb    float64            `json:"fire_prob"`
	Metrics     map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, census []metrics.Census) (string, error) {
	ts := s.now()
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	// Runs saved in the same second with the same seed get a counter suffix;
	// an existing run directory is never reused.
	base := fmt.Sprintf("run_%d_%d", ts.Unix(), meta.Seed)
	runID := base
	runDir := filepath.Join(s.baseDir, runID)
	for n := 1; ; n++ {
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
		runDir = filepath.Join(s.baseDir, runID)
	}

	meta.ID = runID
	meta.Timestamp = ts

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "census.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(censusHeader); err != nil {
		return "", err
	}
	for _, c := range census {
		row := []string{
			strconv.FormatUint(c.Generation, 10),
			strconv.Itoa(c.Empty),
			strconv.Itoa(c.Saplings),
			strconv.Itoa(c.Trees),
			strconv.Itoa(c.Burning),
			strconv.Itoa(c.Ash),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadCensus(runID string) ([]metrics.Census, error) {
	csvPath := filepath.Join(s.baseDir, runID, "census.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(censusHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []metrics.Census{}, nil
	}

	out := make([]metrics.Census, 0, len(records)-1)
	for i, record := range records[1:] {
		var c metrics.Census
		gen, err := strconv.ParseUint(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("census row %d: %w", i+1, err)
		}
		c.Generation = gen
		fields := []*int{&c.Empty, &c.Saplings, &c.Trees, &c.Burning, &c.Ash}
		for j, dst := range fields {
			v, err := strconv.Atoi(record[j+1])
			if err != nil {
				return nil, fmt.Errorf("census row %d: %w", i+1, err)
			}
			*dst = v
		}
		out = append(out, c)
	}

	return out, nil
}
