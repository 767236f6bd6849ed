package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/forestfire/internal/metrics"
)

func sampleCensus() []metrics.Census {
	return []metrics.Census{
		{Generation: 1, Empty: 90, Saplings: 6, Trees: 4},
		{Generation: 2, Empty: 88, Saplings: 5, Trees: 5, Burning: 1, Ash: 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Seed:     42,
		Width:    10,
		Height:   10,
		Steps:    2,
		FireProb: 0.1,
		Metrics:  map[string]float64{"peak_fire": 1},
	}

	runID, err := st.Save(meta, sampleCensus())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.ID != runID {
		t.Errorf("expected id %s, got %s", runID, got.ID)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Metrics["peak_fire"] != 1 {
		t.Errorf("expected peak_fire 1, got %f", got.Metrics["peak_fire"])
	}

	census, err := st.LoadCensus(runID)
	if err != nil {
		t.Fatalf("load census failed: %v", err)
	}
	want := sampleCensus()
	if len(census) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(census))
	}
	for i := range want {
		if census[i] != want[i] {
			t.Errorf("row %d: got %+v, want %+v", i, census[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	base := time.Unix(1700000000, 0)
	for i := 0; i < 2; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		st.now = func() time.Time { return ts }
		if _, err := st.Save(RunMetadata{Seed: uint32(i + 1)}, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	os.WriteFile(filepath.Join(tmpDir, "stray.txt"), []byte("x"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "not_a_run"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Seed != 1 || runs[1].Seed != 2 {
		t.Errorf("runs not ordered by time: %+v", runs)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Seed: 3}, sampleCensus())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "census.csv")); os.IsNotExist(err) {
		t.Error("census.csv not created")
	}
}

func TestLoadCensus_BadRow(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	runDir := filepath.Join(tmpDir, "broken")
	os.MkdirAll(runDir, 0755)
	data := "generation,empty,saplings,trees,burning,ash\n1,2,3,x,5,6\n"
	os.WriteFile(filepath.Join(runDir, "census.csv"), []byte(data), 0644)

	if _, err := st.LoadCensus("broken"); err == nil {
		t.Error("expected parse error")
	}
}

func TestStoreSave_SameSecondSameSeed(t *testing.T) {
	st := New(t.TempDir())
	ts := time.Unix(1700000000, 0)
	st.now = func() time.Time { return ts }

	first, err := st.Save(RunMetadata{Seed: 7, Steps: 2}, sampleCensus())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := st.Save(RunMetadata{Seed: 7, Steps: 1}, sampleCensus()[:1])
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first == second {
		t.Fatalf("both runs got id %s", first)
	}

	census, err := st.LoadCensus(first)
	if err != nil {
		t.Fatalf("load first: %v", err)
	}
	if len(census) != 2 {
		t.Errorf("first run was overwritten: %d rows", len(census))
	}
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}
