// Package testutil provides shared test infrastructure for the scheduling simulator.
// It consolidates golden dataset types and assertion helpers used across
// the sim/ and api/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Processes []GoldenProcess  `json:"processes"`
	Tests     []GoldenTestCase `json:"tests"`
}

// GoldenProcess is one input row of the golden workload.
type GoldenProcess struct {
	ID       int   `json:"id"`
	Arrival  int64 `json:"arrival"`
	Burst    int64 `json:"burst"`
	Priority int   `json:"priority"`
}

// GoldenTestCase represents a single policy run over the golden workload.
type GoldenTestCase struct {
	Name        string         `json:"name"`
	Policy      string         `json:"policy"`
	Quantum     int64          `json:"quantum"`
	Levels      int            `json:"levels"`
	AgingFactor int64          `json:"aging_factor"`
	Expected    GoldenExpected `json:"expected"`
}

// GoldenExpected holds the expected per-process results, in input order.
type GoldenExpected struct {
	// Exact match metrics (integers)
	Waiting    []int64 `json:"waiting"`
	Turnaround []int64 `json:"turnaround"`
	Response   []int64 `json:"response"`
	Completion []int64 `json:"completion"`
	EndTime    int64   `json:"end_time"`

	AvgWaiting    float64 `json:"avg_waiting"`
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgResponse   float64 `json:"avg_response"`

	// Merged Gantt bars as [process id, start, end].
	Gantt [][3]int64 `json:"gantt"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
