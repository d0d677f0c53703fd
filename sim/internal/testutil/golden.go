// Package testutil provides shared test infrastructure for the simulator.
// It holds the golden scenario dataset types and loading helpers used by
// the sim/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single scenario from the golden dataset.
type GoldenTestCase struct {
	Name            string  `json:"name"`
	Population      int64   `json:"population"`
	InitialInfected int64   `json:"initial_infected"`
	Beta            float64 `json:"beta"`
	Gamma           float64 `json:"gamma"`
	Dt              float64 `json:"dt"`
	Start           int64   `json:"start"`
	End             int64   `json:"end"`
	Replicates      int     `json:"replicates"`
	Seed            int64   `json:"seed"`

	Expect GoldenExpect `json:"expect"`
}

// GoldenExpect holds the structural expectations for a scenario.
// Trajectory values are stochastic; what is pinned down is the output
// shape, the initial state, and the conserved total.
type GoldenExpect struct {
	Rows        int   `json:"rows"`
	DataColumns int   `json:"data_columns"`
	InitialS    int64 `json:"initial_s"`
	InitialI    int64 `json:"initial_i"`
	InitialR    int64 `json:"initial_r"`
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
