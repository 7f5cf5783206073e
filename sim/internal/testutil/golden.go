// Package testutil provides shared test infrastructure for the treasure map
// simulator. It holds the golden dataset types and their loader used by the
// sim/ sub-package tests.
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

// GoldenTestCase is one end-to-end map: the text input, the run policy and
// the exact text output expected.
type GoldenTestCase struct {
	Name           string `json:"name"`
	ConflictPolicy string `json:"conflict_policy"`
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	Ticks          int    `json:"ticks"`
	Stalled        bool   `json:"stalled"`
}

// TestdataDir returns the repository's testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataDir(t *testing.T) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata")
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	path := filepath.Join(TestdataDir(t), "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}

	return &dataset
}
