// Package testutil provides shared test infrastructure for the dialysim
// engine: the golden scenario dataset and float assertion helpers used by
// pk/ and pk/scenario/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldenscenarios.json.
type GoldenDataset struct {
	Scenarios []GoldenScenario `json:"scenarios"`
}

// GoldenScenario is one end-to-end case: a scenario YAML file under
// testdata/ plus the expected scalar outcomes with per-field tolerances
// baked into the assertions.
type GoldenScenario struct {
	Name     string         `json:"name"`
	Scenario string         `json:"scenario"` // YAML path relative to testdata/
	Expected GoldenExpected `json:"expected"`
}

// GoldenExpected holds the scalar expectations checked for a scenario.
// Zero-valued fields are skipped.
type GoldenExpected struct {
	KelPerMin         float64 `json:"kel_per_min,omitempty"`
	HalfLifeHours     float64 `json:"half_life_hours,omitempty"`
	ClearanceLPerHour float64 `json:"clearance_l_per_hour,omitempty"`
	SuggestedDoseMg   float64 `json:"suggested_dose_mg,omitempty"`
	RawDoseMg         float64 `json:"raw_dose_mg,omitempty"`
	AUC24             float64 `json:"auc24,omitempty"`
	FitLowConfidence  bool    `json:"fit_low_confidence,omitempty"`
}

// LoadGoldenDataset loads the golden dataset, resolving the path relative
// to this source file: pk/internal/testutil/ → repo root testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenscenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// TestdataPath resolves a path under the repo root testdata/ directory.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
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
