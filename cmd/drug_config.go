package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dialysim/dialysim/pk/scenario"
)

// DefaultDrugLibraryPath is the preset file shipped next to the binary.
const DefaultDrugLibraryPath = "drugs.yaml"

// DrugLibrary is the full drugs.yaml structure.
type DrugLibrary struct {
	Version string               `yaml:"version"`
	Drugs   map[string]DrugEntry `yaml:"drugs"`
}

// DrugEntry is one preset: compartment parameters, membrane coefficient,
// a typical ingestion/dose amount, and named toxicity thresholds (mg/L)
// for chart reference bands.
type DrugEntry struct {
	V1PerKg       float64            `yaml:"v1_per_kg"`
	V2PerKg       float64            `yaml:"v2_per_kg"`
	QLPerMin      float64            `yaml:"q_l_per_min"`
	HalfLifeHours float64            `yaml:"half_life_hours"`
	KoA           float64            `yaml:"koa"`
	TypicalDoseMg float64            `yaml:"typical_dose_mg,omitempty"`
	Thresholds    map[string]float64 `yaml:"thresholds,omitempty"`
	Note          string             `yaml:"note,omitempty"`
}

// LoadDrugLibrary parses a drug preset file with strict field checking so
// typos surface as errors rather than silently zeroed parameters.
func LoadDrugLibrary(path string) (*DrugLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading drug library: %w", err)
	}
	var lib DrugLibrary
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&lib); err != nil {
		return nil, fmt.Errorf("parsing drug library: %w", err)
	}
	return &lib, nil
}

// Resolve fills a scenario drug spec from the named preset, leaving any
// field the scenario already set inline untouched.
func (l *DrugLibrary) Resolve(d *scenario.DrugSpec) error {
	entry, ok := l.Drugs[d.Preset]
	if !ok {
		return fmt.Errorf("unknown drug preset %q; valid: %v", d.Preset, l.Names())
	}
	if d.V1PerKg == 0 {
		d.V1PerKg = entry.V1PerKg
	}
	if d.V2PerKg == 0 {
		d.V2PerKg = entry.V2PerKg
	}
	if d.QLPerMin == 0 {
		d.QLPerMin = entry.QLPerMin
	}
	if d.HalfLifeHours == 0 {
		d.HalfLifeHours = entry.HalfLifeHours
	}
	if d.KoA == 0 {
		d.KoA = entry.KoA
	}
	return nil
}

// Names lists the presets in stable order.
func (l *DrugLibrary) Names() []string {
	names := make([]string, 0, len(l.Drugs))
	for name := range l.Drugs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
