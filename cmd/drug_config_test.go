package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialysim/dialysim/pk/scenario"
)

func TestLoadDrugLibrary_Shipped(t *testing.T) {
	lib, err := LoadDrugLibrary(filepath.Join("..", DefaultDrugLibraryPath))
	require.NoError(t, err)

	assert.Equal(t, "1", lib.Version)
	for _, name := range []string{"caffeine", "acyclovir", "carbamazepine", "valproate", "methanol", "lithium", "vancomycin"} {
		entry, ok := lib.Drugs[name]
		require.True(t, ok, "preset %q missing", name)
		assert.Positive(t, entry.V1PerKg, "%s v1_per_kg", name)
		assert.Positive(t, entry.HalfLifeHours, "%s half_life_hours", name)
		assert.Positive(t, entry.KoA, "%s koa", name)
	}
	assert.Equal(t, 850.0, lib.Drugs["lithium"].KoA)
}

func TestLoadDrugLibrary_RejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
drugs:
  lithium:
    v1_per_kg: 0.3
    halflife_hours: 40
`), 0o644))

	_, err := LoadDrugLibrary(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "halflife_hours")
}

func TestLoadDrugLibrary_MissingFile(t *testing.T) {
	_, err := LoadDrugLibrary(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDrugLibraryResolve(t *testing.T) {
	lib := &DrugLibrary{Drugs: map[string]DrugEntry{
		"lithium": {V1PerKg: 0.3, V2PerKg: 0.6, QLPerMin: 0.15, HalfLifeHours: 40, KoA: 850},
	}}

	d := &scenario.DrugSpec{Preset: "lithium"}
	require.NoError(t, lib.Resolve(d))
	assert.Equal(t, 0.3, d.V1PerKg)
	assert.Equal(t, 40.0, d.HalfLifeHours)
	assert.Equal(t, 850.0, d.KoA)

	// inline values win over the preset
	d = &scenario.DrugSpec{Preset: "lithium", HalfLifeHours: 60}
	require.NoError(t, lib.Resolve(d))
	assert.Equal(t, 60.0, d.HalfLifeHours)
	assert.Equal(t, 0.3, d.V1PerKg)
}

func TestDrugLibraryResolve_UnknownPreset(t *testing.T) {
	lib := &DrugLibrary{Drugs: map[string]DrugEntry{"lithium": {}}}
	err := lib.Resolve(&scenario.DrugSpec{Preset: "polonium"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "polonium")
	assert.Contains(t, err.Error(), "lithium")
}

func TestDrugLibraryNames(t *testing.T) {
	lib := &DrugLibrary{Drugs: map[string]DrugEntry{"b": {}, "a": {}, "c": {}}}
	assert.Equal(t, []string{"a", "b", "c"}, lib.Names())
}
