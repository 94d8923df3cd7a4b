package renal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCockcroftGault(t *testing.T) {
	male := Patient{AgeYears: 60, WeightKg: 72, SerumCrMgDL: 1.0}
	// ((140-60)*72)/(72*1.0) = 80
	assert.InDelta(t, 80.0, CockcroftGault(male), 1e-9)

	female := male
	female.Female = true
	assert.InDelta(t, 68.0, CockcroftGault(female), 1e-9)
}

func TestEGFR(t *testing.T) {
	male := Patient{AgeYears: 50, SerumCrMgDL: 1.0}
	want := 194 * math.Pow(50, -0.287)
	assert.InDelta(t, want, EGFR(male), 1e-9)

	female := male
	female.Female = true
	assert.InDelta(t, want*0.739, EGFR(female), 1e-9)
}

func TestVancomycinKelPerHour(t *testing.T) {
	assert.InDelta(t, 0.00083*80+0.0044, VancomycinKelPerHour(80, 0), 1e-12)
	assert.InDelta(t, (0.00083*80+0.0044)*1.2, VancomycinKelPerHour(80, 1.2), 1e-12)
	// anuric floor: intercept only
	assert.InDelta(t, 0.0044, VancomycinKelPerHour(0, 1), 1e-12)
}

func TestVancomycinModel(t *testing.T) {
	p := Patient{AgeYears: 60, WeightKg: 72, SerumCrMgDL: 1.0}
	m, err := VancomycinModel(p, 0, 0)
	require.NoError(t, err)

	assert.True(t, m.OneCompartment())
	assert.InDelta(t, 0.7*72, m.DistributionVolume(), 1e-9)

	kelH := VancomycinKelPerHour(CockcroftGault(p), 1)
	assert.InDelta(t, math.Ln2/kelH, m.HalfLifeHours(), 1e-9)
	assert.InDelta(t, kelH/60, m.Kel, 1e-12)
}

func TestVancomycinModel_CustomVd(t *testing.T) {
	p := Patient{AgeYears: 60, WeightKg: 72, SerumCrMgDL: 1.0}
	m, err := VancomycinModel(p, 0.9, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.9*72, m.DistributionVolume(), 1e-9)
}

func TestSuggestedIntervalHours(t *testing.T) {
	assert.Equal(t, 12.0, SuggestedIntervalHours(90))
	assert.Equal(t, 12.0, SuggestedIntervalHours(60.5))
	assert.Equal(t, 24.0, SuggestedIntervalHours(60))
	assert.Equal(t, 24.0, SuggestedIntervalHours(40))
	assert.Equal(t, 48.0, SuggestedIntervalHours(39.9))
	assert.Equal(t, 48.0, SuggestedIntervalHours(20))
	assert.Equal(t, 72.0, SuggestedIntervalHours(10))
}
