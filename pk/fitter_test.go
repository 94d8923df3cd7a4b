package pk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitEliminationRate_RoundTrip(t *testing.T) {
	// Synthesize an observation from a known model, then recover kel from
	// that single point.
	truth := vcmModel(t)
	s := Schedule{Doses: []DoseEvent{{AmountMg: 1000, StartMinutes: 0, DurationMinutes: 60}}}
	tr, err := (&DiscreteSolver{Model: truth, Opts: SolverOptions{HorizonMinutes: 12 * 60}}).Solve(s)
	require.NoError(t, err)

	obs := Observation{TimeMinutes: 10 * 60, Concentration: tr.At(10 * 60)}
	start := truth.WithKel(0.001) // deliberately wrong prior
	fitted, fit := FitEliminationRate(start, s, obs, FitOptions{})

	assert.InDelta(t, truth.Kel, fit.Kel, 1e-6)
	assert.InDelta(t, 70.0, fit.HalfLifeHours, 0.1)
	assert.InDelta(t, obs.Concentration, fit.Predicted, obs.Concentration*1e-3)
	assert.False(t, fit.LowConfidence)
	assert.Equal(t, fit.Kel, fitted.Kel)
	// fixed parameters survive the fit untouched
	assert.Equal(t, truth.V1, fitted.V1)
	assert.Equal(t, truth.K12, fitted.K12)
}

func TestFitEliminationRate_RoundTripWithRemovalWindow(t *testing.T) {
	truth := vcmModel(t)
	s := Schedule{
		Doses:   []DoseEvent{{AmountMg: 1000, StartMinutes: 0, DurationMinutes: 60}},
		Windows: []RemovalWindow{{StartMinutes: 120, EndMinutes: 360, ClearanceLPerMin: 0.15}},
	}
	tr, err := (&DiscreteSolver{Model: truth, Opts: SolverOptions{HorizonMinutes: 10 * 60}}).Solve(s)
	require.NoError(t, err)

	obs := Observation{TimeMinutes: 480, Concentration: tr.At(480)}
	_, fit := FitEliminationRate(truth, s, obs, FitOptions{})

	assert.InDelta(t, truth.Kel, fit.Kel, 1e-6)
	assert.False(t, fit.LowConfidence)
}

func TestFitEliminationRate_LowConfidenceAboveRange(t *testing.T) {
	// An observed level no in-range kel can reach (higher than the peak the
	// slowest-eliminating model would still show) pins the search and flags
	// low confidence instead of erroring.
	m := vcmModel(t)
	s := Schedule{Doses: []DoseEvent{{AmountMg: 1000, StartMinutes: 0, DurationMinutes: 60}}}
	obs := Observation{TimeMinutes: 600, Concentration: 500}

	fitted, fit := FitEliminationRate(m, s, obs, FitOptions{})
	assert.True(t, fit.LowConfidence)
	assert.NotNil(t, fitted)
	assert.Positive(t, fitted.Kel)
}

func TestFitEliminationRate_LowConfidenceBelowRange(t *testing.T) {
	// A near-zero observed level shortly after the dose demands faster decay
	// than the 1-hour half-life floor allows.
	m := vcmModel(t)
	s := Schedule{Doses: []DoseEvent{{AmountMg: 1000, StartMinutes: 0, DurationMinutes: 30}}}
	obs := Observation{TimeMinutes: 60, Concentration: 1e-9}

	_, fit := FitEliminationRate(m, s, obs, FitOptions{})
	assert.True(t, fit.LowConfidence)
}

func TestFitOptions_Bounds(t *testing.T) {
	lo, hi := FitOptions{}.bounds()
	assert.InDelta(t, 0.693147/(1000*60), lo, 1e-9)
	assert.InDelta(t, 0.693147/60, hi, 1e-7)

	lo, hi = FitOptions{MinHalfLifeHours: 10, MaxHalfLifeHours: 100}.bounds()
	assert.InDelta(t, 0.693147/(100*60), lo, 1e-9)
	assert.InDelta(t, 0.693147/(10*60), hi, 1e-9)
}
