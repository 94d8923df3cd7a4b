package pk

import (
	"math"

	"github.com/sirupsen/logrus"
)

// FitOptions bound the kel search. Zero values select the defaults: a
// physiological half-life interval of 1 h to 1000 h and 20 bisection
// iterations.
type FitOptions struct {
	MinHalfLifeHours float64
	MaxHalfLifeHours float64
	Iterations       int
	StepMinutes      float64 // simulation grid for fit iterations
}

func (o FitOptions) bounds() (loKel, hiKel float64) {
	minHL, maxHL := o.MinHalfLifeHours, o.MaxHalfLifeHours
	if minHL <= 0 {
		minHL = 1
	}
	if maxHL <= minHL {
		maxHL = 1000
	}
	// kel is decreasing in half-life, so the long half-life bounds kel below
	return math.Ln2 / (maxHL * 60), math.Ln2 / (minHL * 60)
}

// Fit is the result of inverting one observation into an elimination rate
// constant. LowConfidence travels as metadata, never as an error: the
// surrounding tooling always has a best-effort model to render.
type Fit struct {
	Kel           float64
	HalfLifeHours float64
	Predicted     float64 // model concentration at the observation time
	// LowConfidence marks a boundary-pinned search: the observation lies
	// outside what any in-bounds kel can produce for this schedule.
	LowConfidence bool
}

// FitEliminationRate recovers the single unknown kel such that the simulated
// concentration at the observation time reproduces the measurement, by
// bisection over a bounded physiological interval. The predicted
// concentration at a fixed time is monotonically decreasing in kel for the
// linear models in scope, which is what makes plain bisection valid.
//
// Each candidate costs one full simulation, so the horizon is trimmed to
// just past the observation — the dominant cost saving for interactive use.
func FitEliminationRate(m *Model, s Schedule, obs Observation, opts FitOptions) (*Model, Fit) {
	loKel, hiKel := opts.bounds()
	step := opts.StepMinutes
	if step <= 0 {
		step = 1
	}
	horizon := obs.TimeMinutes + step

	predict := func(kel float64) float64 {
		solver := NewSolver(m.WithKel(kel), s, SolverOptions{StepMinutes: step, HorizonMinutes: horizon})
		tr, err := solver.Solve(s)
		if err != nil {
			// schedule was validated by the caller's baseline run; a failure
			// here means the fit target is meaningless
			logrus.Warnf("fit simulation failed: %v", err)
			return 0
		}
		return tr.At(obs.TimeMinutes)
	}

	res := BisectDecreasing(predict, obs.Concentration, loKel, hiKel, opts.Iterations)
	fitted := m.WithKel(res.Value)
	fit := Fit{
		Kel:           res.Value,
		HalfLifeHours: fitted.HalfLifeHours(),
		Predicted:     predict(res.Value),
		LowConfidence: res.BoundaryPinned,
	}
	logrus.Debugf("fitted kel=%.6g/min (t1/2=%.3gh) pinned=%v predicted=%.4g observed=%.4g",
		fit.Kel, fit.HalfLifeHours, fit.LowConfidence, fit.Predicted, obs.Concentration)
	return fitted, fit
}
