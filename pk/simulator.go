package pk

import (
	"github.com/sirupsen/logrus"
)

// Observation is a single measured concentration. The fitter solves against
// it; the simulator can optionally anchor its state to it.
type Observation struct {
	TimeMinutes   float64
	Concentration float64 // mg/L
}

// RunStats records integrator behavior for one Solve call. ClampCount and
// WorstOvershoot expose the non-negative guard: the clamp should only ever
// engage near a zero-crossing, so a materially negative pre-clamp amount
// indicates an upstream parameter or step-size defect.
type RunStats struct {
	Steps          int
	ClampCount     int
	WorstOvershoot float64 // most negative pre-clamp amount seen (mg, <= 0)
}

// DiscreteSolver steps central and peripheral amounts (A1, A2) on a uniform
// grid. Per step:
//
//	transfer  = (k21*A2 - k12*A1) * dt
//	elim      = kel*A1 * dt
//	removal   = (A1/V1) * activeClearance(t) * dt
//	input     = activeInfusionRate(t) * dt
//	A1 <- clampNonneg(A1 + transfer - elim - removal + input)
//	A2 <- clampNonneg(A2 - transfer)
//
// Clamping after every step is a stability safeguard against explicit-Euler
// overshoot when dt is not small relative to the fastest rate constant;
// coarser grids need the same guard. Before the first removal window opens
// the recursion runs identically with zero removal, which is the pre-roll
// producing a realistic pre-treatment state.
type DiscreteSolver struct {
	Model *Model
	Opts  SolverOptions
	Stats RunStats // filled by Solve
}

// Solve integrates the schedule and returns the trajectory.
func (ds *DiscreteSolver) Solve(s Schedule) (*ConcentrationTrace, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := ds.Model
	dt := ds.Opts.stepMinutes()
	horizon := ds.Opts.horizon(s)
	n := int(horizon/dt) + 1

	tr := &ConcentrationTrace{
		StepMinutes: dt,
		Times:       make([]float64, n),
		Central:     make([]float64, n),
	}
	if !m.OneCompartment() {
		tr.Peripheral = make([]float64, n)
	}

	st := ds.Opts.Initial
	ds.Stats = RunStats{}
	var anchorIdx = -1
	if ds.Opts.Anchor != nil {
		anchorIdx = int(ds.Opts.Anchor.TimeMinutes/dt + 0.5)
	}

	logrus.Debugf("discrete solve: dt=%.3gmin horizon=%.4gmin doses=%d windows=%d",
		dt, horizon, len(s.Doses), len(s.Windows))

	for i := 0; i < n; i++ {
		t := float64(i) * dt

		if i == anchorIdx {
			st = ds.anchorState(st, ds.Opts.Anchor.Concentration)
		}

		tr.Times[i] = t
		tr.Central[i] = st.Central / m.V1
		if tr.Peripheral != nil {
			tr.Peripheral[i] = st.Peripheral / m.V2
		}

		transfer := (m.K21*st.Peripheral - m.K12*st.Central) * dt
		elim := m.Kel * st.Central * dt
		removal := (st.Central / m.V1) * s.RemovalClearanceAt(t) * dt
		input := s.InfusionRateAt(t) * dt

		st.Central = ds.clamp(st.Central + transfer - elim - removal + input)
		st.Peripheral = ds.clamp(st.Peripheral - transfer)
		ds.Stats.Steps++
	}
	return tr, nil
}

// anchorState rescales the state so the central concentration matches a
// measured value, scaling the peripheral amount by the same ratio to keep
// the distribution plausible.
func (ds *DiscreteSolver) anchorState(st State, measured float64) State {
	current := st.Central / ds.Model.V1
	if current > 0 {
		ratio := measured / current
		return State{Central: measured * ds.Model.V1, Peripheral: st.Peripheral * ratio}
	}
	return State{Central: measured * ds.Model.V1, Peripheral: st.Peripheral}
}

func (ds *DiscreteSolver) clamp(amount float64) float64 {
	if amount < 0 {
		ds.Stats.ClampCount++
		if amount < ds.Stats.WorstOvershoot {
			ds.Stats.WorstOvershoot = amount
		}
		return 0
	}
	return amount
}
