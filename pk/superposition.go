package pk

import "math"

// SuperpositionSolver evaluates the closed-form one-compartment infusion
// solution and sums every dose's contribution. Valid by linearity of the
// governing ODE; must not be used when removal clearance varies with
// elapsed dose time (use DiscreteSolver instead — NewSolver enforces this).
type SuperpositionSolver struct {
	Model *Model
	Opts  SolverOptions
}

// Solve produces the trajectory on the configured grid.
func (sp *SuperpositionSolver) Solve(s Schedule) (*ConcentrationTrace, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	step := sp.Opts.stepMinutes()
	horizon := sp.Opts.horizon(s)
	n := int(horizon/step) + 1

	tr := &ConcentrationTrace{
		StepMinutes: step,
		Times:       make([]float64, n),
		Central:     make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tr.Times[i] = float64(i) * step
	}
	for _, d := range s.Doses {
		sp.addDose(tr, d)
	}
	return tr, nil
}

// addDose superposes one dose's closed-form contribution:
//
//	during infusion:  C(t) = (R / (Vd*ke)) * (1 - e^(-ke*t))
//	after infusion:   C(t) = Cpeak * e^(-ke*(t - dur))
//
// with t the elapsed time since the dose's start and R = amount/duration.
func (sp *SuperpositionSolver) addDose(tr *ConcentrationTrace, d DoseEvent) {
	ke := sp.Model.Kel
	vd := sp.Model.DistributionVolume()
	rate := d.Rate()
	peak := (rate / (vd * ke)) * (1 - math.Exp(-ke*d.DurationMinutes))

	for i, t := range tr.Times {
		elapsed := t - d.StartMinutes
		if elapsed < 0 {
			continue
		}
		if elapsed <= d.DurationMinutes {
			tr.Central[i] += (rate / (vd * ke)) * (1 - math.Exp(-ke*elapsed))
		} else {
			tr.Central[i] += peak * math.Exp(-ke*(elapsed-d.DurationMinutes))
		}
	}
}
