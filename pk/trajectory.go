package pk

// Solver turns a schedule into a concentration trajectory. The two
// implementations trade generality for exactness: SuperpositionSolver is
// closed-form but only valid for one-compartment models with no removal
// windows; DiscreteSolver handles switching extracorporeal clearance and
// peripheral redistribution by explicit stepping.
type Solver interface {
	Solve(s Schedule) (*ConcentrationTrace, error)
}

// SolverOptions carry the grid shared by both strategies.
type SolverOptions struct {
	StepMinutes    float64 // grid spacing; 0 -> 1 minute
	HorizonMinutes float64 // trajectory length; 0 -> schedule horizon + 24 h
	Initial        State   // compartment amounts at t = 0
	Anchor         *Observation
}

func (o SolverOptions) stepMinutes() float64 {
	if o.StepMinutes <= 0 {
		return 1
	}
	return o.StepMinutes
}

func (o SolverOptions) horizon(s Schedule) float64 {
	if o.HorizonMinutes > 0 {
		return o.HorizonMinutes
	}
	return s.HorizonMinutes() + 24*60
}

// NewSolver selects the trajectory strategy for the model/schedule pair:
// the closed-form superposition path when linear-superposition assumptions
// hold, the discrete integrator otherwise.
func NewSolver(m *Model, s Schedule, opts SolverOptions) Solver {
	if m.OneCompartment() && len(s.Windows) == 0 && opts.Anchor == nil && opts.Initial == (State{}) {
		return &SuperpositionSolver{Model: m, Opts: opts}
	}
	return &DiscreteSolver{Model: m, Opts: opts}
}
