package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dialysim/dialysim/pk"
)

// Result bundles every trajectory and scalar the pipeline produces. Optional
// members are nil when their inputs were absent from the spec.
type Result struct {
	Model       *pk.Model
	FittedModel *pk.Model // non-nil when an observation was fitted
	Fit         *pk.Fit
	Advice      *pk.Advice

	Baseline  *pk.ConcentrationTrace
	NoRemoval *pk.ConcentrationTrace // dialysis scenarios: counterfactual without the device
	Fitted    *pk.ConcentrationTrace // re-simulated with fitted kel, anchored to the measurement
	Revised   *pk.ConcentrationTrace // advisor's comparison trajectory

	Summary Summary
}

// Summary is the scalar digest rendered next to the chart.
type Summary struct {
	HalfLifeHours          float64
	ClearanceLPerHour      float64
	DialyzerClearanceMLMin float64
	PeakMgPerL             float64
	PeakAtMinutes          float64
	AUC24                  float64 // first 24 h of the governing trajectory
	// Pre-session troughs of the governing trajectory, one per dialysis
	// session, in session order.
	SessionTroughs []float64
	// Overdose-style dialysis effect: percent concentration reduction at
	// 24 h versus the no-removal counterfactual, and the rebound one hour
	// after the first session ends.
	ReductionPercent24h float64
	ReboundMgPerL       float64

	SuggestedDoseMg  float64
	FitLowConfidence bool
}

// Run executes the full pipeline: validate, simulate the baseline, fit the
// observation if present, advise on the target if present, and summarize.
func (s *Spec) Run() (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	model, err := pk.NewModel(s.Drug.Params(), s.Patient.WeightKg)
	if err != nil {
		return nil, err
	}

	sched := s.schedule()
	opts := pk.SolverOptions{
		StepMinutes:    s.StepMinutes,
		HorizonMinutes: s.HorizonHours * 60,
	}
	if s.InitialAmountMg > 0 {
		opts.Initial = model.DistributeBolus(s.InitialAmountMg)
	}

	res := &Result{Model: model}
	res.Baseline, err = pk.NewSolver(model, sched, opts).Solve(sched)
	if err != nil {
		return nil, fmt.Errorf("baseline simulation: %w", err)
	}

	if len(sched.Windows) > 0 {
		noHD := pk.Schedule{Doses: sched.Doses}
		res.NoRemoval, err = pk.NewSolver(model, noHD, opts).Solve(noHD)
		if err != nil {
			return nil, fmt.Errorf("no-removal counterfactual: %w", err)
		}
	}

	governing := model
	governingTrace := res.Baseline

	if s.Observation != nil {
		obs := pk.Observation{TimeMinutes: s.Observation.TimeMinutes, Concentration: s.Observation.Concentration}
		fitted, fit := pk.FitEliminationRate(model, sched, obs, pk.FitOptions{StepMinutes: s.StepMinutes})
		res.FittedModel, res.Fit = fitted, &fit
		if fit.LowConfidence {
			logrus.Warnf("observation %.4g mg/L at %.0f min is outside the fittable range; fit pinned at a search boundary", obs.Concentration, obs.TimeMinutes)
		}

		anchored := opts
		anchored.Anchor = &obs
		res.Fitted, err = pk.NewSolver(fitted, sched, anchored).Solve(sched)
		if err != nil {
			return nil, fmt.Errorf("fitted simulation: %w", err)
		}
		governing, governingTrace = fitted, res.Fitted
	}

	if s.Target != nil {
		advOpts := pk.AdvisorOptions{
			RoundToMg:       s.Target.RoundToMg,
			IntervalHours:   s.Target.IntervalHours,
			FromMinutes:     s.Target.FromMinutes,
			TroughAtMinutes: s.Target.TroughAtMinutes,
			Solver:          opts,
		}
		if s.Observation != nil {
			advOpts.Solver.Anchor = &pk.Observation{TimeMinutes: s.Observation.TimeMinutes, Concentration: s.Observation.Concentration}
		}
		advice, err := pk.AdviseDose(governing, sched, governingTrace, pk.Target{Kind: pk.TargetKind(s.Target.Kind), Value: s.Target.Value}, advOpts)
		if err != nil {
			return nil, fmt.Errorf("dose advice: %w", err)
		}
		res.Advice = &advice
		res.Revised = advice.Revised
	}

	res.Summary = s.summarize(res, governing, governingTrace, sched)
	return res, nil
}

// schedule assembles the engine schedule from doses and dialysis sessions.
func (s *Spec) schedule() pk.Schedule {
	sched := pk.Schedule{}
	for _, d := range s.Doses {
		sched.Doses = append(sched.Doses, pk.DoseEvent{
			AmountMg:        d.AmountMg,
			StartMinutes:    d.StartMinutes,
			DurationMinutes: d.DurationMinutes,
		})
	}
	if s.Dialysis != nil {
		dev := s.Dialysis.Device(s.Drug.KoA)
		for _, sess := range s.Dialysis.Sessions {
			sched.Windows = append(sched.Windows, dev.Window(sess.StartMinutes, sess.DurationMinutes))
		}
	}
	return sched.Sorted()
}

func (s *Spec) summarize(res *Result, m *pk.Model, tr *pk.ConcentrationTrace, sched pk.Schedule) Summary {
	sum := Summary{
		HalfLifeHours:     m.HalfLifeHours(),
		ClearanceLPerHour: m.ClearanceLPerHour(),
		AUC24:             tr.AUC24From(0),
	}
	sum.PeakMgPerL, sum.PeakAtMinutes = tr.Peak()

	if s.Dialysis != nil {
		sum.DialyzerClearanceMLMin = s.Dialysis.Device(s.Drug.KoA).Clearance()
		for _, w := range sched.Windows {
			sum.SessionTroughs = append(sum.SessionTroughs, tr.TroughBefore(w.StartMinutes))
		}
		if res.NoRemoval != nil {
			sum.ReductionPercent24h = pk.ReductionPercent(res.NoRemoval, tr, 24*60)
			sum.ReboundMgPerL = tr.ReboundAfter(sched.Windows[0].EndMinutes, 60)
		}
	}
	if res.Advice != nil {
		sum.SuggestedDoseMg = res.Advice.SuggestedDoseMg
	}
	if res.Fit != nil {
		sum.FitLowConfidence = res.Fit.LowConfidence
	}
	return sum
}
