package pk

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// TargetKind selects the exposure metric a dose revision aims at.
type TargetKind string

const (
	TargetTrough TargetKind = "trough" // concentration before the next event, mg/L
	TargetAUC24  TargetKind = "auc24"  // steady-state 24 h exposure, mg·h/L
)

// Target is the desired exposure.
type Target struct {
	Kind  TargetKind
	Value float64
}

// AdvisorOptions shape the dose proposal.
type AdvisorOptions struct {
	RoundToMg       float64 // clinical granularity, default 50
	IntervalHours   float64 // dosing interval for AUC24 per-dose split, default 24
	FromMinutes     float64 // next actionable event; doses at/after this are replaced
	TroughAtMinutes float64 // where to read the simulated trough (trough targets)
	Solver          SolverOptions
}

// Advice is a proposed revision plus the comparison trajectory obtained by
// re-simulating the amended schedule with history preserved.
type Advice struct {
	RawDoseMg       float64 // before rounding
	SuggestedDoseMg float64
	CurrentValue    float64 // simulated trough or current steady-state AUC24
	PredictedAUC24  float64 // steady-state AUC24 of the revised regimen
	Revised         *ConcentrationTrace
	RevisedDoses    []DoseEvent
}

// RoundToNearest rounds a dose to the given granularity (e.g. 50 or 100 mg).
func RoundToNearest(doseMg, granularityMg float64) float64 {
	if granularityMg <= 0 {
		return doseMg
	}
	return math.Round(doseMg/granularityMg) * granularityMg
}

// AdviseDose computes a revised per-dose amount hitting the target and
// re-invokes the solver over the amended schedule.
//
// AUC24 targets invert the steady-state relation AUC24 = dailyDose/CL
// directly. Trough targets scale the current dose by target/simulated — a
// proportional anchor that is valid because trough is approximately linear
// in dose for fixed kinetics and interval, not an exact inversion.
func AdviseDose(m *Model, s Schedule, baseline *ConcentrationTrace, target Target, opts AdvisorOptions) (Advice, error) {
	granularity := opts.RoundToMg
	if granularity <= 0 {
		granularity = 50
	}
	interval := opts.IntervalHours
	if interval <= 0 {
		interval = 24
	}
	currentDose := currentPlannedDose(s.Doses, opts.FromMinutes)
	if currentDose <= 0 {
		return Advice{}, &InvalidParameterError{Field: "schedule.doses", Value: 0, Reason: "no dose at or after the actionable time"}
	}
	dosesPerDay := 24 / interval

	adv := Advice{}
	switch target.Kind {
	case TargetAUC24:
		cl := m.ClearanceLPerHour()
		adv.CurrentValue = currentDose * dosesPerDay / cl
		requiredDaily := target.Value * cl
		adv.RawDoseMg = requiredDaily / dosesPerDay
	case TargetTrough:
		trough := baseline.TroughBefore(opts.TroughAtMinutes)
		adv.CurrentValue = trough
		if trough <= 0 {
			// nothing measurable to scale against; keep the plan
			adv.RawDoseMg = currentDose
		} else {
			adv.RawDoseMg = currentDose * (target.Value / trough)
		}
	default:
		return Advice{}, fmt.Errorf("unknown target kind %q", target.Kind)
	}

	adv.SuggestedDoseMg = RoundToNearest(adv.RawDoseMg, granularity)
	adv.PredictedAUC24 = adv.SuggestedDoseMg * dosesPerDay / m.ClearanceLPerHour()

	adv.RevisedDoses = ReplaceFutureDoses(s.Doses, opts.FromMinutes, adv.SuggestedDoseMg)
	revised := Schedule{Doses: adv.RevisedDoses, Windows: s.Windows}
	tr, err := NewSolver(m, revised, opts.Solver).Solve(revised)
	if err != nil {
		return Advice{}, fmt.Errorf("re-simulating revised schedule: %w", err)
	}
	adv.Revised = tr

	logrus.Debugf("advise %s=%.4g: current=%.4g raw=%.5gmg suggested=%.0fmg predictedAUC24=%.4g",
		target.Kind, target.Value, adv.CurrentValue, adv.RawDoseMg, adv.SuggestedDoseMg, adv.PredictedAUC24)
	return adv, nil
}

// currentPlannedDose returns the amount of the first dose at or after
// fromMinutes, falling back to the last scheduled dose when the plan has no
// future doses.
func currentPlannedDose(doses []DoseEvent, fromMinutes float64) float64 {
	for _, d := range doses {
		if d.StartMinutes >= fromMinutes {
			return d.AmountMg
		}
	}
	if len(doses) > 0 {
		return doses[len(doses)-1].AmountMg
	}
	return 0
}
