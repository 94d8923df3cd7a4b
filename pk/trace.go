package pk

import (
	"gonum.org/v1/gonum/integrate"
)

// ConcentrationTrace is a uniform-grid record of predicted concentrations.
// Times are minutes since simulation start; concentrations are mg/L
// (equivalently µg/mL) and clamped >= 0. Peripheral is nil for
// one-compartment trajectories.
type ConcentrationTrace struct {
	StepMinutes float64
	Times       []float64
	Central     []float64
	Peripheral  []float64
}

func (tr *ConcentrationTrace) Len() int { return len(tr.Times) }

// indexAt maps a time to the nearest grid index, clamped into range.
func (tr *ConcentrationTrace) indexAt(tMinutes float64) int {
	i := int(tMinutes/tr.StepMinutes + 0.5)
	if i < 0 {
		return 0
	}
	if i >= len(tr.Times) {
		return len(tr.Times) - 1
	}
	return i
}

// At returns the central concentration at the grid point nearest tMinutes.
func (tr *ConcentrationTrace) At(tMinutes float64) float64 {
	if len(tr.Central) == 0 {
		return 0
	}
	return tr.Central[tr.indexAt(tMinutes)]
}

// TroughBefore returns the concentration immediately preceding the event at
// tMinutes, i.e. at the last grid point strictly before it.
func (tr *ConcentrationTrace) TroughBefore(tMinutes float64) float64 {
	i := tr.indexAt(tMinutes)
	if i > 0 && tr.Times[i] >= tMinutes {
		i--
	}
	if len(tr.Central) == 0 {
		return 0
	}
	return tr.Central[i]
}

// Peak returns the maximum central concentration and its time.
func (tr *ConcentrationTrace) Peak() (conc, tMinutes float64) {
	for i, c := range tr.Central {
		if c > conc {
			conc = c
			tMinutes = tr.Times[i]
		}
	}
	return conc, tMinutes
}

// AUC integrates the central concentration over [startMinutes, endMinutes]
// by the trapezoidal rule, returned in mg·h/L (µg·h/mL).
func (tr *ConcentrationTrace) AUC(startMinutes, endMinutes float64) float64 {
	lo, hi := tr.indexAt(startMinutes), tr.indexAt(endMinutes)
	if hi <= lo {
		return 0
	}
	return integrate.Trapezoidal(tr.Times[lo:hi+1], tr.Central[lo:hi+1]) / 60
}

// AUC24From returns the 24-hour area under the curve starting at
// startMinutes.
func (tr *ConcentrationTrace) AUC24From(startMinutes float64) float64 {
	return tr.AUC(startMinutes, startMinutes+24*60)
}

// ReductionPercent compares a treated trace against a baseline at tMinutes:
// 100 * (1 - treated/baseline). Zero baseline yields 0.
func ReductionPercent(baseline, treated *ConcentrationTrace, tMinutes float64) float64 {
	b := baseline.At(tMinutes)
	if b <= 0 {
		return 0
	}
	return (1 - treated.At(tMinutes)/b) * 100
}

// ReboundAfter measures the concentration rise from tMinutes to
// tMinutes+lookAheadMinutes, the post-dialysis redistribution rebound.
// Negative values mean the concentration kept falling.
func (tr *ConcentrationTrace) ReboundAfter(tMinutes, lookAheadMinutes float64) float64 {
	return tr.At(tMinutes+lookAheadMinutes) - tr.At(tMinutes)
}
