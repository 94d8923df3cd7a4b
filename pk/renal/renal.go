// Package renal provides bedside renal-function estimators used to seed
// pharmacokinetic parameters when no measured level is available yet.
package renal

import (
	"math"

	"github.com/dialysim/dialysim/pk"
)

// Patient is the minimal demographic set the estimators need.
type Patient struct {
	AgeYears    float64
	WeightKg    float64
	SerumCrMgDL float64
	Female      bool
}

// CockcroftGault estimates creatinine clearance (mL/min) from actual body
// weight: ((140-age)*weight)/(72*Cr), ×0.85 for females.
func CockcroftGault(p Patient) float64 {
	ccr := ((140 - p.AgeYears) * p.WeightKg) / (72 * p.SerumCrMgDL)
	if p.Female {
		ccr *= 0.85
	}
	return ccr
}

// EGFR estimates the glomerular filtration rate (mL/min/1.73m²) with the
// Japanese Society of Nephrology equation: 194·Cr^-1.094·Age^-0.287,
// ×0.739 for females.
func EGFR(p Patient) float64 {
	egfr := 194 * math.Pow(p.SerumCrMgDL, -1.094) * math.Pow(p.AgeYears, -0.287)
	if p.Female {
		egfr *= 0.739
	}
	return egfr
}

// VancomycinKelPerHour estimates the vancomycin elimination rate constant
// (per hour) from creatinine clearance, Matzke: kel = 0.00083·CCr + 0.0044.
// factor is a tunable correction (1.0 = none, 0 treated as 1.0).
func VancomycinKelPerHour(ccrMLPerMin, factor float64) float64 {
	if factor == 0 {
		factor = 1
	}
	return (0.00083*ccrMLPerMin + 0.0044) * factor
}

// VancomycinModel builds a one-compartment vancomycin model from renal
// function. vdPerKg defaults to 0.7 L/kg when zero.
func VancomycinModel(p Patient, vdPerKg, kelFactor float64) (*pk.Model, error) {
	if vdPerKg <= 0 {
		vdPerKg = 0.7
	}
	kelH := VancomycinKelPerHour(CockcroftGault(p), kelFactor)
	params := pk.Params{
		CentralVolumePerKg: vdPerKg,
		HalfLifeHours:      math.Ln2 / kelH,
	}
	return pk.NewModel(params, p.WeightKg)
}

// SuggestedIntervalHours maps creatinine clearance onto the conventional
// vancomycin dosing-interval nomogram.
func SuggestedIntervalHours(ccrMLPerMin float64) float64 {
	switch {
	case ccrMLPerMin > 60:
		return 12
	case ccrMLPerMin >= 40:
		return 24
	case ccrMLPerMin >= 20:
		return 48
	default:
		return 72
	}
}
