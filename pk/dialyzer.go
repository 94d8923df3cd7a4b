package pk

import "math"

// DialyzerSettings describe a dialysis prescription: blood flow, dialysate
// flow, and the membrane mass-transfer-area coefficient, all in mL/min.
// Sieving scales the theoretical clearance for protein binding or secondary
// membrane effects (default 1.0 when zero).
type DialyzerSettings struct {
	BloodFlow     float64 // Qb, mL/min
	DialysateFlow float64 // Qd, mL/min
	KoA           float64 // mL/min
	Sieving       float64 // 0..1, 0 means unset (treated as 1)
}

// Validate rejects flows the clearance formula cannot interpret. Qb = 0 is
// legal (clearance 0); Qd must be positive.
func (d DialyzerSettings) Validate() error {
	if err := errNonNegative("dialyzer.bloodFlow", d.BloodFlow); err != nil {
		return err
	}
	if err := errPositive("dialyzer.dialysateFlow", d.DialysateFlow); err != nil {
		return err
	}
	if err := errNonNegative("dialyzer.koa", d.KoA); err != nil {
		return err
	}
	if d.Sieving < 0 || d.Sieving > 1 {
		return &InvalidParameterError{Field: "dialyzer.sieving", Value: d.Sieving, Reason: "must be in [0, 1]"}
	}
	return nil
}

// Clearance converts the device settings into an instantaneous clearance in
// mL/min using the Michaels counter-current relation
//
//	CL = Qb * (e^Z - 1) / (e^Z - Qb/Qd),  Z = (KoA/Qb) * (1 - Qb/Qd)
//
// The Qb ≈ Qd singularity is removable; within 0.1% of flow equality the
// limiting form Qb*KoA/(KoA+Qb) is used instead. Qb = 0 yields 0. These
// degeneracies are absorbed here and never surface as errors.
func (d DialyzerSettings) Clearance() float64 {
	if d.BloodFlow == 0 {
		return 0
	}
	sc := d.Sieving
	if sc == 0 {
		sc = 1
	}
	ratio := d.BloodFlow / d.DialysateFlow
	var cl float64
	if math.Abs(1-ratio) < 1e-3 {
		cl = d.BloodFlow * d.KoA / (d.KoA + d.BloodFlow)
	} else {
		z := (d.KoA / d.BloodFlow) * (1 - ratio)
		expZ := math.Exp(z)
		cl = d.BloodFlow * (expZ - 1) / (expZ - ratio)
	}
	return cl * sc
}

// ClearanceLPerMin returns the clearance in the liter units the integrator
// works in.
func (d DialyzerSettings) ClearanceLPerMin() float64 { return d.Clearance() / 1000 }

// Window opens a RemovalWindow with this device's clearance over
// [startMinutes, startMinutes+durationMinutes).
func (d DialyzerSettings) Window(startMinutes, durationMinutes float64) RemovalWindow {
	return RemovalWindow{
		StartMinutes:     startMinutes,
		EndMinutes:       startMinutes + durationMinutes,
		ClearanceLPerMin: d.ClearanceLPerMin(),
	}
}
