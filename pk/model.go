package pk

import "math"

// Params holds drug-specific pharmacokinetic parameters as supplied by the
// caller, with volumes normalized per kilogram of body weight.
type Params struct {
	CentralVolumePerKg    float64 // V1, L/kg (> 0)
	PeripheralVolumePerKg float64 // V2, L/kg (0 selects a one-compartment model)
	IntercompClearance    float64 // Q, L/min (>= 0, ignored when one-compartment)
	HalfLifeHours         float64 // off-removal elimination half-life (> 0)
}

// Model is a weight-resolved one- or two-compartment model with derived
// rate constants. All rate constants are per minute; volumes are liters.
type Model struct {
	V1  float64 // central volume
	V2  float64 // peripheral volume (0 for one-compartment)
	Q   float64 // inter-compartmental clearance, L/min
	Kel float64 // endogenous elimination rate constant, 1/min
	K12 float64 // central -> peripheral
	K21 float64 // peripheral -> central
}

// NewModel normalizes per-kg parameters by body weight and derives rate
// constants. kel = ln2 / halfLife; the two-compartment variant additionally
// derives k12 = Q/V1 and k21 = Q/V2.
func NewModel(p Params, weightKg float64) (*Model, error) {
	if err := errPositive("weightKg", weightKg); err != nil {
		return nil, err
	}
	if err := errPositive("centralVolumePerKg", p.CentralVolumePerKg); err != nil {
		return nil, err
	}
	if err := errNonNegative("peripheralVolumePerKg", p.PeripheralVolumePerKg); err != nil {
		return nil, err
	}
	if err := errNonNegative("intercompClearance", p.IntercompClearance); err != nil {
		return nil, err
	}
	if err := errPositive("halfLifeHours", p.HalfLifeHours); err != nil {
		return nil, err
	}

	m := &Model{
		V1:  p.CentralVolumePerKg * weightKg,
		V2:  p.PeripheralVolumePerKg * weightKg,
		Q:   p.IntercompClearance,
		Kel: math.Ln2 / (p.HalfLifeHours * 60),
	}
	if m.V2 > 0 {
		m.K12 = m.Q / m.V1
		m.K21 = m.Q / m.V2
	}
	return m, nil
}

// OneCompartment reports whether the peripheral compartment is absent.
func (m *Model) OneCompartment() bool { return m.V2 == 0 }

// HalfLifeHours returns the off-removal elimination half-life.
func (m *Model) HalfLifeHours() float64 { return math.Ln2 / m.Kel / 60 }

// WithKel returns a copy of the model with the elimination rate constant
// replaced, re-deriving nothing else (k12/k21 depend only on Q and volumes).
func (m *Model) WithKel(kel float64) *Model {
	c := *m
	c.Kel = kel
	return &c
}

// Concentration converts a central-compartment amount (mg) to a
// concentration (mg/L).
func (m *Model) Concentration(amountMg float64) float64 { return amountMg / m.V1 }

// Amount converts a central concentration (mg/L) to an amount (mg).
func (m *Model) Amount(concMgPerL float64) float64 { return concMgPerL * m.V1 }

// DistributionVolume returns the volume used for clearance and loading-dose
// arithmetic: V1 for one-compartment models, V1 for the two-compartment
// model as well since elimination acts on the central compartment.
func (m *Model) DistributionVolume() float64 { return m.V1 }

// Clearance returns the endogenous total clearance CL = Vd * kel in L/min.
func (m *Model) Clearance() float64 { return m.DistributionVolume() * m.Kel }

// ClearanceLPerHour returns CL in L/h, the unit AUC24 arithmetic works in.
func (m *Model) ClearanceLPerHour() float64 { return m.Clearance() * 60 }

// DistributeBolus splits an instantaneously absorbed amount between
// compartments in proportion to their volumes, the pre-treatment state for
// an ingestion that occurred well before simulation start.
func (m *Model) DistributeBolus(amountMg float64) State {
	if m.OneCompartment() {
		return State{Central: amountMg}
	}
	total := m.V1 + m.V2
	return State{
		Central:    amountMg * m.V1 / total,
		Peripheral: amountMg * m.V2 / total,
	}
}

// State is the pair of compartment amounts (mg) the integrator steps.
type State struct {
	Central    float64 // A1
	Peripheral float64 // A2
}
