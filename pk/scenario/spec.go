// Package scenario loads simulation scenarios from YAML and orchestrates
// the engine pipeline: baseline trajectory, observation fit, dose advice,
// and comparison trajectories, plus scalar summaries and CSV export.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dialysim/dialysim/pk"
)

// Spec is the top-level scenario configuration, loaded via Load(path).
type Spec struct {
	Version         string           `yaml:"version"`
	Patient         PatientSpec      `yaml:"patient"`
	Drug            DrugSpec         `yaml:"drug"`
	InitialAmountMg float64          `yaml:"initial_amount_mg,omitempty"` // ingestion absorbed before t=0
	Doses           []DoseSpec       `yaml:"doses,omitempty"`
	Dialysis        *DialysisSpec    `yaml:"dialysis,omitempty"`
	Observation     *ObservationSpec `yaml:"observation,omitempty"`
	Target          *TargetSpec      `yaml:"target,omitempty"`
	StepMinutes     float64          `yaml:"step_minutes,omitempty"`  // 0 -> 1 minute
	HorizonHours    float64          `yaml:"horizon_hours,omitempty"` // 0 -> schedule end + 24 h
}

// PatientSpec carries anthropometrics; age/sex/creatinine are only needed
// when renal estimation seeds the model.
type PatientSpec struct {
	WeightKg        float64 `yaml:"weight_kg"`
	AgeYears        float64 `yaml:"age_years,omitempty"`
	Sex             string  `yaml:"sex,omitempty"` // "male" or "female"
	SerumCreatinine float64 `yaml:"serum_creatinine,omitempty"`
}

// DrugSpec holds compartment parameters, either inline or named by Preset
// and filled in from the drug library before Run.
type DrugSpec struct {
	Preset        string  `yaml:"preset,omitempty"`
	V1PerKg       float64 `yaml:"v1_per_kg,omitempty"`
	V2PerKg       float64 `yaml:"v2_per_kg,omitempty"`
	QLPerMin      float64 `yaml:"q_l_per_min,omitempty"`
	HalfLifeHours float64 `yaml:"half_life_hours,omitempty"`
	KoA           float64 `yaml:"koa,omitempty"` // membrane coefficient, mL/min
}

// Params maps the drug spec onto engine parameters.
func (d DrugSpec) Params() pk.Params {
	return pk.Params{
		CentralVolumePerKg:    d.V1PerKg,
		PeripheralVolumePerKg: d.V2PerKg,
		IntercompClearance:    d.QLPerMin,
		HalfLifeHours:         d.HalfLifeHours,
	}
}

// DoseSpec mirrors pk.DoseEvent in YAML form.
type DoseSpec struct {
	AmountMg        float64 `yaml:"amount_mg"`
	StartMinutes    float64 `yaml:"start_minutes"`
	DurationMinutes float64 `yaml:"duration_minutes"`
}

// DialysisSpec describes the device and its sessions.
type DialysisSpec struct {
	BloodFlow     float64       `yaml:"blood_flow"`     // Qb, mL/min
	DialysateFlow float64       `yaml:"dialysate_flow"` // Qd, mL/min
	Sieving       float64       `yaml:"sieving,omitempty"`
	Sessions      []SessionSpec `yaml:"sessions"`
}

// SessionSpec is one dialysis window.
type SessionSpec struct {
	StartMinutes    float64 `yaml:"start_minutes"`
	DurationMinutes float64 `yaml:"duration_minutes"`
}

// ObservationSpec is a single measured level.
type ObservationSpec struct {
	TimeMinutes   float64 `yaml:"time_minutes"`
	Concentration float64 `yaml:"concentration"`
}

// TargetSpec selects the titration goal.
type TargetSpec struct {
	Kind            string  `yaml:"kind"` // "trough" or "auc24"
	Value           float64 `yaml:"value"`
	FromMinutes     float64 `yaml:"from_minutes,omitempty"`      // next actionable dose time
	IntervalHours   float64 `yaml:"interval_hours,omitempty"`    // AUC24 per-dose split
	TroughAtMinutes float64 `yaml:"trough_at_minutes,omitempty"` // where the trough is read
	RoundToMg       float64 `yaml:"round_to_mg,omitempty"`
}

// Load reads and strictly parses a scenario file; unknown fields are
// errors so typos cannot silently drop inputs.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario from YAML bytes with strict field checking.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return &spec, nil
}

// Validate fails fast on the first malformed input, naming the field.
func (s *Spec) Validate() error {
	if s.Patient.WeightKg <= 0 {
		return &pk.InvalidParameterError{Field: "patient.weight_kg", Value: s.Patient.WeightKg, Reason: "must be > 0"}
	}
	if s.Drug.V1PerKg <= 0 {
		return &pk.InvalidParameterError{Field: "drug.v1_per_kg", Value: s.Drug.V1PerKg, Reason: "must be > 0 (set inline or resolve a preset)"}
	}
	if s.Drug.HalfLifeHours <= 0 {
		return &pk.InvalidParameterError{Field: "drug.half_life_hours", Value: s.Drug.HalfLifeHours, Reason: "must be > 0"}
	}
	if s.InitialAmountMg < 0 {
		return &pk.InvalidParameterError{Field: "initial_amount_mg", Value: s.InitialAmountMg, Reason: "must be >= 0"}
	}
	if s.Dialysis != nil {
		dev := s.Dialysis.Device(s.Drug.KoA)
		if err := dev.Validate(); err != nil {
			return err
		}
		for _, sess := range s.Dialysis.Sessions {
			if sess.DurationMinutes <= 0 {
				return &pk.InvalidParameterError{Field: "dialysis.sessions.duration_minutes", Value: sess.DurationMinutes, Reason: "must be > 0"}
			}
		}
	}
	if s.Observation != nil && s.Observation.Concentration <= 0 {
		return &pk.InvalidParameterError{Field: "observation.concentration", Value: s.Observation.Concentration, Reason: "must be > 0"}
	}
	if s.Target != nil {
		if s.Target.Kind != string(pk.TargetTrough) && s.Target.Kind != string(pk.TargetAUC24) {
			return fmt.Errorf("target.kind must be %q or %q, got %q", pk.TargetTrough, pk.TargetAUC24, s.Target.Kind)
		}
		if s.Target.Value <= 0 {
			return &pk.InvalidParameterError{Field: "target.value", Value: s.Target.Value, Reason: "must be > 0"}
		}
	}
	return nil
}

// Device builds the dialyzer settings, pairing the prescription flows with
// the drug's membrane coefficient.
func (d *DialysisSpec) Device(koa float64) pk.DialyzerSettings {
	return pk.DialyzerSettings{
		BloodFlow:     d.BloodFlow,
		DialysateFlow: d.DialysateFlow,
		KoA:           koa,
		Sieving:       d.Sieving,
	}
}
