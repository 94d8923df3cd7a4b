package pk

import "fmt"

// InvalidParameterError reports a pre-simulation validation failure.
// Field names the offending input so callers can point at the exact
// form control that produced it.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %v: %s", e.Field, e.Value, e.Reason)
}

func errPositive(field string, v float64) error {
	if v <= 0 {
		return &InvalidParameterError{Field: field, Value: v, Reason: "must be > 0"}
	}
	return nil
}

func errNonNegative(field string, v float64) error {
	if v < 0 {
		return &InvalidParameterError{Field: field, Value: v, Reason: "must be >= 0"}
	}
	return nil
}
