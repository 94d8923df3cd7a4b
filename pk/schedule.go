package pk

import "sort"

// DoseEvent is a fixed-rate infusion of AmountMg over DurationMinutes
// starting at StartMinutes. Overlapping events superpose additively.
type DoseEvent struct {
	AmountMg        float64
	StartMinutes    float64
	DurationMinutes float64
}

// EndMinutes returns the infusion end time.
func (d DoseEvent) EndMinutes() float64 { return d.StartMinutes + d.DurationMinutes }

// Rate returns the infusion rate in mg/min.
func (d DoseEvent) Rate() float64 { return d.AmountMg / d.DurationMinutes }

// RemovalWindow is an interval during which an extracorporeal device removes
// drug from the central compartment with the given instantaneous clearance.
type RemovalWindow struct {
	StartMinutes     float64
	EndMinutes       float64
	ClearanceLPerMin float64
}

// Schedule is the ordered set of dose and removal events the caller supplies
// per invocation. The engine keeps no history between calls; already-given
// doses must be resupplied here.
type Schedule struct {
	Doses   []DoseEvent
	Windows []RemovalWindow
}

// Validate fails fast on the first malformed event, naming the field.
func (s Schedule) Validate() error {
	for _, d := range s.Doses {
		if err := errPositive("dose.amountMg", d.AmountMg); err != nil {
			return err
		}
		if err := errNonNegative("dose.startMinutes", d.StartMinutes); err != nil {
			return err
		}
		if err := errPositive("dose.durationMinutes", d.DurationMinutes); err != nil {
			return err
		}
	}
	for _, w := range s.Windows {
		if err := errNonNegative("window.startMinutes", w.StartMinutes); err != nil {
			return err
		}
		if w.EndMinutes <= w.StartMinutes {
			return &InvalidParameterError{Field: "window.endMinutes", Value: w.EndMinutes, Reason: "must be > startMinutes"}
		}
		if err := errNonNegative("window.clearanceLPerMin", w.ClearanceLPerMin); err != nil {
			return err
		}
	}
	return nil
}

// InfusionRateAt returns the summed infusion rate (mg/min) active at time t.
func (s Schedule) InfusionRateAt(t float64) float64 {
	var rate float64
	for _, d := range s.Doses {
		if t >= d.StartMinutes && t < d.EndMinutes() {
			rate += d.Rate()
		}
	}
	return rate
}

// RemovalClearanceAt returns the summed extracorporeal clearance (L/min)
// active at time t. Overlapping windows are additive first-order pathways.
func (s Schedule) RemovalClearanceAt(t float64) float64 {
	var cl float64
	for _, w := range s.Windows {
		if t >= w.StartMinutes && t < w.EndMinutes {
			cl += w.ClearanceLPerMin
		}
	}
	return cl
}

// HorizonMinutes returns the end of the last scheduled event.
func (s Schedule) HorizonMinutes() float64 {
	var h float64
	for _, d := range s.Doses {
		if end := d.EndMinutes(); end > h {
			h = end
		}
	}
	for _, w := range s.Windows {
		if w.EndMinutes > h {
			h = w.EndMinutes
		}
	}
	return h
}

// Sorted returns a copy with doses and windows ordered by start time.
func (s Schedule) Sorted() Schedule {
	out := Schedule{
		Doses:   append([]DoseEvent(nil), s.Doses...),
		Windows: append([]RemovalWindow(nil), s.Windows...),
	}
	sort.SliceStable(out.Doses, func(i, j int) bool {
		return out.Doses[i].StartMinutes < out.Doses[j].StartMinutes
	})
	sort.SliceStable(out.Windows, func(i, j int) bool {
		return out.Windows[i].StartMinutes < out.Windows[j].StartMinutes
	})
	return out
}

// CascadeDose sets dose index i to amountMg and propagates the same amount
// to every later dose, returning a new slice. Editing one dose in a plan
// usually means the new amount carries forward.
func CascadeDose(doses []DoseEvent, i int, amountMg float64) []DoseEvent {
	out := append([]DoseEvent(nil), doses...)
	if amountMg < 0 {
		amountMg = 0
	}
	for j := i; j >= 0 && j < len(out); j++ {
		out[j].AmountMg = amountMg
	}
	return out
}

// ReplaceFutureDoses replaces the amount of every dose starting at or after
// fromMinutes, preserving already-administered history. Doses whose new
// amount is zero are dropped.
func ReplaceFutureDoses(doses []DoseEvent, fromMinutes, amountMg float64) []DoseEvent {
	out := make([]DoseEvent, 0, len(doses))
	for _, d := range doses {
		if d.StartMinutes >= fromMinutes {
			if amountMg <= 0 {
				continue
			}
			d.AmountMg = amountMg
		}
		out = append(out, d)
	}
	return out
}

// Regimen builds a loading-dose-plus-maintenance schedule: loadMg at t=0,
// then maintMg every intervalHours, numDoses doses in total, each infused
// over infusionMinutes.
func Regimen(loadMg, maintMg, intervalHours float64, numDoses int, infusionMinutes float64) []DoseEvent {
	doses := make([]DoseEvent, 0, numDoses)
	for i := 0; i < numDoses; i++ {
		amt := maintMg
		if i == 0 {
			amt = loadMg
		}
		if amt <= 0 {
			continue
		}
		doses = append(doses, DoseEvent{
			AmountMg:        amt,
			StartMinutes:    float64(i) * intervalHours * 60,
			DurationMinutes: infusionMinutes,
		})
	}
	return doses
}
