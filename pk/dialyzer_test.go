package pk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialyzerClearance(t *testing.T) {
	d := DialyzerSettings{BloodFlow: 200, DialysateFlow: 500, KoA: 850}

	// Michaels relation evaluated by hand: ratio = 0.4,
	// Z = (850/200)*0.6 = 2.55, CL = 200*(e^2.55-1)/(e^2.55-0.4).
	expZ := math.Exp(2.55)
	want := 200 * (expZ - 1) / (expZ - 0.4)
	assert.InDelta(t, want, d.Clearance(), 1e-9)
	assert.Less(t, d.Clearance(), 200.0, "clearance cannot exceed blood flow")
	assert.InDelta(t, want/1000, d.ClearanceLPerMin(), 1e-12)
}

func TestDialyzerClearance_ZeroBloodFlow(t *testing.T) {
	d := DialyzerSettings{BloodFlow: 0, DialysateFlow: 500, KoA: 850}
	assert.Zero(t, d.Clearance())
}

func TestDialyzerClearance_EqualFlowsContinuity(t *testing.T) {
	// Approaching Qb = Qd from either side must agree with the limiting
	// form Qb*KoA/(KoA+Qb) to well under a mL/min.
	limit := DialyzerSettings{BloodFlow: 300, DialysateFlow: 300, KoA: 600}.Clearance()
	want := 300.0 * 600 / (600 + 300)
	require.InDelta(t, want, limit, 1e-9)

	below := DialyzerSettings{BloodFlow: 300, DialysateFlow: 300.5, KoA: 600}.Clearance()
	above := DialyzerSettings{BloodFlow: 300, DialysateFlow: 299.5, KoA: 600}.Clearance()
	assert.InDelta(t, limit, below, limit*1e-3)
	assert.InDelta(t, limit, above, limit*1e-3)
}

func TestDialyzerClearance_SievingScales(t *testing.T) {
	base := DialyzerSettings{BloodFlow: 200, DialysateFlow: 500, KoA: 850}
	half := base
	half.Sieving = 0.5
	assert.InDelta(t, base.Clearance()/2, half.Clearance(), 1e-9)
}

func TestDialyzerValidate(t *testing.T) {
	require.NoError(t, DialyzerSettings{BloodFlow: 200, DialysateFlow: 500, KoA: 850}.Validate())

	cases := []struct {
		name  string
		d     DialyzerSettings
		field string
	}{
		{"negative blood flow", DialyzerSettings{BloodFlow: -1, DialysateFlow: 500}, "dialyzer.bloodFlow"},
		{"zero dialysate flow", DialyzerSettings{BloodFlow: 200}, "dialyzer.dialysateFlow"},
		{"negative koa", DialyzerSettings{BloodFlow: 200, DialysateFlow: 500, KoA: -1}, "dialyzer.koa"},
		{"sieving above one", DialyzerSettings{BloodFlow: 200, DialysateFlow: 500, KoA: 850, Sieving: 1.5}, "dialyzer.sieving"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			var ipe *InvalidParameterError
			require.ErrorAs(t, err, &ipe)
			assert.Equal(t, tc.field, ipe.Field)
		})
	}
}

func TestDialyzerWindow(t *testing.T) {
	d := DialyzerSettings{BloodFlow: 200, DialysateFlow: 500, KoA: 850}
	w := d.Window(120, 240)
	assert.Equal(t, 120.0, w.StartMinutes)
	assert.Equal(t, 360.0, w.EndMinutes)
	assert.InDelta(t, d.ClearanceLPerMin(), w.ClearanceLPerMin, 1e-12)
}
