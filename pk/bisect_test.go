package pk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBisectDecreasing_FindsRoot(t *testing.T) {
	// f(x) = 10 - 2x on [0, 5]; f(x) = 4 at x = 3
	f := func(x float64) float64 { return 10 - 2*x }
	res := BisectDecreasing(f, 4, 0, 5, 0)

	assert.Equal(t, DefaultBisectIterations, res.Iterations)
	assert.InDelta(t, 3.0, res.Value, 5.0/float64(int64(1)<<20))
	assert.False(t, res.BoundaryPinned)
}

func TestBisectDecreasing_Exponential(t *testing.T) {
	// C(k) = 100*e^(-k*60): target 50 at k = ln2/60
	f := func(k float64) float64 { return 100 * math.Exp(-k*60) }
	res := BisectDecreasing(f, 50, 1e-5, 0.1, 30)
	assert.InDelta(t, math.Ln2/60, res.Value, 1e-7)
	assert.Equal(t, 30, res.Iterations)
}

func TestBisectDecreasing_PinnedHigh(t *testing.T) {
	// target above f(lo): nothing in range predicts that high, search
	// collapses onto the low endpoint
	f := func(x float64) float64 { return 10 - 2*x }
	res := BisectDecreasing(f, 50, 0, 5, 0)
	assert.True(t, res.BoundaryPinned)
	assert.InDelta(t, 0.0, res.Value, 5.0/float64(int64(1)<<19))
}

func TestBisectDecreasing_PinnedLow(t *testing.T) {
	// target below f(hi): search collapses onto the high endpoint
	f := func(x float64) float64 { return 10 - 2*x }
	res := BisectDecreasing(f, -50, 0, 5, 0)
	assert.True(t, res.BoundaryPinned)
	assert.InDelta(t, 5.0, res.Value, 5.0/float64(int64(1)<<19))
}
