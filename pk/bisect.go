package pk

// BisectResult is the outcome of a monotone bisection search.
type BisectResult struct {
	Value      float64
	Iterations int
	// BoundaryPinned is true when the search converged onto an endpoint of
	// the initial interval, meaning no in-bounds value can reproduce the
	// target. Callers must treat such results as "outside fittable range",
	// not as a confident solution.
	BoundaryPinned bool
}

// DefaultBisectIterations halves the search interval 20 times, a resolution
// of range/2^20 — far below clinical significance for every quantity fitted
// here.
const DefaultBisectIterations = 20

// BisectDecreasing solves f(x) = target for x in [lo, hi] by fixed-count
// bisection, assuming f is monotonically decreasing over the interval.
// Correctness depends on that monotonicity; do not reuse this for
// non-monotone response surfaces. The boundary-pinned low-confidence check
// is centralized here rather than duplicated per fitting scenario.
func BisectDecreasing(f func(x float64) float64, target, lo, hi float64, iterations int) BisectResult {
	if iterations <= 0 {
		iterations = DefaultBisectIterations
	}
	lo0, hi0 := lo, hi
	for i := 0; i < iterations; i++ {
		mid := (lo + hi) / 2
		if f(mid) > target {
			// predicted too high -> need faster decay -> move right
			lo = mid
		} else {
			hi = mid
		}
	}
	mid := (lo + hi) / 2
	resolution := (hi0 - lo0) / float64(int64(1)<<uint(iterations))
	pinned := mid-lo0 <= resolution || hi0-mid <= resolution
	return BisectResult{Value: mid, Iterations: iterations, BoundaryPinned: pinned}
}
