// Package core holds small helpers shared by map generation and tests.
package core

import "math/rand/v2"

// RNG wraps math/rand/v2 so a map seed always yields the same layout.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// IntRange returns an int in [lo, hi]. It returns lo when hi < lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo+1)
}

// FloatRange returns a float64 in [lo, hi).
func (r *RNG) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Snap returns a value in [lo, hi] rounded to a multiple of step, so
// generated elevations stay on a readable grid.
func (r *RNG) Snap(lo, hi, step float64) float64 {
	if step <= 0 {
		return r.FloatRange(lo, hi)
	}
	n := int((hi - lo) / step)
	return lo + float64(r.IntRange(0, n))*step
}
