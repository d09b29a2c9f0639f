// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package spaces

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Box is the set of float64 vectors x with Low[i] <= x[i] <= High[i].
// Bounds may be infinite.
type Box struct {
	Low  []float64
	High []float64
}

// NewBox validates the bounds and returns a Box.
func NewBox(low, high []float64) Box {
	if len(low) != len(high) {
		panic(fmt.Sprintf("spaces: box bounds differ in length: %d and %d", len(low), len(high)))
	}
	for i := range low {
		if low[i] > high[i] {
			panic(fmt.Sprintf("spaces: box low bound %v exceeds high bound %v at index %d", low[i], high[i], i))
		}
	}
	return Box{Low: low, High: high}
}

// Shape returns the vector length of the box.
func (b Box) Shape() int { return len(b.Low) }

// Sample draws each coordinate independently. Bounded coordinates are
// uniform, half-bounded ones exponential and unbounded ones normal.
func (b Box) Sample(r *rand.Rand) any {
	out := make([]float64, len(b.Low))
	for i := range out {
		lo, hi := b.Low[i], b.High[i]
		loInf, hiInf := math.IsInf(lo, -1), math.IsInf(hi, 1)
		switch {
		case loInf && hiInf:
			out[i] = r.NormFloat64()
		case loInf:
			out[i] = hi - r.ExpFloat64()
		case hiInf:
			out[i] = lo + r.ExpFloat64()
		default:
			out[i] = math.Min(hi, lo+r.Float64()*(hi-lo))
		}
	}
	return out
}

// Contains reports whether x is a numeric vector of the right length within
// the bounds.
func (b Box) Contains(x any) bool {
	v, ok := asFloats(x)
	if !ok || len(v) != len(b.Low) {
		return false
	}
	for i, f := range v {
		if math.IsNaN(f) || f < b.Low[i] || f > b.High[i] {
			return false
		}
	}
	return true
}

func (b Box) String() string {
	return fmt.Sprintf("Box(%v, %v, (%d,))", b.Low, b.High, len(b.Low))
}
