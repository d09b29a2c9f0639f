// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package spaces

import (
	"fmt"
	"math/rand/v2"
)

// Discrete is the set of integers {Start, Start+1, ..., Start+N-1}.
type Discrete struct {
	N     int
	Start int
}

// NewDiscrete returns a Discrete space of n elements starting at zero.
func NewDiscrete(n int) Discrete {
	if n <= 0 {
		panic(fmt.Sprintf("spaces: discrete space needs a positive size, got %d", n))
	}
	return Discrete{N: n}
}

// Sample returns a random int in the space.
func (d Discrete) Sample(r *rand.Rand) any {
	return d.Start + r.IntN(d.N)
}

// Contains reports whether x is an integer in the space.
func (d Discrete) Contains(x any) bool {
	i, ok := asInt(x)
	if !ok {
		return false
	}
	return i >= d.Start && i < d.Start+d.N
}

func (d Discrete) String() string {
	if d.Start != 0 {
		return fmt.Sprintf("Discrete(%d, start=%d)", d.N, d.Start)
	}
	return fmt.Sprintf("Discrete(%d)", d.N)
}
