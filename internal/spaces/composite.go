// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package spaces

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Tuple is the product of its sub-spaces. Members are []any.
type Tuple struct {
	Spaces []Space
}

// NewTuple returns a Tuple over the given spaces.
func NewTuple(spaces ...Space) Tuple {
	return Tuple{Spaces: spaces}
}

// Sample returns one sample per sub-space.
func (t Tuple) Sample(r *rand.Rand) any {
	out := make([]any, len(t.Spaces))
	for i, s := range t.Spaces {
		out[i] = s.Sample(r)
	}
	return out
}

// Contains reports whether x is a []any of matching length whose elements
// belong to the corresponding sub-spaces.
func (t Tuple) Contains(x any) bool {
	v, ok := x.([]any)
	if !ok || len(v) != len(t.Spaces) {
		return false
	}
	for i, s := range t.Spaces {
		if !s.Contains(v[i]) {
			return false
		}
	}
	return true
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Spaces))
	for i, s := range t.Spaces {
		parts[i] = s.String()
	}
	return "Tuple(" + strings.Join(parts, ", ") + ")"
}

// Dict is a keyed product of sub-spaces. Keys keeps insertion order so that
// String and iteration are stable. Members are map[string]any.
type Dict struct {
	Keys   []string
	Spaces map[string]Space
}

// NewDict builds a Dict from alternating key, space pairs.
func NewDict(pairs ...any) Dict {
	if len(pairs)%2 != 0 {
		panic("spaces: NewDict expects key, space pairs")
	}
	d := Dict{Spaces: make(map[string]Space, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("spaces: dict key %v is not a string", pairs[i]))
		}
		s, ok := pairs[i+1].(Space)
		if !ok {
			panic(fmt.Sprintf("spaces: dict value for %q is not a Space", key))
		}
		if _, dup := d.Spaces[key]; dup {
			panic(fmt.Sprintf("spaces: duplicate dict key %q", key))
		}
		d.Keys = append(d.Keys, key)
		d.Spaces[key] = s
	}
	return d
}

// Sample returns a map with one sample per key.
func (d Dict) Sample(r *rand.Rand) any {
	out := make(map[string]any, len(d.Keys))
	for _, k := range d.Keys {
		out[k] = d.Spaces[k].Sample(r)
	}
	return out
}

// Contains reports whether x has exactly the dict's keys, each within its
// sub-space.
func (d Dict) Contains(x any) bool {
	m, ok := x.(map[string]any)
	if !ok || len(m) != len(d.Keys) {
		return false
	}
	for _, k := range d.Keys {
		v, present := m[k]
		if !present || !d.Spaces[k].Contains(v) {
			return false
		}
	}
	return true
}

func (d Dict) String() string {
	parts := make([]string, len(d.Keys))
	for i, k := range d.Keys {
		parts[i] = fmt.Sprintf("%s: %s", k, d.Spaces[k])
	}
	return "Dict(" + strings.Join(parts, ", ") + ")"
}
