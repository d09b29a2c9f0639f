// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

import (
	"math/rand/v2"

	"github.com/specialistvlad/simenv/internal/spaces"
)

// Info carries auxiliary diagnostic values returned by Reset and Step.
type Info map[string]any

// ResetOptions configures a call to Reset.
type ResetOptions struct {
	// Seed reseeds the environment's random generator when non-nil.
	Seed *uint64
	// Options holds environment-specific reset options.
	Options map[string]any
}

// WithSeed returns ResetOptions that reseed the environment.
func WithSeed(seed uint64) ResetOptions {
	return ResetOptions{Seed: &seed}
}

// StepResult is the outcome of a single Step.
type StepResult struct {
	Observation any
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
}

// Done reports whether the episode ended, by termination or truncation.
func (r StepResult) Done() bool {
	return r.Terminated || r.Truncated
}

// Env is a runnable simulation environment.
type Env interface {
	Reset(opts ResetOptions) (any, Info, error)
	Step(action any) (StepResult, error)
	ObservationSpace() spaces.Space
	ActionSpace() spaces.Space
	// Spec returns the spec the environment was made from, or nil when it was
	// constructed directly.
	Spec() *Spec
	Close() error
}

// Wrapper is an Env that decorates another Env.
type Wrapper interface {
	Env
	Inner() Env
}

// SpecSetter is implemented by environments that can record the spec they
// were made from. Base provides it.
type SpecSetter interface {
	SetSpec(spec *Spec)
}

// Unwrapped strips every wrapper around e.
func Unwrapped(e Env) Env {
	for {
		w, ok := e.(Wrapper)
		if !ok {
			return e
		}
		e = w.Inner()
	}
}

// Base is embedded by concrete environments. It stores the spec and the
// environment's random generator.
type Base struct {
	spec *Spec
	rng  *rand.Rand
}

// Spec implements Env.
func (b *Base) Spec() *Spec { return b.spec }

// SetSpec implements SpecSetter.
func (b *Base) SetSpec(spec *Spec) { b.spec = spec }

// Rand returns the environment's random generator, creating an unseeded one
// on first use.
func (b *Base) Rand() *rand.Rand {
	if b.rng == nil {
		b.rng = spaces.NewRand(rand.Uint64())
	}
	return b.rng
}

// ApplySeed reseeds the generator if the options carry a seed.
func (b *Base) ApplySeed(opts ResetOptions) {
	if opts.Seed != nil {
		b.rng = spaces.NewRand(*opts.Seed)
	}
}

// Close is a no-op default.
func (b *Base) Close() error { return nil }
