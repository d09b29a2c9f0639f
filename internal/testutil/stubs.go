// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"context"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// StubEnv is a deterministic environment: the observation is the number of
// steps taken, and the episode terminates after Length steps.
type StubEnv struct {
	env.Base
	Name   string
	Kwargs env.Kwargs
	Length int
	Closed bool

	steps int
}

// Reset implements env.Env.
func (s *StubEnv) Reset(opts env.ResetOptions) (any, env.Info, error) {
	s.ApplySeed(opts)
	s.steps = 0
	return 0, env.Info{}, nil
}

// Step implements env.Env.
func (s *StubEnv) Step(action any) (env.StepResult, error) {
	s.steps++
	length := s.Length
	if length <= 0 {
		length = 10
	}
	return env.StepResult{
		Observation: min(s.steps, length),
		Reward:      1,
		Terminated:  s.steps >= length,
		Info:        env.Info{},
	}, nil
}

// ObservationSpace implements env.Env.
func (s *StubEnv) ObservationSpace() spaces.Space { return spaces.NewDiscrete(100) }

// ActionSpace implements env.Env.
func (s *StubEnv) ActionSpace() spaces.Space { return spaces.NewDiscrete(2) }

// Close implements env.Env.
func (s *StubEnv) Close() error {
	s.Closed = true
	return nil
}

// StubFactory returns a factory building a StubEnv that records its kwargs.
func StubFactory() registry.Factory {
	return func(_ context.Context, kwargs env.Kwargs) (env.Env, error) {
		return &StubEnv{Kwargs: kwargs}, nil
	}
}

// ErrFactory returns a factory that always fails with err.
func ErrFactory(err error) registry.Factory {
	return func(context.Context, env.Kwargs) (env.Env, error) {
		return nil, err
	}
}

// StubBackend implements deps.EnvBackend by building StubEnvs and records the
// requested names.
type StubBackend struct {
	Requested []string
}

// NewEnv builds a StubEnv named after the request.
func (b *StubBackend) NewEnv(_ context.Context, name string, kwargs env.Kwargs) (env.Env, error) {
	b.Requested = append(b.Requested, name)
	return &StubEnv{Name: name, Kwargs: kwargs}, nil
}

// SimpleModule is a test helper for easily creating a module that registers
// a fixed set of factories.
type SimpleModule struct {
	Factories map[string]registry.Factory
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for entryPoint, f := range m.Factories {
		r.RegisterFactory(entryPoint, f)
	}
}
