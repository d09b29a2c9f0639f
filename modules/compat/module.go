// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package compat adapts environments from the legacy gym runtime. The runtime
// is an optional backend registered under deps.Gym; the adapter exposes each
// legacy environment through the env.Env contract.
package compat

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/deps"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// GymV26EntryPoint is the entry point of the compatibility environment.
const GymV26EntryPoint = "simenv.envs.external.compatibility:GymV26Environment"

// LegacyEnv is an environment of the legacy runtime.
type LegacyEnv interface {
	Reset(seed *uint64, options map[string]any) (any, map[string]any, error)
	Step(action any) (obs any, reward float64, terminated, truncated bool, info map[string]any, err error)
	ObservationSpace() spaces.Space
	ActionSpace() spaces.Space
	Close() error
}

// Runtime is the legacy gym runtime backend.
type Runtime interface {
	Make(ctx context.Context, envID string, kwargs env.Kwargs) (LegacyEnv, error)
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factory with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(GymV26EntryPoint, NewGymV26Environment)
}

// Input defines the typed arguments of the compatibility environment.
type Input struct {
	EnvID string `cty:"env_id,required"`
}

// NewGymV26Environment is the factory of the compatibility environment. The
// legacy environment is named by the required env_id kwarg; make_kwargs is
// forwarded to the legacy runtime.
func NewGymV26Environment(ctx context.Context, kwargs env.Kwargs) (env.Env, error) {
	runtime, err := deps.Lookup[Runtime](deps.Gym)
	if err != nil {
		return nil, err
	}
	var in Input
	if err := kwargs.Decode(&in); err != nil {
		return nil, err
	}
	envID := in.EnvID

	makeKwargs := env.Kwargs{}
	if kwargs.Has("make_kwargs") {
		m, ok := kwargs["make_kwargs"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: \"make_kwargs\" must be an object, got %T", env.ErrInvalidArgument, kwargs["make_kwargs"])
		}
		makeKwargs = env.Kwargs(m)
	}

	ctxlog.FromContext(ctx).Debug("Making legacy environment.", "env_id", envID)
	legacy, err := runtime.Make(ctx, envID, makeKwargs)
	if err != nil {
		return nil, fmt.Errorf("legacy runtime could not make %s: %w", envID, err)
	}
	return &GymV26Environment{legacy: legacy, envID: envID}, nil
}

// GymV26Environment exposes a LegacyEnv as an env.Env.
type GymV26Environment struct {
	env.Base
	legacy LegacyEnv
	envID  string
}

// LegacyID returns the id of the wrapped legacy environment.
func (g *GymV26Environment) LegacyID() string { return g.envID }

// Reset implements env.Env.
func (g *GymV26Environment) Reset(opts env.ResetOptions) (any, env.Info, error) {
	obs, info, err := g.legacy.Reset(opts.Seed, opts.Options)
	if err != nil {
		return nil, nil, err
	}
	return obs, toInfo(info), nil
}

// Step implements env.Env.
func (g *GymV26Environment) Step(action any) (env.StepResult, error) {
	obs, reward, terminated, truncated, info, err := g.legacy.Step(action)
	if err != nil {
		return env.StepResult{}, err
	}
	return env.StepResult{
		Observation: obs,
		Reward:      reward,
		Terminated:  terminated,
		Truncated:   truncated,
		Info:        toInfo(info),
	}, nil
}

// ObservationSpace implements env.Env.
func (g *GymV26Environment) ObservationSpace() spaces.Space { return g.legacy.ObservationSpace() }

// ActionSpace implements env.Env.
func (g *GymV26Environment) ActionSpace() spaces.Space { return g.legacy.ActionSpace() }

// Close implements env.Env.
func (g *GymV26Environment) Close() error { return g.legacy.Close() }

func toInfo(m map[string]any) env.Info {
	if m == nil {
		return env.Info{}
	}
	return env.Info(m)
}
