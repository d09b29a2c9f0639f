// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package box2d registers the environments simulated by the Box2D physics
// engine. The engine itself is an optional backend: the factories validate
// their kwargs and delegate construction to the deps.Box2D backend, failing
// with env.ErrDependencyNotInstalled when it is not linked.
package box2d

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/deps"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
)

// Entry points of the Box2D environments.
const (
	LunarLanderEntryPoint   = "simenv.envs.box2d.lunar_lander:LunarLander"
	BipedalWalkerEntryPoint = "simenv.envs.box2d.bipedal_walker:BipedalWalker"
	CarRacingEntryPoint     = "simenv.envs.box2d.car_racing:CarRacing"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factories with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(LunarLanderEntryPoint, factory("LunarLander", func() input {
		return &LunarLanderInput{Gravity: -10, WindPower: 15, TurbulencePower: 1.5}
	}))
	r.RegisterFactory(BipedalWalkerEntryPoint, factory("BipedalWalker", func() input {
		return &BipedalWalkerInput{}
	}))
	r.RegisterFactory(CarRacingEntryPoint, factory("CarRacing", func() input {
		return &CarRacingInput{Continuous: true, LapCompletePercent: 0.95}
	}))
}

// input is the decoded arguments of one environment.
type input interface {
	validate() error
}

// LunarLanderInput defines the arguments of LunarLander.
type LunarLanderInput struct {
	Continuous      bool    `cty:"continuous"`
	Gravity         float64 `cty:"gravity"`
	EnableWind      bool    `cty:"enable_wind"`
	WindPower       float64 `cty:"wind_power"`
	TurbulencePower float64 `cty:"turbulence_power"`
}

func (in *LunarLanderInput) validate() error {
	if in.Gravity <= -12 || in.Gravity >= 0 {
		return fmt.Errorf("%w: gravity must be within (-12, 0), got %v", env.ErrInvalidArgument, in.Gravity)
	}
	if in.WindPower < 0 || in.WindPower > 20 {
		return fmt.Errorf("%w: wind_power must be within [0, 20], got %v", env.ErrInvalidArgument, in.WindPower)
	}
	if in.TurbulencePower < 0 || in.TurbulencePower > 2 {
		return fmt.Errorf("%w: turbulence_power must be within [0, 2], got %v", env.ErrInvalidArgument, in.TurbulencePower)
	}
	return nil
}

// BipedalWalkerInput defines the arguments of BipedalWalker.
type BipedalWalkerInput struct {
	Hardcore bool `cty:"hardcore"`
}

func (in *BipedalWalkerInput) validate() error { return nil }

// CarRacingInput defines the arguments of CarRacing.
type CarRacingInput struct {
	Continuous         bool    `cty:"continuous"`
	DomainRandomize    bool    `cty:"domain_randomize"`
	LapCompletePercent float64 `cty:"lap_complete_percent"`
}

func (in *CarRacingInput) validate() error {
	if in.LapCompletePercent <= 0 || in.LapCompletePercent > 1 {
		return fmt.Errorf("%w: lap_complete_percent must be within (0, 1], got %v", env.ErrInvalidArgument, in.LapCompletePercent)
	}
	return nil
}

func factory(name string, newInput func() input) registry.Factory {
	return func(ctx context.Context, kwargs env.Kwargs) (env.Env, error) {
		backend, err := deps.Lookup[deps.EnvBackend](deps.Box2D)
		if err != nil {
			return nil, err
		}
		in := newInput()
		if err := kwargs.Decode(in); err != nil {
			return nil, err
		}
		if err := in.validate(); err != nil {
			return nil, err
		}
		ctxlog.FromContext(ctx).Debug("Delegating to Box2D backend.", "env", name)
		return backend.NewEnv(ctx, name, kwargs)
	}
}
