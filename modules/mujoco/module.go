// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package mujoco registers the locomotion environments simulated by MuJoCo.
// Construction is delegated to the deps.MuJoCo backend.
package mujoco

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/deps"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
)

// Robots are the MuJoCo models with a registered entry point, keyed by the
// constructor name used in the entry point.
var Robots = []string{"HalfCheetah", "Hopper", "Walker2d", "Ant", "Humanoid"}

// EntryPoint returns the entry point of a MuJoCo robot.
func EntryPoint(robot string) string {
	return fmt.Sprintf("simenv.envs.mujoco.%s:%sEnv", snake(robot), robot)
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers one factory per robot.
func (m *Module) Register(r *registry.Registry) {
	for _, robot := range Robots {
		r.RegisterFactory(EntryPoint(robot), factory(robot))
	}
}

// Input defines the arguments shared by the MuJoCo environments.
type Input struct {
	FrameSkip int    `cty:"frame_skip"`
	XMLFile   string `cty:"xml_file"`
}

func factory(robot string) registry.Factory {
	return func(ctx context.Context, kwargs env.Kwargs) (env.Env, error) {
		backend, err := deps.Lookup[deps.EnvBackend](deps.MuJoCo)
		if err != nil {
			return nil, err
		}
		in := Input{FrameSkip: 5}
		if err := kwargs.Decode(&in); err != nil {
			return nil, err
		}
		if in.FrameSkip <= 0 {
			return nil, fmt.Errorf("%w: frame_skip must be positive, got %d", env.ErrInvalidArgument, in.FrameSkip)
		}
		ctxlog.FromContext(ctx).Debug("Delegating to MuJoCo backend.", "robot", robot, "frame_skip", in.FrameSkip)
		return backend.NewEnv(ctx, robot, kwargs)
	}
}

// snake converts "HalfCheetah" to "half_cheetah".
func snake(s string) string {
	out := make([]rune, 0, len(s)+4)
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
