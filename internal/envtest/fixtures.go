// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package envtest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/modules"
)

// CompatEnvID is the spec that adapts legacy environments named by env_id.
const CompatEnvID = "GymV26Environment-v0"

// AtariIDs are the legacy Atari environments made through CompatEnvID.
var AtariIDs = []string{
	"ALE/Pong-v5",
	"ALE/Pong-ram-v5",
	"Pong-v4",
	"PongDeterministic-v4",
	"PongNoFrameskip-v4",
	"Pong-ram-v4",
	"Pong-ramDeterministic-v4",
	"Pong-ramNoFrameskip-v4",
}

const mujocoEntryPoint = registry.BuiltinPrefix + "mujoco"

var gymFamilies = []string{"box2d", "classic_control", "toy_text"}

// Skipped records an environment that could not be made.
type Skipped struct {
	ID  string
	Err error
}

// Fixtures are the environments available for testing in this binary.
type Fixtures struct {
	// AllTestingInitialisedEnvs holds every environment that could be made.
	AllTestingInitialisedEnvs []env.Env
	// AllTestingEnvSpecs holds the spec of each environment above, in order.
	AllTestingEnvSpecs []*env.Spec
	// MujocoTestingEnvSpecs are the specs of MuJoCo environments.
	MujocoTestingEnvSpecs []*env.Spec
	// GymTestingEnvSpecs are the specs of box2d, classic control and toy
	// text environments.
	GymTestingEnvSpecs []*env.Spec

	Skipped []Skipped
}

// expectedMakeError reports whether err means the environment cannot be made
// in this binary, as opposed to being broken.
func expectedMakeError(err error) bool {
	return errors.Is(err, env.ErrEntryPointNotFound) ||
		errors.Is(err, env.ErrDependencyNotInstalled) ||
		errors.Is(err, env.ErrMissingArgument)
}

// TryMakeEnv makes the environment of spec without wrappers or env checker.
// Specs whose entry point is not part of simenv are ignored. It returns a nil
// environment and a nil error when the environment is ignored or cannot be
// made in this binary; any other failure is returned as an error.
func TryMakeEnv(ctx context.Context, reg *registry.Registry, spec *env.Spec) (env.Env, error) {
	e, _, err := tryMakeEnv(ctx, reg, spec)
	return e, err
}

// tryMakeEnv is TryMakeEnv that also reports why an environment was
// skipped.
func tryMakeEnv(ctx context.Context, reg *registry.Registry, spec *env.Spec) (env.Env, *Skipped, error) {
	if !strings.Contains(spec.EntryPoint, registry.BuiltinPrefix) {
		return nil, nil, nil
	}
	e, err := reg.MakeSpec(ctx, spec, registry.DisableEnvChecker())
	if err != nil {
		if expectedMakeError(err) {
			ctxlog.FromContext(ctx).Warn(fmt.Sprintf("Not testing %s due to error: %v", spec.ID, err), "id", spec.ID, "error", err)
			return nil, &Skipped{ID: spec.ID, Err: err}, nil
		}
		return nil, nil, fmt.Errorf("unexpected failure making %s: %w", spec.ID, err)
	}
	return env.Unwrapped(e), nil, nil
}

// Load tries to make every spec of reg, then the Atari environments through
// CompatEnvID, and groups the results. Environments made before an
// unexpected failure are closed.
func Load(ctx context.Context, reg *registry.Registry) (*Fixtures, error) {
	logger := ctxlog.FromContext(ctx)
	fx := &Fixtures{}

	for _, spec := range reg.Specs() {
		e, skipped, err := tryMakeEnv(ctx, reg, spec)
		if err != nil {
			_ = fx.CloseAll()
			return nil, err
		}
		if skipped != nil {
			fx.Skipped = append(fx.Skipped, *skipped)
			continue
		}
		if e != nil {
			fx.add(e, spec)
		}
	}

	atari, atariSpecs, err := makeAtari(ctx, reg)
	switch {
	case err == nil:
		for i, e := range atari {
			fx.add(e, atariSpecs[i])
		}
	case errors.Is(err, env.ErrDependencyNotInstalled),
		errors.Is(err, env.ErrEntryPointNotFound),
		errors.Is(err, env.ErrUnknownEnv):
		logger.Warn("Skipping tests of Atari environments because the gym backend appears to be missing.", "error", err)
		fx.Skipped = append(fx.Skipped, Skipped{ID: CompatEnvID, Err: err})
	default:
		_ = fx.CloseAll()
		return nil, err
	}

	logger.Debug("Testing environments loaded.",
		"initialised", len(fx.AllTestingInitialisedEnvs),
		"mujoco", len(fx.MujocoTestingEnvSpecs),
		"gym", len(fx.GymTestingEnvSpecs),
		"skipped", len(fx.Skipped),
	)
	return fx, nil
}

// makeAtari makes every Atari environment or none of them. Each environment
// comes with the CompatEnvID spec carrying its env_id.
func makeAtari(ctx context.Context, reg *registry.Registry) ([]env.Env, []*env.Spec, error) {
	compat, err := reg.Spec(CompatEnvID)
	if err != nil {
		return nil, nil, err
	}
	made := make([]env.Env, 0, len(AtariIDs))
	specs := make([]*env.Spec, 0, len(AtariIDs))
	for _, id := range AtariIDs {
		spec := compat.Copy()
		spec.Kwargs = spec.Kwargs.Merge(env.Kwargs{"env_id": id})
		e, err := reg.MakeSpec(ctx, spec)
		if err != nil {
			for _, m := range made {
				_ = m.Close()
			}
			return nil, nil, err
		}
		made = append(made, e)
		specs = append(specs, spec)
	}
	return made, specs, nil
}

// add appends e and its spec, filing the spec by entry-point family. The
// spec recorded by e wins over fallback, which must not be nil.
func (f *Fixtures) add(e env.Env, fallback *env.Spec) {
	spec := e.Spec()
	if spec == nil {
		spec = fallback
	}
	f.AllTestingInitialisedEnvs = append(f.AllTestingInitialisedEnvs, e)
	f.AllTestingEnvSpecs = append(f.AllTestingEnvSpecs, spec)
	if strings.Contains(spec.EntryPoint, mujocoEntryPoint) {
		f.MujocoTestingEnvSpecs = append(f.MujocoTestingEnvSpecs, spec)
	}
	for _, family := range gymFamilies {
		if strings.Contains(spec.EntryPoint, registry.BuiltinPrefix+family) {
			f.GymTestingEnvSpecs = append(f.GymTestingEnvSpecs, spec)
			break
		}
	}
}

// CloseAll closes every environment and returns the joined errors.
func (f *Fixtures) CloseAll() error {
	var errs []error
	for _, e := range f.AllTestingInitialisedEnvs {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	defaultOnce     sync.Once
	defaultFixtures *Fixtures
	defaultErr      error
)

// Default loads the fixtures of the built-in registry once per process.
// The context of the first call is used for logging.
func Default(ctx context.Context) (*Fixtures, error) {
	defaultOnce.Do(func() {
		reg, err := modules.NewRegistry(ctx)
		if err != nil {
			defaultErr = err
			return
		}
		defaultFixtures, defaultErr = Load(ctx, reg)
	})
	return defaultFixtures, defaultErr
}
