// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/wrappers"
)

type makeOptions struct {
	kwargs            env.Kwargs
	disableEnvChecker *bool
	maxEpisodeSteps   *int
}

// MakeOption customises a single Make call.
type MakeOption func(*makeOptions)

// WithKwargs overrides constructor arguments from the spec.
func WithKwargs(kwargs env.Kwargs) MakeOption {
	return func(o *makeOptions) { o.kwargs = kwargs }
}

// DisableEnvChecker skips the passive environment checker.
func DisableEnvChecker() MakeOption {
	return func(o *makeOptions) {
		disabled := true
		o.disableEnvChecker = &disabled
	}
}

// WithMaxEpisodeSteps overrides the spec's episode limit. Zero disables it.
func WithMaxEpisodeSteps(n int) MakeOption {
	return func(o *makeOptions) { o.maxEpisodeSteps = &n }
}

// Make builds the environment registered under id.
func (r *Registry) Make(ctx context.Context, id string, opts ...MakeOption) (env.Env, error) {
	spec, err := r.Spec(id)
	if err != nil {
		return nil, err
	}
	return r.MakeSpec(ctx, spec, opts...)
}

// MakeSpec builds an environment from a spec, which need not be registered.
//
// The factory receives the spec kwargs merged with any WithKwargs overrides.
// The result is wrapped, innermost first, by the passive env checker, the
// order-enforcing wrapper and the time limit, each when enabled. The
// environment returned by the factory records a copy of the spec carrying the
// effective kwargs.
func (r *Registry) MakeSpec(ctx context.Context, spec *env.Spec, opts ...MakeOption) (env.Env, error) {
	logger := ctxlog.FromContext(ctx)

	o := &makeOptions{}
	for _, opt := range opts {
		opt(o)
	}

	effective := spec.Copy()
	if o.kwargs != nil {
		effective.Kwargs = effective.Kwargs.Merge(o.kwargs)
	}
	if effective.Kwargs == nil {
		effective.Kwargs = env.Kwargs{}
	}
	if o.disableEnvChecker != nil {
		effective.DisableEnvChecker = *o.disableEnvChecker
	}
	if o.maxEpisodeSteps != nil {
		effective.MaxEpisodeSteps = *o.maxEpisodeSteps
	}

	factory, ok := r.Factory(effective.EntryPoint)
	if !ok {
		return nil, fmt.Errorf("cannot make %s: %w: %q", effective.ID, env.ErrEntryPointNotFound, effective.EntryPoint)
	}

	logger.Debug("Making environment.", "id", effective.ID, "entry_point", effective.EntryPoint, "kwargs", effective.Kwargs)
	e, err := factory(ctx, effective.Kwargs)
	if err != nil {
		return nil, fmt.Errorf("cannot make %s: %w", effective.ID, err)
	}
	if e == nil {
		return nil, fmt.Errorf("cannot make %s: factory for %q returned a nil environment", effective.ID, effective.EntryPoint)
	}

	if setter, ok := env.Unwrapped(e).(env.SpecSetter); ok {
		setter.SetSpec(effective)
	}

	if !effective.DisableEnvChecker {
		e = wrappers.NewPassiveEnvChecker(e, logger)
	}
	if effective.OrderEnforce {
		e = wrappers.NewOrderEnforcing(e)
	}
	if effective.MaxEpisodeSteps > 0 {
		e = wrappers.NewTimeLimit(e, effective.MaxEpisodeSteps)
	}

	logger.Debug("Environment made.", "id", effective.ID)
	return e, nil
}
