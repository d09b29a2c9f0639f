// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package remote

import (
	"context"
	"fmt"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/deps"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/spaces"
	"github.com/specialistvlad/simenv/modules/compat"
)

// Backend makes environments on the environment server. It implements
// deps.EnvBackend and compat.Runtime.
type Backend struct {
	caller Caller
}

var (
	_ deps.EnvBackend = (*Backend)(nil)
	_ compat.Runtime  = (*Backend)(nil)
)

// NewBackend returns a Backend issuing requests through caller.
func NewBackend(caller Caller) *Backend {
	return &Backend{caller: caller}
}

// Provide registers b as the given optional backends, or as every backend
// it can serve when none are named.
func (b *Backend) Provide(names ...string) {
	if len(names) == 0 {
		names = []string{deps.Box2D, deps.MuJoCo, deps.Gym}
	}
	for _, name := range names {
		deps.Provide(name, b)
	}
}

// Close closes the connection to the server.
func (b *Backend) Close() error {
	return b.caller.Close()
}

// NewEnv implements deps.EnvBackend.
func (b *Backend) NewEnv(ctx context.Context, name string, kwargs env.Kwargs) (env.Env, error) {
	ctxlog.FromContext(ctx).Debug("Making remote environment.", "name", name)
	h, err := b.makeEnv(ctx, name, kwargs)
	if err != nil {
		return nil, err
	}
	return &Env{handle: h}, nil
}

// Make implements compat.Runtime.
func (b *Backend) Make(ctx context.Context, envID string, kwargs env.Kwargs) (compat.LegacyEnv, error) {
	ctxlog.FromContext(ctx).Debug("Making remote legacy environment.", "env_id", envID)
	h, err := b.makeEnv(ctx, envID, kwargs)
	if err != nil {
		return nil, err
	}
	return &legacyEnv{handle: h}, nil
}

func (b *Backend) makeEnv(ctx context.Context, name string, kwargs env.Kwargs) (*handle, error) {
	if kwargs == nil {
		kwargs = env.Kwargs{}
	}
	value, err := b.caller.Call(ctx, "make", map[string]any{"name": name, "kwargs": map[string]any(kwargs)})
	if err != nil {
		return nil, err
	}
	id, ok := value["env"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("remote make %s: server returned no environment handle", name)
	}
	obsSpace, err := decodeSpace(value["observation_space"])
	if err != nil {
		return nil, fmt.Errorf("remote make %s: observation space: %w", name, err)
	}
	actSpace, err := decodeSpace(value["action_space"])
	if err != nil {
		return nil, fmt.Errorf("remote make %s: action space: %w", name, err)
	}
	return &handle{
		caller:   b.caller,
		id:       id,
		obsSpace: obsSpace,
		actSpace: actSpace,
	}, nil
}

// handle is an environment living on the server.
type handle struct {
	caller   Caller
	id       string
	obsSpace spaces.Space
	actSpace spaces.Space
	closed   bool
}

func (h *handle) reset(seed *uint64, options map[string]any) (any, env.Info, error) {
	args := map[string]any{"env": h.id}
	if seed != nil {
		args["seed"] = *seed
	}
	if options != nil {
		args["options"] = options
	}
	value, err := h.caller.Call(context.Background(), "reset", args)
	if err != nil {
		return nil, nil, err
	}
	return decodeValue(h.obsSpace, value["observation"]), decodeInfo(value["info"]), nil
}

func (h *handle) step(action any) (env.StepResult, error) {
	value, err := h.caller.Call(context.Background(), "step", map[string]any{"env": h.id, "action": action})
	if err != nil {
		return env.StepResult{}, err
	}
	reward, _ := value["reward"].(float64)
	terminated, _ := value["terminated"].(bool)
	truncated, _ := value["truncated"].(bool)
	return env.StepResult{
		Observation: decodeValue(h.obsSpace, value["observation"]),
		Reward:      reward,
		Terminated:  terminated,
		Truncated:   truncated,
		Info:        decodeInfo(value["info"]),
	}, nil
}

func (h *handle) close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	_, err := h.caller.Call(context.Background(), "close", map[string]any{"env": h.id})
	return err
}

// Env is an environment running on the server.
type Env struct {
	env.Base
	handle *handle
}

// Handle returns the server's id of the environment.
func (e *Env) Handle() string { return e.handle.id }

// Reset implements env.Env.
func (e *Env) Reset(opts env.ResetOptions) (any, env.Info, error) {
	return e.handle.reset(opts.Seed, opts.Options)
}

// Step implements env.Env.
func (e *Env) Step(action any) (env.StepResult, error) { return e.handle.step(action) }

// ObservationSpace implements env.Env.
func (e *Env) ObservationSpace() spaces.Space { return e.handle.obsSpace }

// ActionSpace implements env.Env.
func (e *Env) ActionSpace() spaces.Space { return e.handle.actSpace }

// Close implements env.Env.
func (e *Env) Close() error { return e.handle.close() }

// legacyEnv exposes a handle through the legacy contract.
type legacyEnv struct {
	handle *handle
}

func (l *legacyEnv) Reset(seed *uint64, options map[string]any) (any, map[string]any, error) {
	obs, info, err := l.handle.reset(seed, options)
	return obs, info, err
}

func (l *legacyEnv) Step(action any) (any, float64, bool, bool, map[string]any, error) {
	res, err := l.handle.step(action)
	if err != nil {
		return nil, 0, false, false, nil, err
	}
	return res.Observation, res.Reward, res.Terminated, res.Truncated, res.Info, nil
}

func (l *legacyEnv) ObservationSpace() spaces.Space { return l.handle.obsSpace }
func (l *legacyEnv) ActionSpace() spaces.Space      { return l.handle.actSpace }
func (l *legacyEnv) Close() error                   { return l.handle.close() }
