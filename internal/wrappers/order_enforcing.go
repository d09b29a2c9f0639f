// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package wrappers

import (
	"fmt"

	"github.com/specialistvlad/simenv/internal/env"
)

// OrderEnforcing rejects Step until Reset has succeeded once.
type OrderEnforcing struct {
	env.Env
	hasReset bool
}

// NewOrderEnforcing wraps e.
func NewOrderEnforcing(e env.Env) *OrderEnforcing {
	return &OrderEnforcing{Env: e}
}

// Inner implements env.Wrapper.
func (w *OrderEnforcing) Inner() env.Env { return w.Env }

// HasReset reports whether Reset has been called.
func (w *OrderEnforcing) HasReset() bool { return w.hasReset }

// Reset implements env.Env.
func (w *OrderEnforcing) Reset(opts env.ResetOptions) (any, env.Info, error) {
	obs, info, err := w.Env.Reset(opts)
	if err != nil {
		return nil, nil, err
	}
	w.hasReset = true
	return obs, info, nil
}

// Step implements env.Env.
func (w *OrderEnforcing) Step(action any) (env.StepResult, error) {
	if !w.hasReset {
		return env.StepResult{}, fmt.Errorf("%s: %w", envName(w.Env), env.ErrResetNeeded)
	}
	return w.Env.Step(action)
}

func envName(e env.Env) string {
	if spec := e.Spec(); spec != nil {
		return spec.ID
	}
	return fmt.Sprintf("%T", env.Unwrapped(e))
}
