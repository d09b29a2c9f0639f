// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package wrappers

import (
	"log/slog"
	"math"

	"github.com/specialistvlad/simenv/internal/env"
)

// PassiveEnvChecker inspects the first Reset and the first Step of an
// environment and logs a warning for every contract violation it sees. It
// never changes results or fails calls.
type PassiveEnvChecker struct {
	env.Env
	logger       *slog.Logger
	checkedReset bool
	checkedStep  bool
	warnings     int
}

// NewPassiveEnvChecker wraps e and checks its declared spaces.
func NewPassiveEnvChecker(e env.Env, logger *slog.Logger) *PassiveEnvChecker {
	w := &PassiveEnvChecker{Env: e, logger: logger.With("env", envName(e))}
	if e.ObservationSpace() == nil {
		w.warn("Environment has no observation space.")
	}
	if e.ActionSpace() == nil {
		w.warn("Environment has no action space.")
	}
	return w
}

// Inner implements env.Wrapper.
func (w *PassiveEnvChecker) Inner() env.Env { return w.Env }

// Warnings returns how many violations were logged.
func (w *PassiveEnvChecker) Warnings() int { return w.warnings }

// Reset implements env.Env.
func (w *PassiveEnvChecker) Reset(opts env.ResetOptions) (any, env.Info, error) {
	obs, info, err := w.Env.Reset(opts)
	if err != nil || w.checkedReset {
		return obs, info, err
	}
	w.checkedReset = true
	w.checkObservation("reset", obs)
	if info == nil {
		w.warn("Reset returned a nil info map.")
	}
	return obs, info, nil
}

// Step implements env.Env.
func (w *PassiveEnvChecker) Step(action any) (env.StepResult, error) {
	if !w.checkedStep {
		if space := w.Env.ActionSpace(); space != nil && !space.Contains(action) {
			w.warn("Action is not within the action space.", "action", action, "space", space.String())
		}
	}
	res, err := w.Env.Step(action)
	if err != nil || w.checkedStep {
		return res, err
	}
	w.checkedStep = true
	w.checkObservation("step", res.Observation)
	if math.IsNaN(res.Reward) || math.IsInf(res.Reward, 0) {
		w.warn("Step returned a non-finite reward.", "reward", res.Reward)
	}
	return res, nil
}

func (w *PassiveEnvChecker) checkObservation(method string, obs any) {
	space := w.Env.ObservationSpace()
	if space == nil {
		return
	}
	if !space.Contains(obs) {
		w.warn("Observation is not within the observation space.", "method", method, "observation", obs, "space", space.String())
	}
}

func (w *PassiveEnvChecker) warn(msg string, args ...any) {
	w.warnings++
	w.logger.Warn(msg, args...)
}
