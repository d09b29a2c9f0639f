// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package wrappers

import (
	"fmt"

	"github.com/specialistvlad/simenv/internal/env"
)

// TimeLimit truncates episodes after a fixed number of steps.
type TimeLimit struct {
	env.Env
	maxSteps int
	elapsed  int
}

// NewTimeLimit wraps e. maxSteps must be positive.
func NewTimeLimit(e env.Env, maxSteps int) *TimeLimit {
	if maxSteps <= 0 {
		panic(fmt.Sprintf("wrappers: time limit must be positive, got %d", maxSteps))
	}
	return &TimeLimit{Env: e, maxSteps: maxSteps}
}

// Inner implements env.Wrapper.
func (w *TimeLimit) Inner() env.Env { return w.Env }

// MaxEpisodeSteps returns the configured limit.
func (w *TimeLimit) MaxEpisodeSteps() int { return w.maxSteps }

// Elapsed returns the number of steps taken in the current episode.
func (w *TimeLimit) Elapsed() int { return w.elapsed }

// Reset implements env.Env.
func (w *TimeLimit) Reset(opts env.ResetOptions) (any, env.Info, error) {
	w.elapsed = 0
	return w.Env.Reset(opts)
}

// Step implements env.Env.
func (w *TimeLimit) Step(action any) (env.StepResult, error) {
	res, err := w.Env.Step(action)
	if err != nil {
		return res, err
	}
	w.elapsed++
	if w.elapsed >= w.maxSteps {
		res.Truncated = true
	}
	return res, nil
}
