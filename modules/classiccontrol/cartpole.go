// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package classiccontrol

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// Physical constants of the cart-pole system.
const (
	gravity        = 9.8
	massCart       = 1.0
	massPole       = 0.1
	totalMass      = massPole + massCart
	poleHalfLength = 0.5
	poleMassLength = massPole * poleHalfLength
	forceMag       = 10.0
	tau            = 0.02 // seconds between state updates

	// Angle at which to fail the episode, 12 degrees.
	thetaThreshold = 12 * 2 * math.Pi / 360
	xThreshold     = 2.4
)

// CartPole balances a pole hinged to a cart moving along a frictionless track.
//
// The observation is [cart position, cart velocity, pole angle, pole angular
// velocity]. Action 0 pushes the cart left, action 1 pushes it right. The
// episode terminates when the pole tilts more than 12 degrees or the cart
// leaves the track.
type CartPole struct {
	env.Base

	suttonBartoReward bool
	logger            *slog.Logger

	state                 []float64
	stepsBeyondTerminated *int

	observationSpace spaces.Box
	actionSpace      spaces.Discrete
}

// CartPoleInput defines the arguments of CartPole. SuttonBartoReward rewards
// 0 per step and -1 on termination.
type CartPoleInput struct {
	SuttonBartoReward bool `cty:"sutton_barto_reward"`
}

// NewCartPole is the factory for CartPole.
func NewCartPole(ctx context.Context, kwargs env.Kwargs) (env.Env, error) {
	var in CartPoleInput
	if err := kwargs.Decode(&in); err != nil {
		return nil, err
	}

	high := []float64{xThreshold * 2, math.Inf(1), thetaThreshold * 2, math.Inf(1)}
	low := make([]float64, len(high))
	for i, h := range high {
		low[i] = -h
	}

	return &CartPole{
		suttonBartoReward: in.SuttonBartoReward,
		logger:            ctxlog.FromContext(ctx),
		observationSpace:  spaces.NewBox(low, high),
		actionSpace:       spaces.NewDiscrete(2),
	}, nil
}

// ObservationSpace implements env.Env.
func (c *CartPole) ObservationSpace() spaces.Space { return c.observationSpace }

// ActionSpace implements env.Env.
func (c *CartPole) ActionSpace() spaces.Space { return c.actionSpace }

// Reset implements env.Env. Every state variable starts uniformly in
// [-0.05, 0.05].
func (c *CartPole) Reset(opts env.ResetOptions) (any, env.Info, error) {
	c.ApplySeed(opts)
	r := c.Rand()
	c.state = make([]float64, 4)
	for i := range c.state {
		c.state[i] = -0.05 + 0.1*r.Float64()
	}
	c.stepsBeyondTerminated = nil
	return c.observation(), env.Info{}, nil
}

// Step implements env.Env.
func (c *CartPole) Step(action any) (env.StepResult, error) {
	if !c.actionSpace.Contains(action) {
		return env.StepResult{}, fmt.Errorf("%w: %v (%T) is not in %s", env.ErrInvalidAction, action, action, c.actionSpace)
	}
	if c.state == nil {
		return env.StepResult{}, fmt.Errorf("cart-pole: %w", env.ErrResetNeeded)
	}

	x, xDot, theta, thetaDot := c.state[0], c.state[1], c.state[2], c.state[3]
	force := -forceMag
	if isOne(action) {
		force = forceMag
	}
	cosTheta, sinTheta := math.Cos(theta), math.Sin(theta)

	temp := (force + poleMassLength*thetaDot*thetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) /
		(poleHalfLength * (4.0/3.0 - massPole*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	x += tau * xDot
	xDot += tau * xAcc
	theta += tau * thetaDot
	thetaDot += tau * thetaAcc
	c.state = []float64{x, xDot, theta, thetaDot}

	terminated := x < -xThreshold || x > xThreshold ||
		theta < -thetaThreshold || theta > thetaThreshold

	var reward float64
	switch {
	case !terminated:
		reward = 1
		if c.suttonBartoReward {
			reward = 0
		}
	case c.stepsBeyondTerminated == nil:
		// Pole just fell.
		zero := 0
		c.stepsBeyondTerminated = &zero
		reward = 1
		if c.suttonBartoReward {
			reward = -1
		}
	default:
		if *c.stepsBeyondTerminated == 0 {
			c.logger.Warn("Step called after the episode terminated; call Reset before stepping again.")
		}
		*c.stepsBeyondTerminated++
		reward = 0
		if c.suttonBartoReward {
			reward = -1
		}
	}

	return env.StepResult{
		Observation: c.observation(),
		Reward:      reward,
		Terminated:  terminated,
		Info:        env.Info{},
	}, nil
}

// State returns a copy of the current physical state.
func (c *CartPole) State() []float64 {
	return append([]float64(nil), c.state...)
}

func (c *CartPole) observation() []float64 {
	return c.State()
}

// isOne reports whether a numeric action of any kind equals 1.
func isOne(action any) bool {
	return spaces.Discrete{N: 1, Start: 1}.Contains(action)
}
