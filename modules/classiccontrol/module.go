// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package classiccontrol provides the classic control environments.
package classiccontrol

import (
	"github.com/specialistvlad/simenv/internal/registry"
)

// CartPoleEntryPoint is the entry point of the cart-pole environment.
const CartPoleEntryPoint = "simenv.envs.classic_control.cartpole:CartPoleEnv"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factories with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(CartPoleEntryPoint, NewCartPole)
}
