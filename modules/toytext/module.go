// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package toytext provides small grid-world environments with discrete
// observations.
package toytext

import (
	"github.com/specialistvlad/simenv/internal/registry"
)

// FrozenLakeEntryPoint is the entry point of the frozen-lake environment.
const FrozenLakeEntryPoint = "simenv.envs.toy_text.frozen_lake:FrozenLakeEnv"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the factories with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFactory(FrozenLakeEntryPoint, NewFrozenLake)
}
