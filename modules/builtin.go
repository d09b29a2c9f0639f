// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package modules bundles the environment modules compiled into simenv
// together with the manifest that registers their specs.
package modules

import (
	"context"
	"embed"

	"github.com/specialistvlad/simenv/internal/hclmanifest"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/modules/box2d"
	"github.com/specialistvlad/simenv/modules/classiccontrol"
	"github.com/specialistvlad/simenv/modules/compat"
	"github.com/specialistvlad/simenv/modules/mujoco"
	"github.com/specialistvlad/simenv/modules/toytext"
)

// Manifests holds the built-in environment specs.
//
//go:embed *.hcl
var Manifests embed.FS

// CoreModules is the definitive list of all modules that are compiled into
// the simenv binary.
var CoreModules = []registry.Module{
	&classiccontrol.Module{},
	&toytext.Module{},
	&box2d.Module{},
	&mujoco.Module{},
	&compat.Module{},
}

// NewRegistry returns a registry holding the core modules and the built-in
// specs, validated.
func NewRegistry(ctx context.Context) (*registry.Registry, error) {
	reg := registry.New()
	for _, mod := range CoreModules {
		mod.Register(reg)
	}
	if err := reg.LoadSpecsFS(ctx, hclmanifest.NewLoader(), Manifests); err != nil {
		return nil, err
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}
