// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/manifest"
)

// LoadSpecs loads manifests from the given paths and registers every spec
// they declare.
func (r *Registry) LoadSpecs(ctx context.Context, loader manifest.Loader, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading environment specs...", "paths", paths)

	specs, err := loader.Load(ctx, paths...)
	if err != nil {
		return fmt.Errorf("failed to load environment manifests: %w", err)
	}
	return r.registerAll(ctx, specs)
}

// LoadSpecsFS loads manifests from an fs.FS and registers every spec they
// declare.
func (r *Registry) LoadSpecsFS(ctx context.Context, loader manifest.FSLoader, fsys fs.FS) error {
	specs, err := loader.LoadFS(ctx, fsys)
	if err != nil {
		return fmt.Errorf("failed to load embedded environment manifests: %w", err)
	}
	return r.registerAll(ctx, specs)
}

func (r *Registry) registerAll(ctx context.Context, specs []*env.Spec) error {
	for _, spec := range specs {
		if err := r.RegisterSpec(spec); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Info("Environment specs loaded.", "specs_loaded", len(specs), "total", r.Len())
	return nil
}
