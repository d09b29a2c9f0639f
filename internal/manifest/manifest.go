// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package manifest defines the format-agnostic interface for loading
// environment specs from declarative files. Concrete loaders live in the
// hclmanifest and yamlmanifest packages.
package manifest

import (
	"context"
	"io/fs"

	"github.com/specialistvlad/simenv/internal/env"
)

// Loader reads environment specs from files or directories.
type Loader interface {
	// Load reads every manifest found under the given paths. Directories are
	// searched recursively.
	Load(ctx context.Context, paths ...string) ([]*env.Spec, error)
}

// FSLoader reads environment specs from an fs.FS, such as manifests embedded
// into the binary.
type FSLoader interface {
	LoadFS(ctx context.Context, fsys fs.FS) ([]*env.Spec, error)
}

// Chain combines loaders of different formats. Every loader reads the files
// it recognises under the paths, and the specs are concatenated in loader
// order.
type Chain []Loader

// Load implements Loader.
func (c Chain) Load(ctx context.Context, paths ...string) ([]*env.Spec, error) {
	var specs []*env.Spec
	for _, l := range c {
		s, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		specs = append(specs, s...)
	}
	return specs, nil
}
