// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/simenv/internal/env"
)

// Factory builds an environment from its constructor arguments. It reports
// unavailable optional backends with env.ErrDependencyNotInstalled and absent
// required arguments with env.ErrMissingArgument.
type Factory func(ctx context.Context, kwargs env.Kwargs) (env.Env, error)

// RegisterFactory registers the Go constructor for an entry point.
func (r *Registry) RegisterFactory(entryPoint string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("factory for entry point '%s' is nil", entryPoint))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[entryPoint]; exists {
		panic(fmt.Sprintf("factory for entry point '%s' already registered", entryPoint))
	}
	slog.Debug("Registering environment factory.", "entry_point", entryPoint)
	r.factories[entryPoint] = factory
}

// Factory returns the factory registered for an entry point.
func (r *Registry) Factory(entryPoint string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[entryPoint]
	return f, ok
}

// EntryPoints returns every registered entry point, sorted.
func (r *Registry) EntryPoints() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for ep := range r.factories {
		out = append(out, ep)
	}
	sort.Strings(out)
	return out
}
