// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package deps tracks which optional simulation backends are linked into the
// binary. A backend package registers itself by calling Provide from an init
// function; environments that need it fetch it with Lookup from their
// factory and surface env.ErrDependencyNotInstalled when it is absent.
package deps

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/specialistvlad/simenv/internal/env"
)

// Well-known backend names.
const (
	Box2D  = "box2d"
	MuJoCo = "mujoco"
	Gym    = "gym"
)

// hints tell the user how to enable a backend.
var hints = map[string]string{
	Box2D:  "link a Box2D physics backend to run box2d environments",
	MuJoCo: "link a MuJoCo backend and make the MuJoCo shared library available",
	Gym:    "link the legacy gym runtime to use the compatibility environment",
}

var (
	mu       sync.RWMutex
	backends = map[string]any{}
)

// Provide registers the implementation of a backend.
func Provide(name string, backend any) {
	if backend == nil {
		panic(fmt.Sprintf("deps: backend %q is nil", name))
	}
	mu.Lock()
	backends[name] = backend
	mu.Unlock()
}

// Available reports whether a backend has been provided.
func Available(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Require returns an error wrapping env.ErrDependencyNotInstalled when the
// backend is not available.
func Require(name string) error {
	if Available(name) {
		return nil
	}
	if hint, ok := hints[name]; ok {
		return fmt.Errorf("%w: %s backend is not available, %s", env.ErrDependencyNotInstalled, name, hint)
	}
	return fmt.Errorf("%w: %s backend is not available", env.ErrDependencyNotInstalled, name)
}

// Lookup returns the backend registered under name as a T.
func Lookup[T any](name string) (T, error) {
	var zero T
	if err := Require(name); err != nil {
		return zero, err
	}
	mu.RLock()
	b := backends[name]
	mu.RUnlock()
	out, ok := b.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s backend has type %T, want %v", env.ErrDependencyNotInstalled, name, b, reflect.TypeFor[T]())
	}
	return out, nil
}

// Provided returns the sorted names of all available backends.
func Provided() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset forgets every provided backend. It exists for tests.
func Reset() {
	mu.Lock()
	backends = map[string]any{}
	mu.Unlock()
}

// EnvBackend builds environments whose simulation lives in an optional
// backend, such as a physics engine.
type EnvBackend interface {
	NewEnv(ctx context.Context, name string, kwargs env.Kwargs) (env.Env, error)
}
