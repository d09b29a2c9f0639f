// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/specialistvlad/simenv/internal/env"
)

// BuiltinPrefix is the entry-point prefix of environments shipped with simenv.
const BuiltinPrefix = "simenv.envs."

// Module is the interface that all environment modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered factories and specs for a single application
// instance. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	specs     map[string]*env.Spec
	// order preserves spec registration order.
	order []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		specs:     make(map[string]*env.Spec),
	}
}

// RegisterSpec adds a spec. Duplicate ids and invalid specs are rejected.
func (r *Registry) RegisterSpec(spec *env.Spec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, exists := r.specs[spec.ID]; exists {
		if existing.Source != "" {
			return fmt.Errorf("environment %q already registered from %s", spec.ID, existing.Source)
		}
		return fmt.Errorf("environment %q already registered", spec.ID)
	}
	slog.Debug("Registering environment spec.", "id", spec.ID, "entry_point", spec.EntryPoint)
	r.specs[spec.ID] = spec
	r.order = append(r.order, spec.ID)
	return nil
}

// Spec returns the spec registered under id. For an unknown id the error
// wraps env.ErrUnknownEnv and lists the registered versions of the same name.
func (r *Registry) Spec(id string) (*env.Spec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if spec, ok := r.specs[id]; ok {
		return spec, nil
	}

	parsed, err := env.ParseID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", env.ErrUnknownEnv, err)
	}
	var versions []string
	for _, other := range r.order {
		o := r.specs[other].ParsedID()
		if o.Namespace == parsed.Namespace && o.Name == parsed.Name {
			versions = append(versions, other)
		}
	}
	if len(versions) > 0 {
		return nil, fmt.Errorf("%w: %q, registered versions: %s", env.ErrUnknownEnv, id, strings.Join(versions, ", "))
	}
	return nil, fmt.Errorf("%w: %q", env.ErrUnknownEnv, id)
}

// Specs returns every spec in registration order.
func (r *Registry) Specs() []*env.Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*env.Spec, len(r.order))
	for i, id := range r.order {
		out[i] = r.specs[id]
	}
	return out
}

// IDs returns every registered environment id, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
