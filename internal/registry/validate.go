// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/simenv/internal/ctxlog"
)

// Validate performs a parity check between the registered specs and the
// registered factories. Built-in specs must resolve to a factory; third-party
// specs without one only produce a warning, as their module may be linked
// into another binary.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, spec := range r.Specs() {
		if _, ok := r.Factory(spec.EntryPoint); ok {
			continue
		}
		if strings.HasPrefix(spec.EntryPoint, BuiltinPrefix) {
			errs = append(errs, fmt.Sprintf("environment '%s': no factory registered for entry point '%s'", spec.ID, spec.EntryPoint))
			continue
		}
		logger.Warn("Environment has no registered factory and cannot be made by this binary.", "id", spec.ID, "entry_point", spec.EntryPoint)
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
