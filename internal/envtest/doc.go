// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package envtest finds the registered environments that can be exercised by
// tests and provides a structural equality assertion for their outputs.
//
// Load tries to make every spec of a registry whose entry point belongs to
// simenv. Environments whose optional backend is not linked, whose entry
// point has no factory, or which need an argument the spec does not carry are
// skipped with a warning. The environments that could be made, and their
// specs grouped by family, are returned as Fixtures. Default does this once
// per process for the built-in registry:
//
//	fx, err := envtest.Default(ctx)
//	require.NoError(t, err)
//	for _, spec := range fx.GymTestingEnvSpecs {
//		...
//	}
//
// The environments in Fixtures are unwrapped: they carry no time limit,
// order enforcement or env checker.
package envtest
