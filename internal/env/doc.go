// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package env defines the runtime contract of a simulation environment and the
// descriptor used to construct one.
//
// # Core Concepts
//
//   - Env: a runnable simulation. Callers Reset it to obtain an initial
//     observation and then Step it with actions until the episode terminates
//     or is truncated.
//
//   - Spec: the registration record of an environment. It names the factory
//     (EntryPoint) that builds the environment and the constructor arguments
//     (Kwargs) passed to it. Specs usually come from manifests.
//
//   - Wrapper: an Env that decorates another Env. Unwrapped follows the chain
//     of wrappers back to the environment produced by the factory.
//
// Factories report the reason an environment cannot be built with the
// sentinel errors declared in errors.go, so that test fixtures can tell an
// environment with a missing optional dependency apart from a broken one.
package env
