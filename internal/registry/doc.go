// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package registry provides the central "glue" between environment specs and
// the Go code that builds environments.
//
// The Registry stores two mappings. Factories map an entry-point name such as
// "simenv.envs.classic_control.cartpole:CartPoleEnv" to the Go function that
// constructs the environment; they are registered by modules at startup.
// Specs map an environment id such as "CartPole-v1" to its registration
// record; they are usually loaded from manifests.
//
// Make resolves an id to its spec, calls the spec's factory with the spec's
// kwargs and applies the standard wrappers. Validate checks that every
// built-in spec points at a registered factory, so that a mismatch between the
// manifests and the compiled modules is caught at startup instead of during a
// run.
package registry
