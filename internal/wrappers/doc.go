// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package wrappers contains the standard decorators applied by registry.Make.
// Each wrapper embeds the environment it decorates and implements env.Wrapper,
// so env.Unwrapped can recover the environment built by the factory.
package wrappers
