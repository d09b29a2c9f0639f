// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

import "errors"

var (
	// ErrDependencyNotInstalled is returned by a factory whose optional backend
	// is not linked into the binary.
	ErrDependencyNotInstalled = errors.New("dependency not installed")

	// ErrMissingArgument is returned when a required constructor argument is
	// absent from the spec kwargs.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidArgument is returned when a constructor argument has the wrong
	// type or an unsupported value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEntryPointNotFound is returned when no factory is registered under a
	// spec's entry point.
	ErrEntryPointNotFound = errors.New("entry point not found")

	// ErrUnknownEnv is returned when an environment id is not registered.
	ErrUnknownEnv = errors.New("unknown environment")

	// ErrResetNeeded is returned when Step is called before Reset.
	ErrResetNeeded = errors.New("cannot call step before reset")

	// ErrInvalidAction is returned when an action is outside the action space.
	ErrInvalidAction = errors.New("invalid action")
)
