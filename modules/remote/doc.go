// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package remote runs environments hosted by an environment server and
// reached over socket.io. A connected Backend satisfies the box2d, mujoco
// and gym optional backends, so binaries without native physics engines can
// still make those environments.
//
// Every request is a "call" event carrying {"id", "op", "args"}. The server
// answers with a "result" event carrying the same id and either a "value" or
// an "error" object {"kind", "message"}. Error kinds "dependency_not_installed",
// "missing_argument" and "invalid_argument" map to the env sentinel errors.
//
// Operations:
//
//	make   {name, kwargs}           -> {env, observation_space, action_space}
//	reset  {env, seed?, options?}   -> {observation, info}
//	step   {env, action}            -> {observation, reward, terminated, truncated, info}
//	close  {env}                    -> {}
//
// Spaces are described as {"type": "discrete", "n", "start"},
// {"type": "box", "low", "high"} (infinite bounds as "inf" and "-inf"),
// {"type": "tuple", "spaces"} or {"type": "dict", "keys", "spaces"}.
package remote
