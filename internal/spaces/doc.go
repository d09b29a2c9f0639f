// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package spaces describes the sets that observations and actions of an
// environment are drawn from.
//
// Every space can produce a random member (Sample) and test membership
// (Contains). Membership tests are lenient about Go numeric kinds: an int64
// action is a member of a Discrete space just like an int.
//
//   - Discrete: integers in [Start, Start+N).
//   - Box: float64 vectors bounded element-wise by Low and High.
//   - Tuple: a fixed-length []any whose elements belong to sub-spaces.
//   - Dict: a map[string]any with a fixed, ordered key set.
package spaces
