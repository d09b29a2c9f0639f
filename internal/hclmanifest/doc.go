// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package hclmanifest loads environment specs from HCL manifests.
//
// A manifest holds one or more env blocks labelled with the environment id:
//
//	env "FrozenLake-v1" {
//	  entry_point       = "simenv.envs.toy_text.frozen_lake:FrozenLakeEnv"
//	  max_episode_steps = 100
//	  reward_threshold  = 0.70
//
//	  kwargs = {
//	    map_name    = "4x4"
//	    is_slippery = true
//	  }
//	}
//
// order_enforce defaults to true. kwargs is an arbitrary object; its values
// are converted to native Go values (string, float64, bool, []any and
// map[string]any) before they reach the environment factory.
package hclmanifest
