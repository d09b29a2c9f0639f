// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package yamlmanifest loads environment specs from YAML manifests, for users
// who keep their registrations next to other YAML configuration.
//
//	envs:
//	  - id: CartPole-v1
//	    entry_point: simenv.envs.classic_control.cartpole:CartPoleEnv
//	    max_episode_steps: 500
//	    kwargs:
//	      sutton_barto_reward: false
//
// The resulting specs are identical to those produced by hclmanifest:
// order_enforce defaults to true and numeric kwargs decode as float64.
package yamlmanifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/fsutil"
	"github.com/specialistvlad/simenv/internal/manifest"
	"gopkg.in/yaml.v3"
)

// Extensions are the file extensions recognised as YAML manifests.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of manifest.Loader and manifest.FSLoader.
type Loader struct{}

var (
	_ manifest.Loader   = (*Loader)(nil)
	_ manifest.FSLoader = (*Loader)(nil)
)

// NewLoader creates a new YAML manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

type document struct {
	Envs []yamlEnv `yaml:"envs"`
}

type yamlEnv struct {
	ID                string         `yaml:"id"`
	EntryPoint        string         `yaml:"entry_point"`
	MaxEpisodeSteps   int            `yaml:"max_episode_steps"`
	RewardThreshold   *float64       `yaml:"reward_threshold"`
	Nondeterministic  bool           `yaml:"nondeterministic"`
	OrderEnforce      *bool          `yaml:"order_enforce"`
	DisableEnvChecker bool           `yaml:"disable_env_checker"`
	Kwargs            map[string]any `yaml:"kwargs"`
}

// Load parses every YAML manifest under the given paths.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*env.Spec, error) {
	logger := ctxlog.FromContext(ctx)

	var specs []*env.Spec
	for _, root := range paths {
		filePaths, err := fsutil.FindFilesByExtension(root, Extensions...)
		if err != nil {
			return nil, err
		}
		if len(filePaths) == 0 {
			logger.Warn("No YAML manifest files found in path", "path", root)
			continue
		}
		for _, filePath := range filePaths {
			src, err := os.ReadFile(filePath)
			if err != nil {
				return nil, err
			}
			fileSpecs, err := Parse(src, filePath)
			if err != nil {
				return nil, err
			}
			specs = append(specs, fileSpecs...)
		}
	}
	return specs, nil
}

// LoadFS parses every YAML manifest in fsys.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) ([]*env.Spec, error) {
	filePaths, err := fsutil.FindFSFilesByExtension(fsys, Extensions...)
	if err != nil {
		return nil, err
	}
	var specs []*env.Spec
	for _, filePath := range filePaths {
		src, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return nil, err
		}
		fileSpecs, err := Parse(src, filePath)
		if err != nil {
			return nil, err
		}
		specs = append(specs, fileSpecs...)
	}
	return specs, nil
}

// Parse decodes a single YAML manifest. Unknown fields are rejected.
func Parse(src []byte, filePath string) ([]*env.Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filePath, err)
	}

	specs := make([]*env.Spec, 0, len(doc.Envs))
	for _, e := range doc.Envs {
		spec := &env.Spec{
			ID:                e.ID,
			EntryPoint:        e.EntryPoint,
			MaxEpisodeSteps:   e.MaxEpisodeSteps,
			RewardThreshold:   e.RewardThreshold,
			Nondeterministic:  e.Nondeterministic,
			OrderEnforce:      true,
			DisableEnvChecker: e.DisableEnvChecker,
			Kwargs:            env.Kwargs{},
			Source:            filePath,
		}
		if e.OrderEnforce != nil {
			spec.OrderEnforce = *e.OrderEnforce
		}
		for k, v := range e.Kwargs {
			spec.Kwargs[k] = normalize(v)
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("invalid environment definition in %s: %w", filePath, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// normalize converts YAML integers to float64 so YAML and HCL manifests
// produce identical kwargs.
func normalize(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	default:
		return v
	}
}
