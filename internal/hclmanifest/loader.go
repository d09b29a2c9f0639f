// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hclmanifest

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/ctyconv"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/fsutil"
	"github.com/specialistvlad/simenv/internal/manifest"
	"github.com/zclconf/go-cty/cty"
)

// Extension is the file extension of HCL manifests.
const Extension = ".hcl"

// Loader is the HCL implementation of manifest.Loader and manifest.FSLoader.
type Loader struct{}

var (
	_ manifest.Loader   = (*Loader)(nil)
	_ manifest.FSLoader = (*Loader)(nil)
)

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// manifestSchema defines the top-level structure of the file, expecting one or
// more 'env' blocks.
type manifestSchema struct {
	Envs []*hclEnv `hcl:"env,block"`
}

// hclEnv represents a single 'env' block in the HCL file for decoding purposes.
type hclEnv struct {
	ID                string         `hcl:"id,label"`
	EntryPoint        string         `hcl:"entry_point"`
	MaxEpisodeSteps   *int           `hcl:"max_episode_steps,optional"`
	RewardThreshold   *float64       `hcl:"reward_threshold,optional"`
	Nondeterministic  *bool          `hcl:"nondeterministic,optional"`
	OrderEnforce      *bool          `hcl:"order_enforce,optional"`
	DisableEnvChecker *bool          `hcl:"disable_env_checker,optional"`
	Kwargs            hcl.Expression `hcl:"kwargs,optional"`
}

// Load parses every .hcl file under the given paths.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*env.Spec, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	var specs []*env.Spec
	for _, root := range paths {
		filePaths, err := fsutil.FindFilesByExtension(root, Extension)
		if err != nil {
			logger.Error("Failed to walk manifest path", "path", root, "error", err)
			return nil, err
		}
		if len(filePaths) == 0 {
			logger.Warn("No .hcl manifest files found in path", "path", root)
			continue
		}
		logger.Debug("Found HCL manifests to load", "files", filePaths)

		for _, filePath := range filePaths {
			file, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
			}
			fileSpecs, diags := ParseFile(ctx, file, filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to process environment definitions in %s: %w", filePath, diags)
			}
			specs = append(specs, fileSpecs...)
		}
	}
	return specs, nil
}

// LoadFS parses every .hcl file in fsys.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) ([]*env.Spec, error) {
	filePaths, err := fsutil.FindFSFilesByExtension(fsys, Extension)
	if err != nil {
		return nil, err
	}
	parser := hclparse.NewParser()

	var specs []*env.Spec
	for _, filePath := range filePaths {
		src, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return nil, err
		}
		file, diags := parser.ParseHCL(src, filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}
		fileSpecs, diags := ParseFile(ctx, file, filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to process environment definitions in %s: %w", filePath, diags)
		}
		specs = append(specs, fileSpecs...)
	}
	return specs, nil
}

// ParseFile decodes the env blocks of a parsed HCL file.
func ParseFile(ctx context.Context, file *hcl.File, filePath string) ([]*env.Spec, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing environment definitions from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if file == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &manifestSchema{}
	diags := gohcl.DecodeBody(file.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	specs := make([]*env.Spec, 0, len(schema.Envs))
	for _, block := range schema.Envs {
		spec := &env.Spec{
			ID:           block.ID,
			EntryPoint:   block.EntryPoint,
			OrderEnforce: true,
			Source:       filePath,
		}
		if block.MaxEpisodeSteps != nil {
			spec.MaxEpisodeSteps = *block.MaxEpisodeSteps
		}
		spec.RewardThreshold = block.RewardThreshold
		if block.Nondeterministic != nil {
			spec.Nondeterministic = *block.Nondeterministic
		}
		if block.OrderEnforce != nil {
			spec.OrderEnforce = *block.OrderEnforce
		}
		if block.DisableEnvChecker != nil {
			spec.DisableEnvChecker = *block.DisableEnvChecker
		}

		kwargs, kwDiags := decodeKwargs(block.Kwargs)
		allDiags = append(allDiags, kwDiags...)
		if kwDiags.HasErrors() {
			continue // Skip this env but continue parsing others
		}
		spec.Kwargs = kwargs

		if err := spec.Validate(); err != nil {
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid environment definition",
				Detail:   err.Error(),
			})
			continue
		}
		specs = append(specs, spec)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed environment definitions", "count", len(specs))
	return specs, allDiags
}

// decodeKwargs evaluates the kwargs expression, which must be an object or
// map, and converts it to native Go values.
func decodeKwargs(expr hcl.Expression) (env.Kwargs, hcl.Diagnostics) {
	if expr == nil {
		return env.Kwargs{}, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return env.Kwargs{}, diags
	}

	ty := val.Type()
	if !isObjectLike(ty) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid kwargs",
			Detail:   fmt.Sprintf("The 'kwargs' attribute must be an object, got %s.", ty.FriendlyName()),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}

	native, err := ctyconv.ToNative(val)
	if err != nil {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid kwargs",
			Detail:   err.Error(),
			Subject:  expr.Range().Ptr(),
		})
		return nil, diags
	}
	return env.Kwargs(native.(map[string]any)), diags
}

func isObjectLike(ty cty.Type) bool {
	return ty.IsObjectType() || ty.IsMapType()
}
