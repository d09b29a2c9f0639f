package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/simenv/internal/ctxlog"
	"github.com/specialistvlad/simenv/internal/hclmanifest"
	"github.com/specialistvlad/simenv/internal/manifest"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/internal/yamlmanifest"
	"github.com/specialistvlad/simenv/modules"
	"github.com/specialistvlad/simenv/modules/remote"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	backend  *remote.Backend
}

// DefaultLoader reads both HCL and YAML manifests.
func DefaultLoader() manifest.Loader {
	return manifest.Chain{hclmanifest.NewLoader(), yamlmanifest.NewLoader()}
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
//
// Without explicit modules the registry holds modules.CoreModules and the
// built-in specs. The specs found under cfg.ManifestsPath are added in both
// cases. Any failure here is a startup error and panics.
func NewApp(outW io.Writer, cfg *Config, loader manifest.Loader, mods ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	builtin := len(mods) == 0
	if builtin {
		mods = modules.CoreModules
	}
	for _, mod := range mods {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(mods))

	if builtin {
		if err := reg.LoadSpecsFS(ctx, hclmanifest.NewLoader(), modules.Manifests); err != nil {
			panic(fmt.Errorf("failed to load built-in manifests: %w", err))
		}
	}
	if cfg.ManifestsPath != "" {
		if err := reg.LoadSpecs(ctx, loader, cfg.ManifestsPath); err != nil {
			panic(err)
		}
	}

	// A mismatch between manifests and compiled modules is a programmer error.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "specs", reg.Len())

	a := &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
	}
	if cfg.BackendURL != "" {
		caller, err := remote.Dial(ctx, remote.Config{
			URL:       cfg.BackendURL,
			Namespace: cfg.BackendNamespace,
			Timeout:   cfg.BackendTimeout,
		})
		if err != nil {
			panic(fmt.Errorf("failed to connect to environment server: %w", err))
		}
		a.backend = remote.NewBackend(caller)
		a.backend.Provide()
		logger.Info("Environment server connected.", "url", cfg.BackendURL)
	}
	return a
}

// Close releases the connection to the environment server, if any.
func (a *App) Close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	return err
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
