package app

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestsPath is an optional file or directory of user manifests,
	// loaded after the built-in ones.
	ManifestsPath string

	LogFormat         string
	LogLevel          string
	DisableEnvChecker bool

	// BackendURL is the socket.io address of an environment server. When
	// set, the server provides the box2d, mujoco and gym backends.
	BackendURL       string
	BackendNamespace string
	BackendTimeout   time.Duration
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.BackendURL != "" {
		u, err := url.Parse(cfg.BackendURL)
		if err != nil {
			return nil, fmt.Errorf("invalid backend url %q: %w", cfg.BackendURL, err)
		}
		switch u.Scheme {
		case "http", "https", "ws", "wss":
		default:
			return nil, fmt.Errorf("invalid backend url %q: scheme must be http, https, ws or wss", cfg.BackendURL)
		}
	}
	if cfg.BackendTimeout < 0 {
		return nil, fmt.Errorf("invalid backend timeout %v: must not be negative", cfg.BackendTimeout)
	}

	return &cfg, nil
}
