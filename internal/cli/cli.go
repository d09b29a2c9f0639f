package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/simenv/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// settings mirrors the keys that can be set by flag, SIMENV_* variable or
// config file.
type settings struct {
	Manifests         string        `mapstructure:"manifests"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	DisableEnvChecker bool          `mapstructure:"disable_env_checker"`
	BackendURL        string        `mapstructure:"backend_url"`
	BackendNamespace  string        `mapstructure:"backend_namespace"`
	BackendTimeout    time.Duration `mapstructure:"backend_timeout"`
}

// command holds the state of a single CLI invocation.
type command struct {
	v       *viper.Viper
	cfgFile string
	cfg     *app.Config
}

// NewRootCommand builds the simenv command tree writing to output.
func NewRootCommand(output io.Writer) *cobra.Command {
	c := &command{v: viper.New()}

	root := &cobra.Command{
		Use:   "simenv",
		Short: "Register, check and run simulation environments",
		Long: `simenv loads environment registrations from HCL or YAML manifests and
runs the environments compiled into this binary.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}
	root.SetOut(output)
	root.SetErr(output)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: 2, Message: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&c.cfgFile, "config", "c", "", "YAML config file")
	flags.StringP("manifests", "m", "", "file or directory of additional .hcl/.yaml environment manifests")
	flags.String("log-level", "warn", "logging level: 'debug', 'info', 'warn' or 'error'")
	flags.String("log-format", "text", "log output format: 'text' or 'json'")
	flags.Bool("disable-env-checker", false, "skip the passive environment checker")
	flags.String("backend-url", "", "socket.io URL of an environment server providing the box2d, mujoco and gym backends")
	flags.String("backend-namespace", "/", "socket.io namespace of the environment server")
	flags.Duration("backend-timeout", 10*time.Second, "timeout for connecting to and calling the environment server")

	for key, flag := range map[string]string{
		"manifests":           "manifests",
		"log_level":           "log-level",
		"log_format":          "log-format",
		"disable_env_checker": "disable-env-checker",
		"backend_url":         "backend-url",
		"backend_namespace":   "backend-namespace",
		"backend_timeout":     "backend-timeout",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(flag))
	}
	c.v.SetEnvPrefix("SIMENV")
	c.v.AutomaticEnv()

	root.AddCommand(c.listCommand(), c.checkCommand(), c.rolloutCommand())
	return root
}

// Execute runs the command tree with args.
func Execute(args []string, output io.Writer) error {
	root := NewRootCommand(output)
	root.SetArgs(args)
	err := root.Execute()

	var exitErr *ExitError
	if err != nil && !errors.As(err, &exitErr) && isUsageError(err) {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	return err
}

// isUsageError recognises the argument errors cobra reports itself.
func isUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires ")
}

func (c *command) loadConfig(cmd *cobra.Command, _ []string) error {
	slog.Debug("CLI parser started.", "command", cmd.Name())
	if c.cfgFile != "" {
		c.v.SetConfigFile(c.cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return &ExitError{Code: 2, Message: fmt.Sprintf("failed to read config file: %v", err)}
		}
	}

	var s settings
	if err := c.v.Unmarshal(&s); err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("invalid configuration: %v", err)}
	}

	cfg, err := app.NewConfig(app.Config{
		ManifestsPath:     s.Manifests,
		LogLevel:          s.LogLevel,
		LogFormat:         s.LogFormat,
		DisableEnvChecker: s.DisableEnvChecker,
		BackendURL:        s.BackendURL,
		BackendNamespace:  s.BackendNamespace,
		BackendTimeout:    s.BackendTimeout,
	})
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	c.cfg = cfg
	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return nil
}

// runApp builds the App for cmd, runs fn and closes the App.
func (c *command) runApp(cmd *cobra.Command, fn func(a *app.App) error) (err error) {
	a := app.NewApp(cmd.OutOrStdout(), c.cfg, app.DefaultLoader())
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

func (c *command) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runApp(cmd, func(a *app.App) error { return a.List(cmd.Context()) })
		},
	}
}

func (c *command) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Make every environment and report which can be tested",
		Long: `check tries to make every registered environment. Environments whose
optional backend is not linked are skipped; the others are replayed under a
fixed seed to verify that they are deterministic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runApp(cmd, func(a *app.App) error { return a.Check(cmd.Context()) })
		},
	}
}

func (c *command) rolloutCommand() *cobra.Command {
	var (
		episodes int
		steps    int
		seed     uint64
	)
	cmd := &cobra.Command{
		Use:   "rollout ENV_ID",
		Short: "Run episodes with random actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApp(cmd, func(a *app.App) error {
				_, err := a.Rollout(cmd.Context(), args[0], episodes, steps, seed)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 1, "number of episodes")
	cmd.Flags().IntVar(&steps, "steps", 0, "step limit per episode, 0 uses the environment's limit")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed of the first episode")
	return cmd
}
