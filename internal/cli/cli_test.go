package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{nil, {"-h"}, {"rollout", "--help"}} {
		out := &bytes.Buffer{}
		require.NoError(t, Execute(args, out), "%v", args)
		assert.Contains(t, out.String(), "Usage:", "%v", args)
	}
}

func TestExecute_UsageErrors(t *testing.T) {
	testCases := []struct {
		args []string
		msg  string
	}{
		{[]string{"--not-a-flag"}, "unknown flag: --not-a-flag"},
		{[]string{"frobnicate"}, `unknown command "frobnicate"`},
		{[]string{"rollout"}, "accepts 1 arg(s), received 0"},
		{[]string{"list", "--log-level", "loud"}, "invalid log level"},
		{[]string{"list", "--log-format", "xml"}, "invalid log format"},
		{[]string{"list", "--config", "/does/not/exist.yaml"}, "failed to read config file"},
		{[]string{"list", "--backend-url", "ftp://localhost"}, "invalid backend url"},
		{[]string{"list", "--backend-timeout", "soon"}, "invalid argument"},
	}
	for _, tc := range testCases {
		err := Execute(tc.args, &bytes.Buffer{})
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr, "%v", tc.args)
		assert.Equal(t, 2, exitErr.Code, "%v", tc.args)
		assert.Contains(t, exitErr.Message, tc.msg, "%v", tc.args)
	}
}

func TestExecute_List(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, Execute([]string{"list"}, out))
	assert.Contains(t, out.String(), "CartPole-v1")
	assert.Contains(t, out.String(), "FrozenLake8x8-v1")
}

func TestExecute_ManifestsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	manifests := filepath.Join(dir, "envs")
	require.NoError(t, os.MkdirAll(manifests, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(manifests, "extra.yaml"), []byte(`
envs:
  - id: CartPoleShort-v0
    entry_point: simenv.envs.classic_control.cartpole:CartPoleEnv
    max_episode_steps: 20
`), 0o600))
	cfgFile := filepath.Join(dir, "simenv.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("manifests: "+manifests+"\nlog_level: error\n"), 0o600))

	out := &bytes.Buffer{}
	require.NoError(t, Execute([]string{"list", "--config", cfgFile}, out))
	assert.Contains(t, out.String(), "CartPoleShort-v0")
}

func TestExecute_EnvironmentVariables(t *testing.T) {
	t.Setenv("SIMENV_LOG_FORMAT", "bogus")

	err := Execute([]string{"list"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Message, "invalid log format")
}

func TestExecute_Rollout(t *testing.T) {
	out := &bytes.Buffer{}
	err := Execute([]string{"rollout", "CartPole-v1", "-n", "2", "--seed", "3", "--disable-env-checker"}, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "episode 1: steps=")
	assert.Contains(t, out.String(), "mean return over 2 episodes")
}

func TestExecute_RolloutUnknownEnv(t *testing.T) {
	err := Execute([]string{"rollout", "Nope-v0"}, &bytes.Buffer{})
	require.Error(t, err)
	var exitErr *ExitError
	assert.NotErrorAs(t, err, &exitErr, "runtime errors are not usage errors")
	assert.Contains(t, err.Error(), "Nope-v0")
}
