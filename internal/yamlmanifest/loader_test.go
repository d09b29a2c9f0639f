package yamlmanifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartPoleYAML = `
envs:
  - id: CartPole-v1
    entry_point: simenv.envs.classic_control.cartpole:CartPoleEnv
    max_episode_steps: 500
    reward_threshold: 475
    kwargs:
      sutton_barto_reward: false
      layout: [1, 2]
      nested:
        depth: 3
  - id: Custom-v0
    entry_point: thirdparty.envs:Custom
    order_enforce: false
`

func TestParse(t *testing.T) {
	specs, err := Parse([]byte(cartPoleYAML), "envs.yaml")
	require.NoError(t, err)
	require.Len(t, specs, 2)

	cp := specs[0]
	assert.Equal(t, "CartPole-v1", cp.ID)
	assert.Equal(t, 500, cp.MaxEpisodeSteps)
	require.NotNil(t, cp.RewardThreshold)
	assert.Equal(t, 475.0, *cp.RewardThreshold)
	assert.True(t, cp.OrderEnforce)
	assert.Equal(t, "envs.yaml", cp.Source)
	assert.Equal(t, env.Kwargs{
		"sutton_barto_reward": false,
		"layout":              []any{1.0, 2.0},
		"nested":              map[string]any{"depth": 3.0},
	}, cp.Kwargs)

	assert.False(t, specs[1].OrderEnforce)
	assert.Equal(t, env.Kwargs{}, specs[1].Kwargs)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("envs:\n  - id: X-v0\n    unknown: 1\n"), "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML file bad.yaml")

	_, err = Parse([]byte("envs:\n  - id: X-v0\n"), "noentry.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entry point")
}

func TestParse_EmptyDocument(t *testing.T) {
	specs, err := Parse(nil, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte(cartPoleYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte("ignored"), 0644))

	specs, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, specs, 2)
}

func TestLoadFS(t *testing.T) {
	specs, err := NewLoader().LoadFS(context.Background(), fstest.MapFS{
		"envs/extra.yaml": {Data: []byte(cartPoleYAML)},
	})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "envs/extra.yaml", specs[0].Source)
}
