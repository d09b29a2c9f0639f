package classiccontrol

import (
	"context"
	"testing"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartPole(t *testing.T, kwargs env.Kwargs) *CartPole {
	t.Helper()
	e, err := NewCartPole(context.Background(), kwargs)
	require.NoError(t, err)
	return e.(*CartPole)
}

func TestCartPole_ResetIsSeeded(t *testing.T) {
	a := newCartPole(t, nil)
	b := newCartPole(t, nil)

	obsA, _, err := a.Reset(env.WithSeed(123))
	require.NoError(t, err)
	obsB, _, err := b.Reset(env.WithSeed(123))
	require.NoError(t, err)

	assert.Equal(t, obsA, obsB)
	assert.True(t, a.ObservationSpace().Contains(obsA))
	for _, v := range obsA.([]float64) {
		assert.InDelta(t, 0, v, 0.05)
	}
}

func TestCartPole_StepBeforeReset(t *testing.T) {
	c := newCartPole(t, nil)
	_, err := c.Step(0)
	assert.ErrorIs(t, err, env.ErrResetNeeded)
}

func TestCartPole_InvalidAction(t *testing.T) {
	c := newCartPole(t, nil)
	_, _, err := c.Reset(env.WithSeed(1))
	require.NoError(t, err)

	_, err = c.Step(2)
	assert.ErrorIs(t, err, env.ErrInvalidAction)
	_, err = c.Step("left")
	assert.ErrorIs(t, err, env.ErrInvalidAction)
}

func TestCartPole_PushingOneWayTerminates(t *testing.T) {
	c := newCartPole(t, nil)
	_, _, err := c.Reset(env.WithSeed(7))
	require.NoError(t, err)

	total := 0.0
	var res env.StepResult
	for i := 0; i < 200 && !res.Terminated; i++ {
		res, err = c.Step(1)
		require.NoError(t, err)
		total += res.Reward
	}
	require.True(t, res.Terminated, "constant force should topple the pole")
	assert.Equal(t, 1.0, res.Reward)

	// Stepping after termination yields no reward.
	res, err = c.Step(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Reward)
	assert.Greater(t, total, 1.0)
}

func TestCartPole_SuttonBartoReward(t *testing.T) {
	c := newCartPole(t, env.Kwargs{"sutton_barto_reward": true})
	_, _, err := c.Reset(env.WithSeed(7))
	require.NoError(t, err)

	res, err := c.Step(int64(0))
	require.NoError(t, err)
	require.False(t, res.Terminated)
	assert.Equal(t, 0.0, res.Reward)

	for !res.Terminated {
		res, err = c.Step(0)
		require.NoError(t, err)
	}
	assert.Equal(t, -1.0, res.Reward)

	res, err = c.Step(0)
	require.NoError(t, err)
	assert.Equal(t, -1.0, res.Reward)
}

func TestCartPole_InvalidKwargs(t *testing.T) {
	_, err := NewCartPole(context.Background(), env.Kwargs{"sutton_barto_reward": "yes"})
	assert.ErrorIs(t, err, env.ErrInvalidArgument)
}

func TestModule_RegistersFactory(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)

	_, ok := r.Factory(CartPoleEntryPoint)
	assert.True(t, ok)
}
