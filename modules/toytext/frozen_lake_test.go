package toytext

import (
	"context"
	"testing"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/registry"
	"github.com/specialistvlad/simenv/internal/spaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLake(t *testing.T, kwargs env.Kwargs) *FrozenLake {
	t.Helper()
	e, err := NewFrozenLake(context.Background(), kwargs)
	require.NoError(t, err)
	return e.(*FrozenLake)
}

func TestFrozenLake_DeterministicPathReachesGoal(t *testing.T) {
	lake := newLake(t, env.Kwargs{"is_slippery": false})

	obs, info, err := lake.Reset(env.WithSeed(0))
	require.NoError(t, err)
	assert.Equal(t, 0, obs)
	assert.Equal(t, 1.0, info["prob"])

	// S F F F / F H F H / F F F H / H F F G
	path := []int{Down, Down, Right, Right, Down, Right}
	var res env.StepResult
	for _, a := range path {
		res, err = lake.Step(a)
		require.NoError(t, err)
	}
	assert.Equal(t, 15, res.Observation)
	assert.Equal(t, 1.0, res.Reward)
	assert.True(t, res.Terminated)
}

func TestFrozenLake_HoleTerminatesWithoutReward(t *testing.T) {
	lake := newLake(t, env.Kwargs{"is_slippery": false})
	_, _, err := lake.Reset(env.ResetOptions{})
	require.NoError(t, err)

	_, err = lake.Step(Right)
	require.NoError(t, err)
	res, err := lake.Step(Down)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Observation)
	assert.True(t, res.Terminated)
	assert.Equal(t, 0.0, res.Reward)
}

func TestFrozenLake_EdgesKeepAgentInPlace(t *testing.T) {
	lake := newLake(t, env.Kwargs{"is_slippery": false})
	_, _, err := lake.Reset(env.ResetOptions{})
	require.NoError(t, err)

	res, err := lake.Step(Up)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Observation)
	res, err = lake.Step(int64(Left))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Observation)
}

func TestFrozenLake_SlipperyTransitionsSumToOne(t *testing.T) {
	lake := newLake(t, env.Kwargs{"map_name": "8x8", "success_rate": 0.5})
	for s, byAction := range lake.transitions {
		for a, outcomes := range byAction {
			total := 0.0
			for _, o := range outcomes {
				total += o.prob
			}
			assert.InDelta(t, 1.0, total, 1e-9, "state %d action %d", s, a)
		}
	}
	assert.Equal(t, spaces.NewDiscrete(64), lake.ObservationSpace())
}

func TestFrozenLake_SeededEpisodesRepeat(t *testing.T) {
	run := func() []any {
		lake := newLake(t, nil)
		obs, _, err := lake.Reset(env.WithSeed(99))
		require.NoError(t, err)
		trace := []any{obs}
		for i := 0; i < 20; i++ {
			res, err := lake.Step(Right)
			require.NoError(t, err)
			trace = append(trace, res.Observation)
			if res.Terminated {
				break
			}
		}
		return trace
	}
	assert.Equal(t, run(), run())
}

func TestFrozenLake_CustomDesc(t *testing.T) {
	lake := newLake(t, env.Kwargs{"desc": []any{"SG"}, "is_slippery": false})
	assert.Equal(t, []string{"SG"}, lake.Desc())

	_, _, err := lake.Reset(env.ResetOptions{})
	require.NoError(t, err)
	res, err := lake.Step(Right)
	require.NoError(t, err)
	assert.True(t, res.Terminated)
	assert.Equal(t, 1.0, res.Reward)
}

func TestFrozenLake_InvalidKwargs(t *testing.T) {
	testCases := []struct {
		name   string
		kwargs env.Kwargs
	}{
		{"unknown map", env.Kwargs{"map_name": "3x3"}},
		{"ragged desc", env.Kwargs{"desc": []any{"SF", "F"}}},
		{"bad tile", env.Kwargs{"desc": []any{"SX"}}},
		{"no start", env.Kwargs{"desc": []any{"FG"}}},
		{"bad success rate", env.Kwargs{"success_rate": 2.0}},
		{"bad random size", env.Kwargs{"map_name": "random", "size": 1.0}},
		{"slippery not bool", env.Kwargs{"is_slippery": "yes"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFrozenLake(context.Background(), tc.kwargs)
			assert.ErrorIs(t, err, env.ErrInvalidArgument)
		})
	}
}

func TestFrozenLake_StepErrors(t *testing.T) {
	lake := newLake(t, nil)
	_, err := lake.Step(Left)
	assert.ErrorIs(t, err, env.ErrResetNeeded)

	_, _, err = lake.Reset(env.ResetOptions{})
	require.NoError(t, err)
	_, err = lake.Step(4)
	assert.ErrorIs(t, err, env.ErrInvalidAction)
}

func TestGenerateRandomMap(t *testing.T) {
	m := GenerateRandomMap(spaces.NewRand(5), 6, 0.7)
	require.Len(t, m, 6)
	assert.Equal(t, byte('S'), m[0][0])
	assert.Equal(t, byte('G'), m[5][5])

	board := make([][]byte, len(m))
	for i, row := range m {
		board[i] = []byte(row)
	}
	assert.True(t, reachable(board))

	lake := newLake(t, env.Kwargs{"map_name": "random", "size": 6.0, "p": 0.7, "map_seed": 5.0})
	assert.Equal(t, m, lake.Desc())
}

func TestModule_RegistersFactory(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	_, ok := r.Factory(FrozenLakeEntryPoint)
	assert.True(t, ok)
}
