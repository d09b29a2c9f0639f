package env

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lakeInput struct {
	MapName  string   `cty:"map_name"`
	Slippery bool     `cty:"is_slippery"`
	Steps    int      `cty:"steps"`
	Ratio    float64  `cty:"ratio"`
	Desc     []string `cty:"desc"`
	Untagged string
	internal int `cty:"internal"`
}

func TestKwargs_Decode(t *testing.T) {
	kw := Kwargs{
		"map_name":    "8x8",
		"is_slippery": false,
		"steps":       float64(200),
		"desc":        []any{"SF", "HG"},
		"internal":    7,
		"unknown":     "ignored",
		"ratio":       nil,
	}

	in := lakeInput{MapName: "4x4", Slippery: true, Ratio: 0.25, Untagged: "kept"}
	require.NoError(t, kw.Decode(&in))
	assert.Equal(t, lakeInput{
		MapName:  "8x8",
		Slippery: false,
		Steps:    200,
		Ratio:    0.25,
		Desc:     []string{"SF", "HG"},
		Untagged: "kept",
	}, in)
}

func TestKwargs_DecodeConvertsLikeHCL(t *testing.T) {
	var in lakeInput
	require.NoError(t, Kwargs{"steps": int64(3), "ratio": 1, "map_name": 5.0}.Decode(&in))
	assert.Equal(t, 3, in.Steps)
	assert.Equal(t, 1.0, in.Ratio)
	assert.Equal(t, "5", in.MapName)

	require.NoError(t, Kwargs{"steps": "12", "ratio": math.Inf(1)}.Decode(&in))
	assert.Equal(t, 12, in.Steps)
	assert.True(t, math.IsInf(in.Ratio, 1))
}

func TestKwargs_DecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		kw   Kwargs
		msg  string
	}{
		{"fractional int", Kwargs{"steps": 1.5}, `"steps"`},
		{"bool from string", Kwargs{"is_slippery": "yes"}, `"is_slippery"`},
		{"bool from number", Kwargs{"is_slippery": 1}, `"is_slippery"`},
		{"number from word", Kwargs{"ratio": "half"}, `"ratio"`},
		{"list of mixed", Kwargs{"desc": []any{"SF", []any{}}}, `"desc"`},
		{"not a list", Kwargs{"desc": "SF"}, `"desc"`},
		{"nan", Kwargs{"ratio": math.NaN()}, `"ratio"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var in lakeInput
			err := tc.kw.Decode(&in)
			require.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestKwargs_DecodeRequired(t *testing.T) {
	var in struct {
		EnvID string `cty:"env_id,required"`
	}
	err := Kwargs{"env_id": nil}.Decode(&in)
	require.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), `"env_id"`)

	require.NoError(t, Kwargs{"env_id": "ALE/Pong-v5"}.Decode(&in))
	assert.Equal(t, "ALE/Pong-v5", in.EnvID)
}

func TestKwargs_DecodeNeedsStructPointer(t *testing.T) {
	assert.Panics(t, func() { _ = Kwargs{}.Decode(lakeInput{}) })
}

func TestKwargs_Require(t *testing.T) {
	kw := Kwargs{"env_id": "ALE/Pong-v5", "empty": nil}
	require.NoError(t, kw.Require("env_id"))

	err := kw.Require("env_id", "empty")
	require.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), `"empty"`)
}

func TestKwargs_Merge(t *testing.T) {
	base := Kwargs{"a": 1, "b": 2}
	merged := base.Merge(Kwargs{"b": 3, "c": 4})

	assert.Equal(t, Kwargs{"a": 1, "b": 3, "c": 4}, merged)
	assert.Equal(t, Kwargs{"a": 1, "b": 2}, base)
	assert.Nil(t, Kwargs(nil).Clone())
}
