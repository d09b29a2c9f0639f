package envtest

import (
	"fmt"
	"math"
	"testing"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCheckEquals(t *testing.T) {
	testCases := []struct {
		name    string
		a, b    any
		wantErr string
	}{
		{name: "equal ints", a: 3, b: 3},
		{name: "both nil", a: nil, b: nil},
		{name: "differing types", a: 1, b: 1.0, wantErr: "differing types at $"},
		{name: "nil and value", a: nil, b: 0, wantErr: "differing types at $"},
		{name: "different leaves", a: "a", b: "b", wantErr: "values differ at $: a and b"},
		{
			name: "equal maps",
			a:    map[string]any{"x": []float64{1, 2}, "y": []any{1, "s"}},
			b:    map[string]any{"y": []any{1, "s"}, "x": []float64{1, 2}},
		},
		{
			name:    "key sets differ",
			a:       map[string]any{"x": 1},
			b:       map[string]any{"y": 1},
			wantErr: "key sets differ at $",
		},
		{
			name:    "nested map value differs",
			a:       env.Info{"inner": map[string]any{"lives": 3}},
			b:       env.Info{"inner": map[string]any{"lives": 2}},
			wantErr: "values differ at $[inner][lives]: 3 and 2",
		},
		{
			name:    "nested value type differs",
			a:       map[string]any{"k": 1},
			b:       map[string]any{"k": int64(1)},
			wantErr: "differing types at $[k]",
		},
		{
			name: "arrays with NaN in the same place",
			a:    []float64{1, math.NaN(), 3},
			b:    []float64{1, math.NaN(), 3},
		},
		{
			name:    "arrays differ",
			a:       []float64{1, 2, 3},
			b:       []float64{1, 2, 4},
			wantErr: "arrays differ at $",
		},
		{name: "matrices", a: [][]int{{1, 2}, {3, 4}}, b: [][]int{{1, 2}, {3, 4}}},
		{name: "fixed arrays", a: [2]bool{true, false}, b: [2]bool{true, false}},
		{name: "empty and nil arrays", a: []float64{}, b: []float64(nil)},
		{name: "tuples", a: []any{1, []float64{0.5}, "x"}, b: []any{1, []float64{0.5}, "x"}},
		{
			name:    "tuple element differs",
			a:       []any{1, map[string]any{"a": "x"}},
			b:       []any{1, map[string]any{"a": "y"}},
			wantErr: "values differ at $[1][a]",
		},
		{
			name:    "tuple lengths differ",
			a:       []any{1, 2},
			b:       []any{1},
			wantErr: "lengths differ at $: 2 and 1",
		},
		{name: "NaN leaves are not equal", a: math.NaN(), b: math.NaN(), wantErr: "values differ at $"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckEquals(tc.a, tc.b, "")
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestCheckEquals_NaNKeys(t *testing.T) {
	nan := math.NaN
	require.NoError(t, CheckEquals(
		map[float64]int{nan(): 1, 2: 3},
		map[float64]int{2: 3, nan(): 1},
		"",
	))
	require.NoError(t, CheckEquals(
		map[float64]string{nan(): "a", nan(): "b"},
		map[float64]string{nan(): "b", nan(): "a"},
		"",
	))
	require.NoError(t, CheckEquals(
		map[any]any{nan(): []float64{nan()}},
		map[any]any{nan(): []float64{nan()}},
		"",
	))

	err := CheckEquals(map[float64]int{nan(): 1}, map[float64]int{nan(): 2}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "values differ at $[NaN]: 1 and 2")

	err = CheckEquals(map[float64]int{nan(): 1}, map[float64]int{1: 1}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key sets differ at $")
}

func TestCheckEquals_Prefix(t *testing.T) {
	err := CheckEquals(map[string]any{"obs": 1}, map[string]any{"obs": 2}, "step 3: ")
	require.Error(t, err)
	assert.Equal(t, "step 3: values differ at $[obs]: 1 and 2", err.Error())
}

// recordingT captures failures instead of failing the running test.
type recordingT struct {
	testing.TB
	errors []string
}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestAssertEquals(t *testing.T) {
	assert.True(t, AssertEquals(t, []any{1.5, "a"}, []any{1.5, "a"}, ""))

	rec := &recordingT{TB: t}
	assert.False(t, AssertEquals(rec, 1, 2, "reset: "))
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], "reset: values differ at $: 1 and 2")
}

// nestedValue draws observation-like values: scalars, arrays, tuples and
// string-keyed maps.
func nestedValue(depth int) *rapid.Generator[any] {
	return rapid.Custom(func(t *rapid.T) any {
		kind := rapid.IntRange(0, 4).Draw(t, "kind")
		if depth <= 0 {
			kind %= 3
		}
		switch kind {
		case 0:
			return rapid.Int().Draw(t, "int")
		case 1:
			return rapid.String().Draw(t, "string")
		case 2:
			return rapid.SliceOf(rapid.Float64()).Draw(t, "array")
		case 3:
			return rapid.SliceOfN(nestedValue(depth-1), 0, 3).Draw(t, "tuple")
		default:
			return rapid.MapOfN(rapid.StringN(1, 4, -1), nestedValue(depth-1), 0, 3).Draw(t, "map")
		}
	})
}

func TestCheckEquals_Reflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := nestedValue(3).Draw(t, "value")
		if err := CheckEquals(v, v, ""); err != nil {
			t.Fatalf("value not equal to itself: %v", err)
		}
	})
}
