package spaces

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDiscrete_SampleIsContained(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(rt, "n")
		start := rapid.IntRange(-10, 10).Draw(rt, "start")
		seed := rapid.Uint64().Draw(rt, "seed")

		d := Discrete{N: n, Start: start}
		r := NewRand(seed)
		for i := 0; i < 20; i++ {
			x := d.Sample(r)
			if !d.Contains(x) {
				rt.Fatalf("sample %v not contained in %s", x, d)
			}
		}
	})
}

func TestDiscrete_Contains(t *testing.T) {
	d := NewDiscrete(4)
	assert.True(t, d.Contains(0))
	assert.True(t, d.Contains(int64(3)))
	assert.True(t, d.Contains(uint8(2)))
	assert.True(t, d.Contains(1.0))
	assert.False(t, d.Contains(1.5))
	assert.False(t, d.Contains(4))
	assert.False(t, d.Contains(-1))
	assert.False(t, d.Contains("1"))
	assert.Equal(t, "Discrete(4)", d.String())
	assert.Equal(t, "Discrete(2, start=-1)", Discrete{N: 2, Start: -1}.String())
}

func TestNewDiscrete_PanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { NewDiscrete(0) })
}

func TestBox_SampleIsContained(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dim := rapid.IntRange(1, 6).Draw(rt, "dim")
		low := make([]float64, dim)
		high := make([]float64, dim)
		for i := 0; i < dim; i++ {
			lo := rapid.Float64Range(-100, 100).Draw(rt, "lo")
			width := rapid.Float64Range(0, 50).Draw(rt, "width")
			low[i], high[i] = lo, lo+width
		}
		// One unbounded coordinate exercises the normal sampler.
		low[0], high[0] = math.Inf(-1), math.Inf(1)

		b := NewBox(low, high)
		r := NewRand(rapid.Uint64().Draw(rt, "seed"))
		for i := 0; i < 20; i++ {
			x := b.Sample(r)
			if !b.Contains(x) {
				rt.Fatalf("sample %v not contained in %s", x, b)
			}
		}
	})
}

func TestBox_Contains(t *testing.T) {
	b := NewBox([]float64{-1, 0}, []float64{1, 2})
	assert.True(t, b.Contains([]float64{0, 1}))
	assert.True(t, b.Contains([]int{1, 2}))
	assert.True(t, b.Contains([2]float32{-1, 0}))
	assert.False(t, b.Contains([]float64{0}))
	assert.False(t, b.Contains([]float64{2, 1}))
	assert.False(t, b.Contains([]float64{math.NaN(), 1}))
	assert.False(t, b.Contains("nope"))
	assert.Equal(t, 2, b.Shape())
}

func TestNewBox_PanicsOnBadBounds(t *testing.T) {
	assert.Panics(t, func() { NewBox([]float64{0}, []float64{0, 1}) })
	assert.Panics(t, func() { NewBox([]float64{1}, []float64{0}) })
}

func TestTuple(t *testing.T) {
	tup := NewTuple(NewDiscrete(2), NewBox([]float64{0}, []float64{1}))
	r := NewRand(7)

	x := tup.Sample(r)
	assert.True(t, tup.Contains(x))
	assert.False(t, tup.Contains([]any{0}))
	assert.False(t, tup.Contains([]any{5, []float64{0.5}}))
	assert.False(t, tup.Contains([]int{0, 1}))
	assert.Equal(t, "Tuple(Discrete(2), Box([0], [1], (1,)))", tup.String())
}

func TestDict(t *testing.T) {
	d := NewDict("position", NewDiscrete(16), "velocity", NewBox([]float64{-1}, []float64{1}))
	r := NewRand(3)

	x := d.Sample(r)
	assert.True(t, d.Contains(x))
	assert.False(t, d.Contains(map[string]any{"position": 1}))
	assert.False(t, d.Contains(map[string]any{"position": 1, "speed": []float64{0}}))
	assert.Equal(t, []string{"position", "velocity"}, d.Keys)
	assert.Equal(t, "Dict(position: Discrete(16), velocity: Box([-1], [1], (1,)))", d.String())
}

func TestNewDict_Panics(t *testing.T) {
	assert.Panics(t, func() { NewDict("a") })
	assert.Panics(t, func() { NewDict(1, NewDiscrete(1)) })
	assert.Panics(t, func() { NewDict("a", 1) })
	assert.Panics(t, func() { NewDict("a", NewDiscrete(1), "a", NewDiscrete(1)) })
}

func TestNewRand_Deterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}
