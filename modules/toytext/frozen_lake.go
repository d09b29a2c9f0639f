// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package toytext

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// Actions of the frozen lake.
const (
	Left = iota
	Down
	Right
	Up
)

// Tiles: S start, F frozen, H hole, G goal.
const tiles = "SFHG"

// Maps are the named built-in layouts.
var Maps = map[string][]string{
	"4x4": {
		"SFFF",
		"FHFH",
		"FFFH",
		"HFFG",
	},
	"8x8": {
		"SFFFFFFF",
		"FFFFFFFF",
		"FFFHFFFF",
		"FFFFFHFF",
		"FFFHFFFF",
		"FHHFFFHF",
		"FHFFHFHF",
		"FFFHFFFG",
	},
}

// transition is one possible outcome of an action.
type transition struct {
	prob     float64
	next     int
	reward   float64
	terminal bool
}

// FrozenLake is a grid world in which the agent walks from S to G without
// falling into a hole. On a slippery lake the agent moves in the intended
// direction with probability success_rate and to either perpendicular
// direction with the remaining probability split evenly.
type FrozenLake struct {
	env.Base

	desc       []string
	nrow, ncol int
	// transitions[state][action] lists the possible outcomes.
	transitions [][4][]transition
	starts      []int

	state    int
	hasState bool

	observationSpace spaces.Discrete
	actionSpace      spaces.Discrete
}

// FrozenLakeInput defines the arguments of FrozenLake. Desc overrides
// MapName; Size, P and MapSeed shape the map when MapName is "random".
type FrozenLakeInput struct {
	Desc        []string `cty:"desc"`
	MapName     string   `cty:"map_name"`
	Size        int      `cty:"size"`
	P           float64  `cty:"p"`
	MapSeed     int      `cty:"map_seed"`
	IsSlippery  bool     `cty:"is_slippery"`
	SuccessRate float64  `cty:"success_rate"`
}

// NewFrozenLake is the factory for FrozenLake.
func NewFrozenLake(_ context.Context, kwargs env.Kwargs) (env.Env, error) {
	in := FrozenLakeInput{
		MapName:     "4x4",
		Size:        8,
		P:           0.8,
		IsSlippery:  true,
		SuccessRate: 1.0 / 3.0,
	}
	if err := kwargs.Decode(&in); err != nil {
		return nil, err
	}

	desc := in.Desc
	if desc == nil {
		if in.MapName == "random" {
			if in.Size < 2 || in.P <= 0 || in.P > 1 {
				return nil, fmt.Errorf("%w: random map needs size >= 2 and 0 < p <= 1", env.ErrInvalidArgument)
			}
			desc = GenerateRandomMap(spaces.NewRand(uint64(in.MapSeed)), in.Size, in.P)
		} else {
			m, ok := Maps[in.MapName]
			if !ok {
				return nil, fmt.Errorf("%w: unknown map_name %q", env.ErrInvalidArgument, in.MapName)
			}
			desc = m
		}
	}
	if err := validateDesc(desc); err != nil {
		return nil, err
	}
	if in.SuccessRate < 0 || in.SuccessRate > 1 {
		return nil, fmt.Errorf("%w: success_rate must be within [0, 1], got %v", env.ErrInvalidArgument, in.SuccessRate)
	}

	fl := &FrozenLake{
		desc: append([]string(nil), desc...),
		nrow: len(desc),
		ncol: len(desc[0]),
	}
	nS := fl.nrow * fl.ncol
	fl.observationSpace = spaces.NewDiscrete(nS)
	fl.actionSpace = spaces.NewDiscrete(4)
	fl.buildTransitions(in.IsSlippery, in.SuccessRate)
	return fl, nil
}

func validateDesc(desc []string) error {
	if len(desc) == 0 || len(desc[0]) == 0 {
		return fmt.Errorf("%w: desc must be a non-empty grid", env.ErrInvalidArgument)
	}
	starts := 0
	for i, row := range desc {
		if len(row) != len(desc[0]) {
			return fmt.Errorf("%w: desc row %d has length %d, want %d", env.ErrInvalidArgument, i, len(row), len(desc[0]))
		}
		for _, c := range row {
			if !strings.ContainsRune(tiles, c) {
				return fmt.Errorf("%w: desc row %d contains unknown tile %q", env.ErrInvalidArgument, i, c)
			}
			if c == 'S' {
				starts++
			}
		}
	}
	if starts == 0 {
		return fmt.Errorf("%w: desc has no start tile", env.ErrInvalidArgument)
	}
	return nil
}

func (f *FrozenLake) tile(s int) byte {
	return f.desc[s/f.ncol][s%f.ncol]
}

// move returns the state reached by walking one tile from s in direction a,
// staying put at the edges.
func (f *FrozenLake) move(s, a int) int {
	row, col := s/f.ncol, s%f.ncol
	switch a {
	case Left:
		col = max(col-1, 0)
	case Down:
		row = min(row+1, f.nrow-1)
	case Right:
		col = min(col+1, f.ncol-1)
	case Up:
		row = max(row-1, 0)
	}
	return row*f.ncol + col
}

func (f *FrozenLake) buildTransitions(slippery bool, successRate float64) {
	nS := f.nrow * f.ncol
	f.transitions = make([][4][]transition, nS)
	for s := 0; s < nS; s++ {
		if f.tile(s) == 'S' {
			f.starts = append(f.starts, s)
		}
		for a := 0; a < 4; a++ {
			if t := f.tile(s); t == 'G' || t == 'H' {
				f.transitions[s][a] = []transition{{prob: 1, next: s, terminal: true}}
				continue
			}
			if !slippery {
				f.transitions[s][a] = []transition{f.outcome(s, a, 1)}
				continue
			}
			side := (1 - successRate) / 2
			for _, b := range []int{(a + 3) % 4, a, (a + 1) % 4} {
				p := side
				if b == a {
					p = successRate
				}
				f.transitions[s][a] = append(f.transitions[s][a], f.outcome(s, b, p))
			}
		}
	}
}

func (f *FrozenLake) outcome(s, a int, p float64) transition {
	next := f.move(s, a)
	t := f.tile(next)
	reward := 0.0
	if t == 'G' {
		reward = 1
	}
	return transition{prob: p, next: next, reward: reward, terminal: t == 'G' || t == 'H'}
}

// ObservationSpace implements env.Env.
func (f *FrozenLake) ObservationSpace() spaces.Space { return f.observationSpace }

// ActionSpace implements env.Env.
func (f *FrozenLake) ActionSpace() spaces.Space { return f.actionSpace }

// Desc returns the layout of the lake.
func (f *FrozenLake) Desc() []string { return append([]string(nil), f.desc...) }

// Reset implements env.Env. The agent starts on a uniformly chosen S tile.
func (f *FrozenLake) Reset(opts env.ResetOptions) (any, env.Info, error) {
	f.ApplySeed(opts)
	f.state = f.starts[f.Rand().IntN(len(f.starts))]
	f.hasState = true
	return f.state, env.Info{"prob": 1.0}, nil
}

// Step implements env.Env.
func (f *FrozenLake) Step(action any) (env.StepResult, error) {
	if !f.actionSpace.Contains(action) {
		return env.StepResult{}, fmt.Errorf("%w: %v (%T) is not in %s", env.ErrInvalidAction, action, action, f.actionSpace)
	}
	if !f.hasState {
		return env.StepResult{}, fmt.Errorf("frozen-lake: %w", env.ErrResetNeeded)
	}
	a := asAction(action)

	outcomes := f.transitions[f.state][a]
	t := sampleTransition(f.Rand(), outcomes)
	f.state = t.next

	return env.StepResult{
		Observation: t.next,
		Reward:      t.reward,
		Terminated:  t.terminal,
		Info:        env.Info{"prob": t.prob},
	}, nil
}

func sampleTransition(r *rand.Rand, outcomes []transition) transition {
	u := r.Float64()
	acc := 0.0
	for _, t := range outcomes {
		acc += t.prob
		if u < acc {
			return t
		}
	}
	return outcomes[len(outcomes)-1]
}

// asAction converts an action already known to be in the action space.
func asAction(action any) int {
	for a := 1; a < 4; a++ {
		if (spaces.Discrete{N: 1, Start: a}).Contains(action) {
			return a
		}
	}
	return Left
}

// GenerateRandomMap returns a size x size layout with a path from the start in
// the top-left corner to the goal in the bottom-right corner. Each other tile
// is frozen with probability p.
func GenerateRandomMap(r *rand.Rand, size int, p float64) []string {
	for {
		board := make([][]byte, size)
		for i := range board {
			board[i] = make([]byte, size)
			for j := range board[i] {
				if r.Float64() < p {
					board[i][j] = 'F'
				} else {
					board[i][j] = 'H'
				}
			}
		}
		board[0][0] = 'S'
		board[size-1][size-1] = 'G'
		if reachable(board) {
			out := make([]string, size)
			for i, row := range board {
				out[i] = string(row)
			}
			return out
		}
	}
}

// reachable runs a depth-first search from the start to the goal.
func reachable(board [][]byte) bool {
	size := len(board)
	seen := make([]bool, size*size)
	stack := []int{0}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[s] {
			continue
		}
		seen[s] = true
		row, col := s/size, s%size
		for _, d := range [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}} {
			r, c := row+d[0], col+d[1]
			if r < 0 || r >= size || c < 0 || c >= size {
				continue
			}
			switch board[r][c] {
			case 'G':
				return true
			case 'H':
				continue
			}
			stack = append(stack, r*size+c)
		}
	}
	return false
}
