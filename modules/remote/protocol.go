// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package remote

import (
	"fmt"
	"math"

	"github.com/specialistvlad/simenv/internal/ctyconv"
	"github.com/specialistvlad/simenv/internal/env"
	"github.com/specialistvlad/simenv/internal/spaces"
)

// ServerError is an error reported by the environment server.
type ServerError struct {
	Op      string
	Kind    string
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("remote %s: %s", e.Op, e.Message)
}

// Unwrap maps the server's error kind to the env sentinel errors.
func (e *ServerError) Unwrap() error {
	switch e.Kind {
	case "dependency_not_installed":
		return env.ErrDependencyNotInstalled
	case "missing_argument":
		return env.ErrMissingArgument
	case "invalid_argument":
		return env.ErrInvalidArgument
	case "invalid_action":
		return env.ErrInvalidAction
	case "reset_needed":
		return env.ErrResetNeeded
	}
	return nil
}

// decodeResult extracts the value of a result message.
func decodeResult(op string, msg map[string]any) (map[string]any, error) {
	if raw, ok := msg["error"]; ok && raw != nil {
		e, ok := raw.(map[string]any)
		if !ok {
			return nil, &ServerError{Op: op, Message: fmt.Sprint(raw)}
		}
		kind, _ := e["kind"].(string)
		message, _ := e["message"].(string)
		return nil, &ServerError{Op: op, Kind: kind, Message: message}
	}
	value, _ := msg["value"].(map[string]any)
	if value == nil {
		value = map[string]any{}
	}
	return value, nil
}

// decodeSpace builds a space from its description.
func decodeSpace(raw any) (spaces.Space, error) {
	desc, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("space description must be an object, got %T", raw)
	}
	typ, _ := desc["type"].(string)
	switch typ {
	case "discrete":
		n, ok := asInt(desc["n"])
		if !ok || n <= 0 {
			return nil, fmt.Errorf("discrete space needs a positive n, got %v", desc["n"])
		}
		start := 0
		if desc["start"] != nil {
			if start, ok = asInt(desc["start"]); !ok {
				return nil, fmt.Errorf("discrete space start must be an integer, got %v", desc["start"])
			}
		}
		return spaces.Discrete{N: n, Start: start}, nil

	case "box":
		low, err := decodeBounds(desc["low"])
		if err != nil {
			return nil, fmt.Errorf("box low: %w", err)
		}
		high, err := decodeBounds(desc["high"])
		if err != nil {
			return nil, fmt.Errorf("box high: %w", err)
		}
		if len(low) != len(high) {
			return nil, fmt.Errorf("box bounds differ in length: %d and %d", len(low), len(high))
		}
		for i := range low {
			if low[i] > high[i] {
				return nil, fmt.Errorf("box low bound %v exceeds high bound %v at index %d", low[i], high[i], i)
			}
		}
		return spaces.NewBox(low, high), nil

	case "tuple":
		list, _ := desc["spaces"].([]any)
		subs := make([]spaces.Space, len(list))
		for i, sub := range list {
			s, err := decodeSpace(sub)
			if err != nil {
				return nil, fmt.Errorf("tuple[%d]: %w", i, err)
			}
			subs[i] = s
		}
		return spaces.NewTuple(subs...), nil

	case "dict":
		keys, _ := desc["keys"].([]any)
		subs, _ := desc["spaces"].(map[string]any)
		d := spaces.Dict{Spaces: make(map[string]spaces.Space, len(keys))}
		for _, k := range keys {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", k)
			}
			if _, dup := d.Spaces[key]; dup {
				return nil, fmt.Errorf("duplicate dict key %q", key)
			}
			s, err := decodeSpace(subs[key])
			if err != nil {
				return nil, fmt.Errorf("dict[%s]: %w", key, err)
			}
			d.Keys = append(d.Keys, key)
			d.Spaces[key] = s
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown space type %q", typ)
}

func decodeBounds(raw any) ([]float64, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("bounds must be a list, got %T", raw)
	}
	out := make([]float64, len(list))
	for i, v := range list {
		switch b := v.(type) {
		case float64:
			out[i] = b
		case string:
			switch b {
			case "inf", "+inf":
				out[i] = math.Inf(1)
			case "-inf":
				out[i] = math.Inf(-1)
			default:
				return nil, fmt.Errorf("invalid bound %q", b)
			}
		default:
			n, ok := asInt(v)
			if !ok {
				return nil, fmt.Errorf("invalid bound %v", v)
			}
			out[i] = float64(n)
		}
	}
	return out, nil
}

// decodeValue converts a JSON-decoded member of space to the Go type the
// space produces: int for Discrete, []float64 for Box, []any for Tuple and
// map[string]any for Dict.
func decodeValue(space spaces.Space, raw any) any {
	switch s := space.(type) {
	case spaces.Discrete:
		if n, ok := asInt(raw); ok {
			return n
		}
	case spaces.Box:
		if list, ok := raw.([]any); ok {
			out := make([]float64, len(list))
			for i, v := range list {
				f, ok := v.(float64)
				if !ok {
					return raw
				}
				out[i] = f
			}
			return out
		}
	case spaces.Tuple:
		if list, ok := raw.([]any); ok && len(list) == len(s.Spaces) {
			out := make([]any, len(list))
			for i, v := range list {
				out[i] = decodeValue(s.Spaces[i], v)
			}
			return out
		}
	case spaces.Dict:
		if m, ok := raw.(map[string]any); ok {
			out := make(map[string]any, len(m))
			for k, v := range m {
				if sub, ok := s.Spaces[k]; ok {
					out[k] = decodeValue(sub, v)
				} else {
					out[k] = v
				}
			}
			return out
		}
	}
	return raw
}

func decodeInfo(raw any) env.Info {
	if m, ok := raw.(map[string]any); ok {
		return env.Info(m)
	}
	return env.Info{}
}

// asInt reads a whole number of any numeric kind.
func asInt(x any) (int, bool) {
	var n int
	if err := ctyconv.DecodeExact(x, &n); err != nil {
		return 0, false
	}
	return n, true
}

func asUint(x any) (uint64, bool) {
	var n uint64
	if err := ctyconv.DecodeExact(x, &n); err != nil {
		return 0, false
	}
	return n, true
}
