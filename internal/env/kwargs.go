// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package env

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/specialistvlad/simenv/internal/ctyconv"
)

// Kwargs are the constructor arguments of an environment. Values decoded from
// manifests are float64, string, bool, []any and map[string]any. Factories
// read them into a tagged input struct with Decode.
type Kwargs map[string]any

// Clone returns a shallow copy.
func (k Kwargs) Clone() Kwargs {
	if k == nil {
		return nil
	}
	return maps.Clone(k)
}

// Merge returns a copy of k with overrides applied on top.
func (k Kwargs) Merge(overrides Kwargs) Kwargs {
	out := make(Kwargs, len(k)+len(overrides))
	maps.Copy(out, k)
	maps.Copy(out, overrides)
	return out
}

// Has reports whether key is present with a non-nil value.
func (k Kwargs) Has(key string) bool {
	v, ok := k[key]
	return ok && v != nil
}

// Require returns ErrMissingArgument naming the first absent key.
func (k Kwargs) Require(keys ...string) error {
	for _, key := range keys {
		if !k.Has(key) {
			return fmt.Errorf("%w: %q is required", ErrMissingArgument, key)
		}
	}
	return nil
}

// Decode fills the struct pointed to by target. Each exported field tagged
// `cty:"name"` receives the argument of that name, converted with cty rules.
// Fields of absent arguments keep their value, so callers set defaults on
// target beforehand. A `cty:"name,required"` field makes the argument
// mandatory. Arguments without a field are ignored.
func (k Kwargs) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("env: Kwargs.Decode needs a pointer to a struct, got %T", target))
	}
	sv := rv.Elem()
	st := sv.Type()

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		parts := strings.Split(field.Tag.Get("cty"), ",")
		name := parts[0]
		if name == "" || name == "-" {
			continue
		}
		if !k.Has(name) {
			if len(parts) > 1 && parts[1] == "required" {
				return fmt.Errorf("%w: %q is required", ErrMissingArgument, name)
			}
			continue
		}
		if err := ctyconv.Decode(k[name], sv.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidArgument, name, err)
		}
	}
	return nil
}
