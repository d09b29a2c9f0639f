// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package ctyconv moves values between native Go and cty. Manifests decode
// into native values, and typed arguments are read back out of them with
// the same conversion rules HCL applies to attributes.
package ctyconv

import (
	"errors"
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToNative recursively converts a cty.Value to its most natural Go
// counterpart: string, float64, bool, []any or map[string]any.
func ToNative(v cty.Value) (any, error) {
	// A null or unknown value becomes a nil interface{}.
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0)
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// FromNative converts a native Go value to a cty.Value. Lists become tuples
// and maps become objects, so their elements may differ in type.
func FromNative(v any) (val cty.Value, err error) {
	// gocty panics on NaN.
	defer func() {
		if r := recover(); r != nil {
			val, err = cty.NilVal, fmt.Errorf("cannot convert %T: %v", v, r)
		}
	}()

	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case float64:
		return numberVal(x)
	case float32:
		return numberVal(float64(x))
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(x))
		for i, e := range x {
			if elems[i], err = FromNative(e); err != nil {
				return cty.NilVal, fmt.Errorf("in element %d: %w", i, err)
			}
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, e := range x {
			if attrs[k], err = FromNative(e); err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", k, err)
			}
		}
		return cty.ObjectVal(attrs), nil
	}

	// Integers, typed slices and typed maps carry their cty type.
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
	return gocty.ToCtyValue(v, ty)
}

func numberVal(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return cty.NilVal, errors.New("NaN is not a number")
	}
	return cty.NumberFloatVal(f), nil
}

// Decode stores the native value v in target, a pointer to a Go value with
// an implied cty type. v is converted to that type first, so that "5"
// decodes into an int and a list of strings into a []string.
func Decode(v any, target any) error {
	val, ty, err := prepare(v, target)
	if err != nil {
		return err
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, target)
}

// DecodeExact is Decode without conversion: v must already have the type
// implied by target. Numbers must still fit, so 2.0 decodes into an int but
// 2.5 does not.
func DecodeExact(v any, target any) error {
	val, ty, err := prepare(v, target)
	if err != nil {
		return err
	}
	if !val.Type().Equals(ty) {
		return fmt.Errorf("%s required, got %s", ty.FriendlyName(), val.Type().FriendlyName())
	}
	return gocty.FromCtyValue(val, target)
}

func prepare(v any, target any) (cty.Value, cty.Type, error) {
	ty, err := gocty.ImpliedType(target)
	if err != nil {
		return cty.NilVal, cty.NilType, fmt.Errorf("cannot decode into %T: %w", target, err)
	}
	val, err := FromNative(v)
	if err != nil {
		return cty.NilVal, cty.NilType, err
	}
	if val.IsNull() {
		return cty.NilVal, cty.NilType, errors.New("value must not be null")
	}
	return val, ty, nil
}
