// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package envtest

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

// CheckEquals compares two observations, infos or other nested values.
//
// The values must have the same dynamic type. Maps must have the same key
// set and equal values per key; NaN keys pair up with NaN keys holding an
// equal value. Slices and arrays of numbers or bools are
// compared as arrays, where NaNs in the same position are equal. Other slices
// and arrays are compared element by element and must have the same length.
// Any other value is compared with assert.ObjectsAreEqual. The returned error
// starts with prefix and names the path of the first difference.
func CheckEquals(a, b any, prefix string) error {
	return checkEquals(a, b, prefix, "$")
}

// AssertEquals fails the test when CheckEquals reports a difference.
func AssertEquals(t testing.TB, a, b any, prefix string) bool {
	t.Helper()
	if err := CheckEquals(a, b, prefix); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

var arrayOpts = cmp.Options{cmpopts.EquateNaNs(), cmpopts.EquateEmpty()}

func checkEquals(a, b any, prefix, path string) error {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return fmt.Errorf("%sdiffering types at %s: %v (%T) and %v (%T)", prefix, path, a, a, b, b)
	}
	if a == nil {
		return nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map:
		ka, kb := sortedKeys(va), sortedKeys(vb)
		if !reflect.DeepEqual(keyStrings(ka), keyStrings(kb)) {
			return fmt.Errorf("%skey sets differ at %s: %v and %v", prefix, path, a, b)
		}
		for _, k := range ka {
			if isNaNKey(k) {
				continue
			}
			if !vb.MapIndex(k).IsValid() {
				return fmt.Errorf("%skey sets differ at %s: %v and %v", prefix, path, a, b)
			}
			sub := fmt.Sprintf("%s[%v]", path, k.Interface())
			if err := checkEquals(va.MapIndex(k).Interface(), vb.MapIndex(k).Interface(), prefix, sub); err != nil {
				return err
			}
		}
		return matchNaNEntries(nanValues(va), nanValues(vb), prefix, path+"[NaN]")

	case reflect.Slice, reflect.Array:
		if isNumericArray(va.Type()) {
			if diff := cmp.Diff(a, b, arrayOpts); diff != "" {
				return fmt.Errorf("%sarrays differ at %s (-a +b):\n%s", prefix, path, diff)
			}
			return nil
		}
		if va.Len() != vb.Len() {
			return fmt.Errorf("%slengths differ at %s: %d and %d", prefix, path, va.Len(), vb.Len())
		}
		for i := range va.Len() {
			sub := fmt.Sprintf("%s[%d]", path, i)
			if err := checkEquals(va.Index(i).Interface(), vb.Index(i).Interface(), prefix, sub); err != nil {
				return err
			}
		}
		return nil
	}

	if !assert.ObjectsAreEqual(a, b) {
		return fmt.Errorf("%svalues differ at %s: %v and %v", prefix, path, a, b)
	}
	return nil
}

// isNumericArray reports whether t is a possibly nested slice or array of
// numbers or bools.
func isNumericArray(t reflect.Type) bool {
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// isNaNKey reports whether k is a NaN float key. Such keys never index a map.
func isNaNKey(k reflect.Value) bool {
	if k.Kind() == reflect.Interface {
		k = k.Elem()
	}
	switch k.Kind() {
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(k.Float())
	}
	return false
}

// nanValues returns the values stored under NaN keys of the map m.
func nanValues(m reflect.Value) []reflect.Value {
	var out []reflect.Value
	it := m.MapRange()
	for it.Next() {
		if isNaNKey(it.Key()) {
			out = append(out, it.Value())
		}
	}
	return out
}

// matchNaNEntries pairs every value of a with an unused equal value of b.
// Both hold the same number of values.
func matchNaNEntries(a, b []reflect.Value, prefix, path string) error {
	used := make([]bool, len(b))
	for _, av := range a {
		var firstErr error
		matched := false
		for j, bv := range b {
			if used[j] {
				continue
			}
			err := checkEquals(av.Interface(), bv.Interface(), prefix, path)
			if err == nil {
				used[j], matched = true, true
				break
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		if !matched {
			if firstErr == nil {
				firstErr = fmt.Errorf("%skey sets differ at %s", prefix, path)
			}
			return firstErr
		}
	}
	return nil
}

func sortedKeys(v reflect.Value) []reflect.Value {
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})
	return keys
}

func keyStrings(keys []reflect.Value) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprint(k.Interface())
	}
	return out
}
