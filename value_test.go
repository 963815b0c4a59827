// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/toonlab/toon"
)

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  toon.Value
	}{
		{nil, toon.Null{}},
		{true, toon.Bool(true)},
		{false, toon.Bool(false)},
		{"hello", toon.String("hello")},
		{"", toon.String("")},
		{25, toon.Int(25)},
		{int8(-3), toon.Int(-3)},
		{uint16(9), toon.Int(9)},
		{int64(math.MaxInt64), toon.Int(math.MaxInt64)},
		{uint64(math.MaxInt64), toon.Int(math.MaxInt64)},

		// A uint64 too big for int64 falls back to floating point.
		{uint64(math.MaxInt64) + 1, toon.Float(1 << 63)},

		// Integral floats in safe range become integers.
		{float64(17), toon.Int(17)},
		{-0.5, toon.Float(-0.5)},
		{float64(1 << 53), toon.Float(1 << 53)},
		{float32(2.5), toon.Float(2.5)},

		// Values that already satisfy Value pass through.
		{toon.String("keep"), toon.String("keep")},

		{[]any{1, "two", nil}, toon.Array{toon.Int(1), toon.String("two"), toon.Null{}}},
		{[]any{}, toon.Array{}},

		// Map keys are sorted.
		{map[string]any{"z": 1, "a": true}, toon.Object{
			toon.Field("a", toon.Bool(true)),
			toon.Field("z", toon.Int(1)),
		}},

		{map[string]any{"rows": []any{
			map[string]any{"id": 1},
			map[string]any{"id": 2},
		}}, toon.Object{
			toon.Field("rows", toon.Array{
				toon.Object{toon.Field("id", toon.Int(1))},
				toon.Object{toon.Field("id", toon.Int(2))},
			}),
		}},
	}
	for _, tc := range tests {
		got, err := toon.ToValue(tc.input)
		if err != nil {
			t.Errorf("ToValue(%v): unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(got, tc.want); diff != "" {
			t.Errorf("ToValue(%v): wrong result (-got, +want):\n%s", tc.input, diff)
		}
	}
}

func TestToValueErrors(t *testing.T) {
	tests := []any{
		struct{}{},
		make(chan int),
		[]int{1, 2, 3},              // not []any
		map[int]any{1: "x"},         // non-string keys
		[]any{1, struct{}{}},        // bad element
		map[string]any{"k": 1 + 2i}, // bad member value
	}
	for _, tc := range tests {
		if got, err := toon.ToValue(tc); err == nil {
			t.Errorf("ToValue(%v): got %v, want error", tc, got)
		}
	}
}

func TestToGo(t *testing.T) {
	tests := []struct {
		input toon.Value
		want  any
	}{
		{toon.Null{}, nil},
		{toon.Bool(true), true},
		{toon.Int(25), int64(25)},
		{toon.Float(0.5), 0.5},
		{toon.String("x"), "x"},
		{toon.Array{toon.Int(1), toon.Null{}}, []any{int64(1), nil}},
		{toon.Object{
			toon.Field("a", toon.Int(1)),
			toon.Field("b", toon.Array{toon.String("q")}),
		}, map[string]any{"a": int64(1), "b": []any{"q"}}},
	}
	for _, tc := range tests {
		got := toon.ToGo(tc.input)
		if diff := cmp.Diff(got, tc.want); diff != "" {
			t.Errorf("ToGo(%v): wrong result (-got, +want):\n%s", tc.input, diff)
		}
	}
}

func TestObjectOps(t *testing.T) {
	o := toon.Object{toon.Field("a", toon.Int(1)), toon.Field("b", toon.Int(2))}

	if got := o.Find("b"); got != toon.Int(2) {
		t.Errorf("Find b: got %v, want 2", got)
	}
	if got := o.Find("missing"); got != nil {
		t.Errorf("Find missing: got %v, want nil", got)
	}
	if got := o.Len(); got != 2 {
		t.Errorf("Len: got %d, want 2", got)
	}

	o = o.Set("a", toon.Int(5))
	if got := o.Find("a"); got != toon.Int(5) {
		t.Errorf("Find a after Set: got %v, want 5", got)
	}
	o = o.Set("c", toon.Bool(true))
	if got := o.Len(); got != 3 {
		t.Errorf("Len after Set: got %d, want 3", got)
	}
}
