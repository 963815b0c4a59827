// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"fmt"
	"math"
	"sort"
)

// A Value is a TOON value. The concrete types of Value are Null, Bool, Int,
// Float, String, Array, and Object. No other types satisfy the interface.
type Value interface {
	isValue()
}

// Null represents the null constant.
type Null struct{}

// A Bool is a Boolean constant, true or false.
type Bool bool

// An Int is an integer value.
type Int int64

// A Float is a floating-point value.
type Float float64

// A String is a string value.
type String string

// An Array is an ordered sequence of values. The encoder requires an array
// to be homogeneous: all elements scalar, or all elements Object.
type Array []Value

// An Object is an ordered collection of key-value members. Member order is
// significant and is preserved by the codec.
type Object []Member

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) Member { return Member{Key: key, Value: value} }

// Find returns the value of the first member of o with the given key, or nil
// if no such member exists.
func (o Object) Find(key string) Value {
	for _, m := range o {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Len reports the number of members of o.
func (o Object) Len() int { return len(o) }

// Set replaces the value of the first member of o with the given key, or
// appends a new member, and returns the updated object.
func (o Object) Set(key string, value Value) Object {
	for i, m := range o {
		if m.Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Member{Key: key, Value: value})
}

// isScalar reports whether v is a scalar (non-container) value.
func isScalar(v Value) bool {
	switch v.(type) {
	case Null, Bool, Int, Float, String:
		return true
	default:
		return false
	}
}

// ToValue converts a Go value to a Value. It supports nil, bool, string,
// integer and floating-point types, []any, map[string]any, and values that
// already satisfy Value.
//
// Because Go maps do not preserve insertion order, members converted from a
// map are sorted by key. Callers that need a specific member order should
// construct an Object literal instead.
func ToValue(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(t), nil
	case int8:
		return Int(t), nil
	case int16:
		return Int(t), nil
	case int32:
		return Int(t), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(t), nil
	case uint8:
		return Int(t), nil
	case uint16:
		return Int(t), nil
	case uint32:
		return Int(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return Float(t), nil
		}
		return Int(t), nil
	case float32:
		return Float(t), nil
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1<<53 {
			return Int(t), nil
		}
		return Float(t), nil
	case []any:
		arr := make(Array, len(t))
		for i, elt := range t {
			ev, err := ToValue(elt)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		obj := make(Object, 0, len(t))
		for _, key := range keys {
			ev, err := ToValue(t[key])
			if err != nil {
				return nil, err
			}
			obj = append(obj, Member{Key: key, Value: ev})
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", v)
	}
}

// ToGo converts a Value to its plain Go representation: nil, bool, int64,
// float64, string, []any, or map[string]any. Object member order is lost in
// the map representation.
func ToGo(v Value) any {
	switch t := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = ToGo(elt)
		}
		return out
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			out[m.Key] = ToGo(m.Value)
		}
		return out
	default:
		return nil
	}
}
