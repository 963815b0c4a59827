// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"strconv"
	"strings"
)

// EncodeOptions are optional settings for encoding a value. A zero options
// value is ready for use and provides the defaults described.
type EncodeOptions struct {
	// Indent table header and row lines by two extra spaces.
	PrettyTables bool
}

// EncodeWithOptions encodes root as a TOON document with the given options.
// See Encode for the encoding rules.
func (c *Codec) EncodeWithOptions(root Value, opts EncodeOptions) (string, error) {
	obj, ok := root.(Object)
	if !ok {
		return "", encErrf(NonMappingRoot, "", "root must be an object, not %T", root)
	}
	var blocks []string
	for _, m := range obj {
		lines, err := encodeField(m.Key, m.Value, opts)
		if err != nil {
			return "", err
		}
		if len(lines) > 0 {
			blocks = append(blocks, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// encodeField encodes one top-level member as the lines of its block.
// A nested object flattens into dotted scalar lines and an array becomes an
// array line or a table block; anything else is a single scalar line.
func encodeField(key string, v Value, opts EncodeOptions) ([]string, error) {
	if !validKey(key) {
		return nil, encErrf(UnsupportedValueType, key,
			"key %q is empty or contains reserved characters", key)
	}
	switch t := v.(type) {
	case Object:
		flat, err := flattenObject(key, t)
		if err != nil {
			return nil, err
		}
		lines := make([]string, len(flat))
		for i, m := range flat {
			cell, err := formatScalar(m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			lines[i] = m.Key + ": " + cell
		}
		return lines, nil

	case Array:
		return encodeArray(key, t, opts)

	default:
		cell, err := formatScalar(key, v)
		if err != nil {
			return nil, err
		}
		return []string{key + ": " + cell}, nil
	}
}

// encodeArray encodes an array member: an empty array as key[0]:, an array
// of scalars as a single array line, and an array of objects as a table
// block. Mixed element types and nested arrays are structural errors.
func encodeArray(key string, arr Array, opts EncodeOptions) ([]string, error) {
	if len(arr) == 0 {
		return []string{key + "[0]:"}, nil
	}

	var nScalar, nObject int
	for _, elt := range arr {
		switch elt.(type) {
		case Array:
			return nil, encErrf(ArrayOfArrays, key, "array %q contains a nested array", key)
		case Object:
			nObject++
		default:
			if !isScalar(elt) {
				return nil, encErrf(UnsupportedValueType, key, "array %q contains %T", key, elt)
			}
			nScalar++
		}
	}
	if nScalar > 0 && nObject > 0 {
		return nil, encErrf(MixedTypeArray, key,
			"array %q mixes scalar and object elements", key)
	}

	if nObject == 0 {
		cells := make([]string, len(arr))
		for i, elt := range arr {
			cell, err := formatScalar(key, elt)
			if err != nil {
				return nil, err
			}
			cells[i] = cell
		}
		return []string{key + "[" + strconv.Itoa(len(arr)) + "]: " + strings.Join(cells, ",")}, nil
	}
	return encodeTable(key, arr, opts)
}

// encodeTable encodes a homogeneous array of objects as a table block. The
// column set is the flattening of the first row, in order; every subsequent
// row must flatten to the identical columns.
func encodeTable(key string, arr Array, opts EncodeOptions) ([]string, error) {
	rows := make([]Object, len(arr))
	for i, elt := range arr {
		flat, err := flattenRow(key, elt.(Object))
		if err != nil {
			return nil, err
		}
		rows[i] = flat
	}
	cols := make([]string, len(rows[0]))
	for i, m := range rows[0] {
		cols[i] = m.Key
	}
	if len(cols) == 0 {
		return nil, encErrf(UnsupportedValueType, key,
			"table %q has rows with no columns", key)
	}
	for i, row := range rows[1:] {
		if !sameColumns(row, cols) {
			return nil, encErrf(HeterogeneousRows, key,
				"row %d of table %q does not match the columns of the first row", i+1, key)
		}
	}

	indent := ""
	if opts.PrettyTables {
		indent = "  "
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, indent+key+"["+strconv.Itoa(len(rows))+"]{"+strings.Join(cols, ",")+"}:")
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, m := range row {
			cell, err := formatScalar(key+"."+m.Key, m.Value)
			if err != nil {
				return nil, err
			}
			cells[i] = cell
		}
		lines = append(lines, indent+"  "+strings.Join(cells, ","))
	}
	return lines, nil
}

// sameColumns reports whether the keys of row are exactly cols, in order.
func sameColumns(row Object, cols []string) bool {
	if len(row) != len(cols) {
		return false
	}
	for i, m := range row {
		if m.Key != cols[i] {
			return false
		}
	}
	return true
}

// flattenObject flattens a nested object into ordered dotted-path scalar
// entries rooted at prefix.
func flattenObject(prefix string, obj Object) (Object, error) {
	var flat Object
	if err := flattenInto(prefix, obj, false, &flat); err != nil {
		return nil, err
	}
	return flat, nil
}

// flattenRow flattens one table row into ordered dotted column entries. The
// table key is used only for diagnostics.
func flattenRow(key string, row Object) (Object, error) {
	var flat Object
	for _, m := range row {
		if !validKey(m.Key) {
			return nil, encErrf(UnsupportedValueType, key,
				"key %q is empty or contains reserved characters", m.Key)
		}
		if err := flattenInto(m.Key, m.Value, true, &flat); err != nil {
			return nil, err
		}
	}
	return flat, nil
}

// flattenInto appends the dotted-path scalar entries of v to *out. Arrays
// are not permitted below the top level of the tree.
func flattenInto(prefix string, v Value, inRow bool, out *Object) error {
	switch t := v.(type) {
	case Object:
		for _, m := range t {
			if !validKey(m.Key) {
				return encErrf(UnsupportedValueType, prefix,
					"key %q is empty or contains reserved characters", m.Key)
			}
			if err := flattenInto(prefix+"."+m.Key, m.Value, inRow, out); err != nil {
				return err
			}
		}
		return nil
	case Array:
		where := "a nested object"
		if inRow {
			where = "a table row"
		}
		return encErrf(ArrayInsideNestedObject, prefix,
			"array %q occurs inside %s", prefix, where)
	default:
		if !isScalar(v) {
			return encErrf(UnsupportedValueType, prefix, "unsupported value %T", v)
		}
		*out = append(*out, Member{Key: prefix, Value: t})
		return nil
	}
}
