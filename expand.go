// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import "strings"

// expandEntries expands the dotted keys of a flat entry sequence into nested
// objects, in order. Table rows, represented as Arrays of flat Objects, are
// expanded element-wise first. A path used both as a leaf and as a prefix is
// reported as a *DecodeError with kind PathConflict.
func expandEntries(entries Object) (Object, error) {
	root := Object{}
	for _, m := range entries {
		v := m.Value
		if arr, ok := v.(Array); ok {
			out := make(Array, len(arr))
			for i, elt := range arr {
				row, ok := elt.(Object)
				if !ok {
					out[i] = elt
					continue
				}
				exp, err := expandEntries(row)
				if err != nil {
					return nil, err
				}
				out[i] = exp
			}
			v = out
		}
		var err error
		root, err = expandInto(root, m.Key, m.Key, v)
		if err != nil {
			return nil, err
		}
	}
	return root, nil
}

// expandInto assigns v at the dotted path within o, creating intermediate
// objects as needed, and returns the updated object. full is the complete
// path being expanded, retained for diagnostics.
func expandInto(o Object, path, full string, v Value) (Object, error) {
	seg, rest, more := strings.Cut(path, ".")
	if !more {
		if o.Find(seg) != nil {
			return nil, decErrf(PathConflict, 0, full,
				"conflict expanding %q: %q already exists", full, seg)
		}
		return append(o, Member{Key: seg, Value: v}), nil
	}
	for i, m := range o {
		if m.Key != seg {
			continue
		}
		sub, ok := m.Value.(Object)
		if !ok {
			return nil, decErrf(PathConflict, 0, full,
				"conflict expanding %q: %q is already a non-object value", full, seg)
		}
		sub, err := expandInto(sub, rest, full, v)
		if err != nil {
			return nil, err
		}
		o[i].Value = sub
		return o, nil
	}
	sub, err := expandInto(Object{}, rest, full, v)
	if err != nil {
		return nil, err
	}
	return append(o, Member{Key: seg, Value: sub}), nil
}
