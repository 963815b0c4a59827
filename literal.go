// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"math"
	"strconv"
	"strings"
)

// formatScalar renders a scalar value as its TOON literal text.
//
// Strings render as bare tokens when they would survive a round trip
// unchanged: no comma, quote, or line break, no leading or trailing space,
// not a keyword, and not numeric-looking. All other strings are quoted.
//
// Floats use the shortest decimal representation that reparses to the same
// value (strconv 'g' format with -1 precision); a float with no fractional
// part therefore renders without a decimal point and decodes as an integer
// of equal value.
func formatScalar(key string, v Value) (string, error) {
	switch t := v.(type) {
	case Null:
		return "null", nil
	case Bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case Int:
		return strconv.FormatInt(int64(t), 10), nil
	case Float:
		f := float64(t)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return "", encErrf(UnsupportedValueType, key, "non-finite number %v", f)
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case String:
		s := string(t)
		if isBareString(s) {
			return s, nil
		}
		return Quote(s), nil
	default:
		return "", encErrf(UnsupportedValueType, key, "%T is not a scalar", v)
	}
}

// isBareString reports whether s may be written as an unquoted cell.
func isBareString(s string) bool {
	if s == "" || strings.ContainsAny(s, ",\"\n\r") {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	switch s {
	case "true", "false", "null":
		return false
	}
	return !looksNumeric(s)
}

// looksNumeric reports whether s parses as a number under the decoder's
// rules. Such strings must be quoted so they decode as strings.
func looksNumeric(s string) bool {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// parseScalar decodes a single literal token. The priority order is fixed:
// keyword, integer, float, quoted string, then verbatim string. A token that
// is syntactically numeric always decodes as a number; strings that look
// numeric must have been quoted by the encoder.
func parseScalar(tok string) (Value, error) {
	switch tok {
	case "null":
		return Null{}, nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if z, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Int(z), nil
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return Float(f), nil
	}
	if strings.HasPrefix(tok, `"`) {
		s, err := Unquote(tok)
		if err != nil {
			return nil, decErrf(InvalidLiteral, 0, "", "bad quoted cell %#q: %v", tok, err)
		}
		return String(s), nil
	}
	return String(tok), nil
}
