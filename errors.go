// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import "fmt"

// EncodeKind enumerates the kinds of structural failure reported by the
// encoder.
type EncodeKind byte

// Constants defining the valid EncodeKind values.
const (
	NonMappingRoot          EncodeKind = iota // the root value is not an Object
	ArrayInsideNestedObject                   // an array occurs inside a nested object or table row
	MixedTypeArray                            // an array mixes scalar and object elements
	ArrayOfArrays                             // an array contains another array
	HeterogeneousRows                         // table rows do not share one column set
	UnsupportedValueType                      // a value or key outside the data model
)

var encodeKindStr = [...]string{
	NonMappingRoot:          "non-mapping root",
	ArrayInsideNestedObject: "array inside nested object",
	MixedTypeArray:          "mixed-type array",
	ArrayOfArrays:           "array of arrays",
	HeterogeneousRows:       "heterogeneous rows",
	UnsupportedValueType:    "unsupported value type",
}

func (k EncodeKind) String() string {
	if int(k) >= len(encodeKindStr) {
		return "unknown error"
	}
	return encodeKindStr[k]
}

// EncodeError is the concrete type of errors reported by Encode. It records
// the kind of violation and the dotted path of the offending key, when known.
type EncodeError struct {
	Kind    EncodeKind
	Key     string
	Message string
}

// Error satisfies the error interface.
func (e *EncodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("encode: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("encode %q: %s: %s", e.Key, e.Kind, e.Message)
}

func encErrf(kind EncodeKind, key, msg string, args ...any) *EncodeError {
	return &EncodeError{Kind: kind, Key: key, Message: fmt.Sprintf(msg, args...)}
}

// DecodeKind enumerates the kinds of failure reported by the decoder.
type DecodeKind byte

// Constants defining the valid DecodeKind values.
const (
	MalformedLine       DecodeKind = iota // a line does not match the grammar
	RowCountMismatch                      // an array has a different number of elements than declared
	ColumnCountMismatch                   // a table row has a different number of cells than its header declares
	InvalidLiteral                        // a scalar literal cannot be decoded
	QuoteParseError                       // a quoted span is unterminated or badly escaped
	DuplicateKey                          // a dotted key is emitted more than once
	PathConflict                          // a dotted path is used both as a leaf and as a prefix
	TruncatedTable                        // input ended inside a table body
)

var decodeKindStr = [...]string{
	MalformedLine:       "malformed line",
	RowCountMismatch:    "row count mismatch",
	ColumnCountMismatch: "column count mismatch",
	InvalidLiteral:      "invalid literal",
	QuoteParseError:     "quote parse error",
	DuplicateKey:        "duplicate key",
	PathConflict:        "path conflict",
	TruncatedTable:      "truncated table",
}

func (k DecodeKind) String() string {
	if int(k) >= len(decodeKindStr) {
		return "unknown error"
	}
	return decodeKindStr[k]
}

// DecodeError is the concrete type of errors reported by Decode and by the
// stream decoder. Line is the 1-based input line at which the violation was
// detected, or 0 if no line applies. Key is the dotted key of the offending
// block, when known.
type DecodeError struct {
	Kind    DecodeKind
	Line    int
	Key     string
	Message string

	err error
}

// Error satisfies the error interface.
func (e *DecodeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("decode: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("decode line %d: %s: %s", e.Line, e.Kind, e.Message)
}

// Unwrap supports error wrapping.
func (e *DecodeError) Unwrap() error { return e.err }

func decErrf(kind DecodeKind, line int, key, msg string, args ...any) *DecodeError {
	return &DecodeError{Kind: kind, Line: line, Key: key, Message: fmt.Sprintf(msg, args...)}
}
