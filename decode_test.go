// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/toonlab/toon"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  toon.Object
	}{
		{"Empty", "", toon.Object{}},
		{"BlankAndComments", "\n# nothing here\n\n", toon.Object{}},

		{"Scalar", "flag: true", toon.Object{
			toon.Field("flag", toon.Bool(true)),
		}},
		{"ScalarEmptyValue", "gap:", toon.Object{
			toon.Field("gap", toon.Null{}),
		}},
		{"ScalarQuoted", `note: "a, b"`, toon.Object{
			toon.Field("note", toon.String("a, b")),
		}},
		{"NumericAlwaysNumber", "version: 2", toon.Object{
			toon.Field("version", toon.Int(2)),
		}},
		{"QuotedNumericIsString", `version: "2"`, toon.Object{
			toon.Field("version", toon.String("2")),
		}},

		{"DottedKeys", "metadata.user.id: 1\nmetadata.source: sensor", toon.Object{
			toon.Field("metadata", toon.Object{
				toon.Field("user", toon.Object{
					toon.Field("id", toon.Int(1)),
				}),
				toon.Field("source", toon.String("sensor")),
			}),
		}},

		{"EmptyArray", "empty[0]:", toon.Object{
			toon.Field("empty", toon.Array{}),
		}},
		{"ScalarArray", "tags[3]: a,b,3", toon.Object{
			toon.Field("tags", toon.Array{toon.String("a"), toon.String("b"), toon.Int(3)}),
		}},
		{"ArrayCellSpaces", "tags[2]: a, b", toon.Object{
			toon.Field("tags", toon.Array{toon.String("a"), toon.String("b")}),
		}},

		{"Table", "title: T\n\nreadings[2]{time,temp}:\n  08:00,20.5\n  12:00,24.3", toon.Object{
			toon.Field("title", toon.String("T")),
			toon.Field("readings", toon.Array{
				toon.Object{
					toon.Field("time", toon.String("08:00")),
					toon.Field("temp", toon.Float(20.5)),
				},
				toon.Object{
					toon.Field("time", toon.String("12:00")),
					toon.Field("temp", toon.Float(24.3)),
				},
			}),
		}},

		{"TableUnindentedRows", "rows[2]{a}:\n1\n2", toon.Object{
			toon.Field("rows", toon.Array{
				toon.Object{toon.Field("a", toon.Int(1))},
				toon.Object{toon.Field("a", toon.Int(2))},
			}),
		}},

		{"TableBlankLinesInBody", "rows[2]{a}:\n  1\n\n  2", toon.Object{
			toon.Field("rows", toon.Array{
				toon.Object{toon.Field("a", toon.Int(1))},
				toon.Object{toon.Field("a", toon.Int(2))},
			}),
		}},

		{"TableEmpty", "rows[0]{a,b}:", toon.Object{
			toon.Field("rows", toon.Array{}),
		}},

		{"TableNestedColumns", "events[1]{ts,payload.sensor}:\n  1,door", toon.Object{
			toon.Field("events", toon.Array{
				toon.Object{
					toon.Field("ts", toon.Int(1)),
					toon.Field("payload", toon.Object{
						toon.Field("sensor", toon.String("door")),
					}),
				},
			}),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toon.Decode(tc.input)
			if err != nil {
				t.Fatalf("Decode: unexpected error: %v", err)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Decode: wrong result (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestDecodeFlat(t *testing.T) {
	c := toon.New()
	c.ExpandPaths(false)

	const input = "metadata.user.id: 1\n\nevents[1]{ts,payload.sensor}:\n  1,door"
	want := toon.Object{
		toon.Field("metadata.user.id", toon.Int(1)),
		toon.Field("events", toon.Array{
			toon.Object{
				toon.Field("ts", toon.Int(1)),
				toon.Field("payload.sensor", toon.String("door")),
			},
		}),
	}
	got, err := c.Decode(input)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Decode: wrong result (-got, +want):\n%s", diff)
	}
}

// Repeated column names are rejected at the header line, so flat decoding
// cannot produce a row object with two members of the same key.
func TestDecodeFlatRepeatedColumns(t *testing.T) {
	c := toon.New()
	c.ExpandPaths(false)
	got, err := c.Decode("rows[1]{a,a}:\n  1,2")
	var de *toon.DecodeError
	if err == nil {
		t.Fatalf("Decode: got %+v, want error", got)
	} else if !errors.As(err, &de) || de.Kind != toon.MalformedLine {
		t.Fatalf("Decode: got error %v, want kind %v", err, toon.MalformedLine)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  toon.DecodeKind
		line  int
	}{
		{"Malformed", "what even is this?", toon.MalformedLine, 1},
		{"BadHeader", "ok: 1\nrows[2{a}:", toon.MalformedLine, 2},

		// A count so large it wraps modulo 2^64 back to the element count
		// must still be rejected, not compared post-wrap.
		{"HugeCount", "tags[18446744073709551618]: a,b", toon.MalformedLine, 1},
		{"RepeatedColumn", "rows[1]{a,a}:\n  1,2", toon.MalformedLine, 1},

		{"ArrayTooFew", "tags[3]: a,b", toon.RowCountMismatch, 1},
		{"ArrayTooMany", "tags[1]: a,b", toon.RowCountMismatch, 1},
		{"ArrayEmptyDeclared", "tags[2]:", toon.RowCountMismatch, 1},

		{"RowTooFewCells", "rows[1]{a,b}:\n  1", toon.ColumnCountMismatch, 2},
		{"RowTooManyCells", "rows[1]{a,b}:\n  1,2,3", toon.ColumnCountMismatch, 2},

		{"TruncatedTable", "items[3]{id,name}:\n  1,Apple\n  2,Banana", toon.TruncatedTable, 3},
		{"TruncatedNoRows", "items[1]{id}:", toon.TruncatedTable, 1},

		{"QuoteInScalar", `note: "a, b`, toon.InvalidLiteral, 1},
		{"QuoteInArray", `vals[2]: "a, b`, toon.QuoteParseError, 1},
		{"QuoteInRow", "rows[1]{a}:\n  \"x", toon.QuoteParseError, 2},
		{"BadRowLiteral", "rows[1]{a}:\n  \"x\"y", toon.InvalidLiteral, 2},

		{"DuplicateKey", "a: 1\na: 2", toon.DuplicateKey, 2},
		{"DuplicateTableKey", "a[1]{x}:\n  1\na: 2", toon.DuplicateKey, 3},

		{"PathConflictLeafThenPrefix", "a: 1\na.b: 2", toon.PathConflict, 0},
		{"PathConflictPrefixThenLeaf", "a.b: 1\na: 2", toon.PathConflict, 0},
		{"PathConflictColumnVsScalar", "a.b: 1\n\na[1]{x}:\n  1", toon.PathConflict, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := toon.Decode(tc.input)
			var de *toon.DecodeError
			if err == nil {
				t.Fatalf("Decode: got %+v, want error", got)
			} else if !errors.As(err, &de) || de.Kind != tc.kind {
				t.Fatalf("Decode: got error %v, want kind %v", err, tc.kind)
			}
			if tc.line > 0 && de.Line != tc.line {
				t.Errorf("Error line: got %d, want %d", de.Line, tc.line)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input toon.Object
	}{
		{"Scalars", toon.Object{
			toon.Field("title", toon.String("Report")),
			toon.Field("pages", toon.Int(12)),
			toon.Field("score", toon.Float(1340.75)),
			toon.Field("done", toon.Bool(false)),
			toon.Field("notes", toon.Null{}),
		}},
		{"TrickyStrings", toon.Object{
			toon.Field("empty", toon.String("")),
			toon.Field("comma", toon.String("a, b")),
			toon.Field("quoteful", toon.String(`he said "no"`)),
			toon.Field("keyword", toon.String("null")),
			toon.Field("numeric", toon.String("3.14")),
			toon.Field("spacey", toon.String(" padded ")),
			toon.Field("multiline", toon.String("a\nb")),
			toon.Field("unicode", toon.String("héllo 😀")),
		}},
		{"Arrays", toon.Object{
			toon.Field("empty", toon.Array{}),
			toon.Field("nums", toon.Array{toon.Int(1), toon.Float(2.5), toon.Int(-3)}),
			toon.Field("mixedScalars", toon.Array{toon.Bool(true), toon.Null{}, toon.String("x")}),
		}},
		{"NestedObjects", toon.Object{
			toon.Field("a", toon.Object{
				toon.Field("b", toon.Object{
					toon.Field("c", toon.Int(1)),
				}),
				toon.Field("d", toon.Int(2)),
			}),
		}},
		{"Tables", toon.Object{
			toon.Field("title", toon.String("T")),
			toon.Field("readings", toon.Array{
				toon.Object{
					toon.Field("time", toon.String("08:00")),
					toon.Field("temp", toon.Float(20.5)),
				},
				toon.Object{
					toon.Field("time", toon.String("12:00")),
					toon.Field("temp", toon.Float(24.3)),
				},
			}),
		}},
		{"TableNestedRows", toon.Object{
			toon.Field("events", toon.Array{
				toon.Object{
					toon.Field("ts", toon.Int(1)),
					toon.Field("user", toon.Object{
						toon.Field("id", toon.Int(7)),
						toon.Field("name", toon.String("ana")),
					}),
				},
				toon.Object{
					toon.Field("ts", toon.Int(2)),
					toon.Field("user", toon.Object{
						toon.Field("id", toon.Int(9)),
						toon.Field("name", toon.String("bo")),
					}),
				},
			}),
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text, err := toon.Encode(tc.input)
			if err != nil {
				t.Fatalf("Encode: unexpected error: %v", err)
			}
			got, err := toon.Decode(text)
			if err != nil {
				t.Fatalf("Decode: unexpected error: %v\ninput:\n%s", err, text)
			}
			if diff := cmp.Diff(got, tc.input); diff != "" {
				t.Errorf("Round trip: wrong result (-got, +want):\n%s", diff)
			}

			// Pretty tables change only cosmetic indentation.
			pretty, err := toon.New().EncodeWithOptions(tc.input, toon.EncodeOptions{PrettyTables: true})
			if err != nil {
				t.Fatalf("Encode pretty: unexpected error: %v", err)
			}
			got, err = toon.Decode(pretty)
			if err != nil {
				t.Fatalf("Decode pretty: unexpected error: %v", err)
			}
			if diff := cmp.Diff(got, tc.input); diff != "" {
				t.Errorf("Pretty round trip: wrong result (-got, +want):\n%s", diff)
			}
		})
	}
}

// Re-flattening a flat decode must agree with the expanded decode.
func TestFlatExpandedEquivalence(t *testing.T) {
	const input = "metadata.user.id: 1\nmetadata.user.name: kim\nmetadata.source: sensor\n\ntags[2]: a,b"

	expanded, err := toon.Decode(input)
	if err != nil {
		t.Fatalf("Decode: unexpected error: %v", err)
	}

	flatCodec := toon.New()
	flatCodec.ExpandPaths(false)
	flat, err := flatCodec.Decode(input)
	if err != nil {
		t.Fatalf("Decode flat: unexpected error: %v", err)
	}

	// Re-encoding the flat form and decoding it with expansion must
	// reproduce the expanded tree.
	text, err := toon.Encode(flat)
	if err != nil {
		t.Fatalf("Encode flat: unexpected error: %v", err)
	}
	reexpanded, err := toon.Decode(text)
	if err != nil {
		t.Fatalf("Decode re-encoded: unexpected error: %v", err)
	}
	if diff := cmp.Diff(reexpanded, expanded); diff != "" {
		t.Errorf("Flat and expanded decodes disagree (-got, +want):\n%s", diff)
	}
}
