// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package toon implements an encoder and decoder for TOON, a compact
// line-oriented text notation for JSON-like data, designed to reduce token
// count when structured data is embedded in language-model prompts.
//
// # Notation
//
// A TOON document is a sequence of blocks separated by blank lines. A block
// is one of three shapes:
//
//	title: Temperatures          scalar line
//	tags[3]: a,b,c               array line (scalar elements)
//	readings[2]{time,temp}:      table block (array of objects)
//	  08:00,20.5
//	  12:00,24.3
//
// Nested objects flatten into dotted keys ("user.id: 5"), both as scalar
// lines and as table column names. Declared counts are always checked
// against the actual number of elements or rows.
//
// # Encoding
//
// Construct a Codec with New and pass an Object to Encode. Object member
// order is preserved. Arrays must be homogeneous: all elements scalar, or
// all elements Object with identical flattened columns. Violations are
// reported as *EncodeError with a kind describing the failed invariant.
//
//	c := toon.New()
//	text, err := c.Encode(toon.Object{
//	    toon.Field("title", toon.String("T")),
//	})
//
// # Decoding
//
// Decode parses a document into an Object, expanding dotted keys back into
// nested objects unless ExpandPaths is disabled. Input that ends inside a
// table body is reported as TruncatedTable; RowCountMismatch is reserved
// for array lines whose element count disagrees with the declared count.
// Errors are reported as *DecodeError carrying the kind of violation and
// the 1-based line number:
//
//	v, err := c.Decode(text)
//	if err != nil {
//	    var de *toon.DecodeError
//	    if errors.As(err, &de) {
//	        log.Fatalf("line %d: %v", de.Line, err)
//	    }
//	}
//
// # Streaming
//
// DecodeStream returns a pull-based decoder that yields (dotted key, value)
// pairs in document order without building the full tree. Table blocks
// stream cell by cell in row-major order. The sequence is forward-only and
// single-pass; stopping early is valid and leaves the rest of the input
// unread.
//
//	st := c.DecodeStream(text)
//	for {
//	    e, err := st.Next()
//	    if err == io.EOF {
//	        break
//	    } else if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(e.Key, e.Value)
//	}
package toon
