// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"io"
	"strings"
)

// A Codec converts between Value trees and TOON text. The only state of a
// Codec is its configuration, fixed before first use; a single Codec may
// therefore be shared freely among concurrent encode and decode calls.
type Codec struct {
	expandPaths bool
}

// New constructs a new codec with the default configuration: dotted paths
// are expanded into nested objects during decoding.
func New() *Codec { return &Codec{expandPaths: true} }

// ExpandPaths configures the codec to expand (true) or preserve (false)
// dotted keys when decoding. When disabled, Decode returns a flat object
// keyed by the full dotted strings, in document order. ExpandPaths must be
// called before the codec is used; a codec must not be reconfigured while
// calls are in flight.
func (c *Codec) ExpandPaths(ok bool) { c.expandPaths = ok }

// Encode encodes root, which must be an Object, as a TOON document.
//
// Object members encode in order: a scalar as one "key: value" line, a
// nested object as a run of dotted scalar lines, an array of scalars as one
// "key[N]: v1,...,vN" line, and an array of objects as a table block. Blocks
// are separated by a blank line. A structure outside those shapes is
// reported as an *EncodeError and no text is returned.
func (c *Codec) Encode(root Value) (string, error) {
	return c.EncodeWithOptions(root, EncodeOptions{})
}

// Decode decodes a TOON document into an Object. Malformed input is
// reported as a *DecodeError identifying the offending line; decoding is
// all-or-nothing.
func (c *Codec) Decode(text string) (Object, error) {
	return c.DecodeFrom(strings.NewReader(text))
}

// DecodeStream returns a pull-based decoder over text that yields (dotted
// key, value) pairs lazily. Dotted keys are returned as written, regardless
// of the ExpandPaths setting.
func (c *Codec) DecodeStream(text string) *StreamDecoder {
	return c.DecodeStreamFrom(strings.NewReader(text))
}

// DecodeStreamFrom returns a pull-based decoder that consumes input from r.
// See DecodeStream.
func (c *Codec) DecodeStreamFrom(r io.Reader) *StreamDecoder {
	return newStreamDecoder(r)
}

// Encode encodes root using a default codec. See [Codec.Encode].
func Encode(root Value) (string, error) { return New().Encode(root) }

// Decode decodes text using a default codec. See [Codec.Decode].
func Decode(text string) (Object, error) { return New().Decode(text) }
