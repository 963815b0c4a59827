// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of TOON string cells.
// The escape syntax is the JSON string syntax.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the escaped content of a quoted
// TOON cell. The input must have the enclosing double quotation marks
// already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and
// adjacent Unicode surrogate escapes are combined. Unquote reports an error
// for an incomplete escape sequence, an invalid escape character, or an
// unescaped interior quotation mark.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	putRune := func(r rune) {
		var buf [6]byte
		n := utf8.EncodeRune(buf[:], r)
		dec = append(dec, buf[:n]...)
	}
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		q := mem.IndexByte(src, '"')
		if q >= 0 && (i < 0 || q < i) {
			return nil, errors.New("unescaped quotation mark")
		}
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			v, rest, err := parseU16(src)
			if err != nil {
				return nil, err
			}
			src = rest
			if utf16.IsSurrogate(v) {
				// A high surrogate may combine with an immediately following
				// \u escape to form a single rune.
				if hi, rest, err := parseU16Prefix(src); err == nil {
					if c := utf16.DecodeRune(v, hi); c != utf8.RuneError {
						putRune(c)
						src = rest
						continue
					}
				}
				putRune(utf8.RuneError)
			} else {
				putRune(v)
			}
		default:
			return nil, fmt.Errorf("invalid escape %q", r)
		}
	}
	return dec, nil
}

// parseU16 reads exactly 4 hexadecimal digits from the front of src and
// returns the corresponding code unit and the remaining input.
func parseU16(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 4 {
		return 0, src, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, src, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, src.SliceFrom(4), nil
}

// parseU16Prefix reads a complete \uXXXX escape from the front of src.
func parseU16Prefix(src mem.RO) (rune, mem.RO, error) {
	if src.Len() < 2 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, src, errors.New("not a Unicode escape")
	}
	return parseU16(src.SliceFrom(2))
}
