// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string for inclusion as a quoted TOON cell. The contents
// are escaped JSON-style and enclosing double quotation marks are added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			switch {
			case r == '"' || r == '\\':
				buf = append(buf, '\\', byte(r))
			case r < ' ':
				if b := controlEsc[r]; b != 0 {
					buf = append(buf, '\\', b)
				} else {
					buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
				}
			default:
				buf = append(buf, byte(r))
			}
		} else {
			var rbuf [6]byte
			nb := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:nb]...)
		}
		src = src.SliceFrom(n)
	}
	return append(buf, '"')
}
