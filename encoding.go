// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"errors"
	"strings"

	"github.com/toonlab/toon/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a quoted TOON cell. The contents are escaped
// JSON-style and double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a quoted TOON cell. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
// Unquote reports an error if src is not a complete quoted cell or its
// escaping is malformed.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
