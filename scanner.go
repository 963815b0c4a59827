// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mapset"
)

// LineKind is the type of a grammatical line in a TOON document.
type LineKind byte

// Constants defining the valid LineKind values.
const (
	LineInvalid LineKind = iota // invalid line
	LineScalar                  // scalar line: key: value
	LineArray                   // array line: key[N]: v1,v2,...
	LineTable                   // table header line: key[N]{col1,...,colM}:
)

var lineKindStr = [...]string{
	LineInvalid: "invalid line",
	LineScalar:  "scalar line",
	LineArray:   "array line",
	LineTable:   "table header",
}

func (k LineKind) String() string {
	if int(k) >= len(lineKindStr) {
		return lineKindStr[LineInvalid]
	}
	return lineKindStr[k]
}

// A Line is one parsed grammatical line of a TOON document.
type Line struct {
	Kind    LineKind
	Key     string   // the dotted key of the block
	Count   int      // declared element or row count, for LineArray and LineTable
	Columns []string // declared column names, for LineTable
	Value   string   // raw text after the colon, for LineScalar and LineArray
}

// A Scanner reads grammatical lines from a TOON document. Each call to Next
// advances the scanner to the next block-introducing line, skipping blank
// lines and full-line # comments, or reports an error. Table body rows are
// not grammatical lines; the caller consumes them with NextRow according to
// the declared row count.
type Scanner struct {
	in   *bufio.Scanner
	line Line
	num  int // 1-based number of the current line
	err  error
}

// NewScanner constructs a new line scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	return &Scanner{in: sc}
}

// Next advances s to the next block-introducing line of the input, or
// reports an error. At the end of the input, Next returns io.EOF. A line
// that does not match the grammar is reported as a *DecodeError with kind
// MalformedLine.
func (s *Scanner) Next() error {
	s.line = Line{}
	raw, err := s.rawLine(true)
	if err != nil {
		return s.setErr(err)
	}
	line, err := parseLine(raw)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Line = s.num
		}
		return s.setErr(err)
	}
	s.line = line
	return nil
}

// NextRow returns the next non-blank line of the input with leading
// indentation stripped, for use as a table row. At the end of the input,
// NextRow returns io.EOF.
func (s *Scanner) NextRow() (string, error) {
	raw, err := s.rawLine(false)
	if err != nil {
		return "", s.setErr(err)
	}
	return raw, nil
}

// Line returns the current grammatical line.
func (s *Scanner) Line() Line { return s.line }

// LineNum returns the 1-based number of the current line.
func (s *Scanner) LineNum() int { return s.num }

// Err returns the last error reported by Next or NextRow.
func (s *Scanner) Err() error { return s.err }

// rawLine returns the next non-blank input line, trimmed of surrounding
// whitespace. When comments is true, full-line # comments are skipped.
func (s *Scanner) rawLine(comments bool) (string, error) {
	for s.in.Scan() {
		s.num++
		text := strings.TrimSpace(s.in.Text())
		if text == "" {
			continue
		}
		if comments && strings.HasPrefix(text, "#") {
			continue
		}
		return text, nil
	}
	if err := s.in.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// parseLine classifies one trimmed line by a single-pass prefix scan of
// key, optional [N], optional {cols}, then a colon.
func parseLine(text string) (Line, error) {
	i := scanKey(text)
	if i == 0 {
		return Line{}, decErrf(MalformedLine, 0, "", "no key in %#q", text)
	}
	key := text[:i]
	if !validKey(key) {
		return Line{}, decErrf(MalformedLine, 0, key, "invalid key %q", key)
	}
	if i >= len(text) {
		return Line{}, decErrf(MalformedLine, 0, key, "missing colon in %#q", text)
	}

	// Scalar line: key: value
	if text[i] == ':' {
		return Line{
			Kind:  LineScalar,
			Key:   key,
			Value: strings.TrimSpace(text[i+1:]),
		}, nil
	}
	if text[i] != '[' {
		return Line{}, decErrf(MalformedLine, 0, key, "unexpected %q after key", text[i])
	}

	// Declared count: [N]
	n, i, err := scanCount(text, key, i+1)
	if err != nil {
		return Line{}, err
	}

	// Array line: key[N]: v1,v2,...
	if i < len(text) && text[i] == ':' {
		return Line{
			Kind:  LineArray,
			Key:   key,
			Count: n,
			Value: strings.TrimSpace(text[i+1:]),
		}, nil
	}

	// Table header: key[N]{col1,...,colM}:
	if i >= len(text) || text[i] != '{' {
		return Line{}, decErrf(MalformedLine, 0, key, "expected colon or column list in %#q", text)
	}
	end := strings.IndexByte(text[i:], '}')
	if end < 0 {
		return Line{}, decErrf(MalformedLine, 0, key, "unterminated column list in %#q", text)
	}
	cols, err := parseColumns(text[i+1:i+end], key)
	if err != nil {
		return Line{}, err
	}
	i += end + 1
	if i >= len(text) || text[i] != ':' || strings.TrimSpace(text[i+1:]) != "" {
		return Line{}, decErrf(MalformedLine, 0, key, "table header %#q does not end with a colon", text)
	}
	return Line{Kind: LineTable, Key: key, Count: n, Columns: cols}, nil
}

// scanKey returns the length of the dotted-key prefix of text.
func scanKey(text string) int {
	if text == "" || !isKeyStart(text[0]) {
		return 0
	}
	i := 1
	for i < len(text) && isKeyByte(text[i]) {
		i++
	}
	return i
}

// scanCount parses the digits of a declared count up to a closing bracket,
// returning the count and the offset just past the bracket.
func scanCount(text, key string, i int) (int, int, error) {
	start := i
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	if i == start || i >= len(text) || text[i] != ']' {
		return 0, i, decErrf(MalformedLine, 0, key, "invalid count declaration in %#q", text)
	}
	n, err := strconv.Atoi(text[start:i])
	if err != nil {
		return 0, i, decErrf(MalformedLine, 0, key, "count out of range in %#q", text)
	}
	return n, i + 1, nil
}

// parseColumns splits and validates a declared column list. Column names
// must be distinct.
func parseColumns(list, key string) ([]string, error) {
	cols := strings.Split(list, ",")
	seen := mapset.New[string]()
	for i, col := range cols {
		col = strings.TrimSpace(col)
		if !validKey(col) {
			return nil, decErrf(MalformedLine, 0, key, "invalid column name %q", col)
		}
		if seen.Has(col) {
			return nil, decErrf(MalformedLine, 0, key, "duplicate column name %q", col)
		}
		seen.Add(col)
		cols[i] = col
	}
	return cols, nil
}

// splitCells splits a comma-separated cell list into fields. Commas inside a
// double-quoted span are not delimiters. A dangling escape or an
// unterminated quoted span is reported as a *DecodeError with kind
// QuoteParseError.
func splitCells(raw string) ([]string, error) {
	var cells []string
	var cur strings.Builder
	var inQuotes, esc bool

	for i := 0; i < len(raw); i++ {
		ch := raw[i]
		switch {
		case esc:
			cur.WriteByte(ch)
			esc = false
		case ch == '\\' && inQuotes:
			cur.WriteByte(ch)
			esc = true
		case ch == '"':
			cur.WriteByte(ch)
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if esc {
		return nil, decErrf(QuoteParseError, 0, "", "dangling escape in %#q", raw)
	}
	if inQuotes {
		return nil, decErrf(QuoteParseError, 0, "", "unterminated quoted span in %#q", raw)
	}
	return append(cells, cur.String()), nil
}

// validKey reports whether s is a well-formed dotted key: a non-empty
// sequence of dot-separated segments drawn from letters, digits, and
// underscores, the first of which starts with a letter or underscore. Keys
// never contain the grammar's reserved characters.
func validKey(s string) bool {
	if s == "" || !isKeyStart(s[0]) {
		return false
	}
	prevDot := false
	for i := 1; i < len(s); i++ {
		if s[i] == '.' {
			if prevDot {
				return false
			}
			prevDot = true
			continue
		}
		if prevDot {
			// Each segment starts like a key.
			if !isKeyStart(s[i]) {
				return false
			}
		} else if !isKeyByte(s[i]) {
			return false
		}
		prevDot = false
	}
	return !prevDot
}

func isKeyStart(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isKeyByte(b byte) bool {
	return isKeyStart(b) || isDigit(b) || b == '.'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
