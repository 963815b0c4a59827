// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"io"
	"strings"

	"github.com/creachadair/mds/mapset"
)

// An Entry is a single (dotted key, value) pair produced by a StreamDecoder.
type Entry struct {
	Key   string
	Value Value
}

// A StreamDecoder is a pull-based decoder over a TOON document. Each call to
// Next returns the next (dotted key, value) pair in document order, without
// materializing the full value tree.
//
// Scalar lines yield one pair, array lines yield one pair whose value is the
// whole Array, and a table block with key K, M columns, and N rows yields
// N×M scalar pairs in row-major order, keyed K.C1 .. K.CM for each row in
// turn. Keys are always returned in dotted form.
//
// A StreamDecoder is forward-only and single-pass: it must not be driven by
// more than one consumer, and it cannot be rewound or reused. Abandoning the
// sequence early is valid and simply leaves the remaining input unread.
type StreamDecoder struct {
	sc   *Scanner
	seen mapset.Set[string]

	// Table state. While remaining > 0 the decoder is inside a table body.
	key       string
	cols      []string
	total     int
	remaining int

	// Cells of the current row not yet emitted by Next.
	row  []Value
	cell int

	err error
}

func newStreamDecoder(r io.Reader) *StreamDecoder {
	return &StreamDecoder{sc: NewScanner(r), seen: mapset.New[string]()}
}

// Next returns the next entry of the document. At the end of the input, Next
// returns io.EOF. Any other error is a *DecodeError describing the first
// structural violation of the input; entries returned before the error
// remain valid. Once Next reports an error, all further calls return the
// same error.
func (d *StreamDecoder) Next() (Entry, error) {
	if d.err != nil {
		return Entry{}, d.err
	}
	for {
		// Emit pending cells of the current row.
		if d.cell < len(d.row) {
			e := Entry{Key: d.key + "." + d.cols[d.cell], Value: d.row[d.cell]}
			d.cell++
			return e, nil
		}
		if d.remaining > 0 {
			row, err := d.readRow()
			if err != nil {
				return Entry{}, d.fail(err)
			}
			d.row, d.cell = row, 0
			continue
		}

		ev, err := d.nextBlock()
		if err != nil {
			return Entry{}, d.fail(err)
		}
		if ev.kind == LineTable {
			// Rows are pulled lazily on subsequent calls. An empty table
			// yields no entries.
			continue
		}
		return Entry{Key: ev.key, Value: ev.value}, nil
	}
}

func (d *StreamDecoder) fail(err error) error {
	d.err = err
	return err
}

// A blockEvent reports one state transition of the decoder: a completed
// scalar or array block, or entry into a table body.
type blockEvent struct {
	kind  LineKind
	line  int
	key   string
	value Value    // the decoded value, for LineScalar and LineArray
	cols  []string // declared columns, for LineTable
	count int      // declared row count, for LineTable
}

// nextBlock advances the machine to the next block of the document.
// Precondition: the machine is not inside a table body.
func (d *StreamDecoder) nextBlock() (blockEvent, error) {
	if err := d.sc.Next(); err != nil {
		return blockEvent{}, err
	}
	ln, num := d.sc.Line(), d.sc.LineNum()

	if d.seen.Has(ln.Key) {
		return blockEvent{}, decErrf(DuplicateKey, num, ln.Key,
			"key %q already exists; duplicate entries are not allowed", ln.Key)
	}
	d.seen.Add(ln.Key)

	ev := blockEvent{kind: ln.Kind, line: num, key: ln.Key}
	switch ln.Kind {
	case LineScalar:
		if ln.Value == "" {
			ev.value = Null{}
			break
		}
		v, err := parseScalar(ln.Value)
		if err != nil {
			return blockEvent{}, at(err, num, ln.Key)
		}
		ev.value = v

	case LineArray:
		arr, err := parseArrayLine(ln, num)
		if err != nil {
			return blockEvent{}, err
		}
		ev.value = arr

	case LineTable:
		ev.cols, ev.count = ln.Columns, ln.Count
		d.key, d.cols = ln.Key, ln.Columns
		d.total, d.remaining = ln.Count, ln.Count
	}
	return ev, nil
}

// readRow consumes one table row.
// Precondition: remaining > 0.
func (d *StreamDecoder) readRow() ([]Value, error) {
	raw, err := d.sc.NextRow()
	if err == io.EOF {
		return nil, decErrf(TruncatedTable, d.sc.LineNum(), d.key,
			"table %q declares %d rows, but the input ended after %d",
			d.key, d.total, d.total-d.remaining)
	} else if err != nil {
		return nil, err
	}
	num := d.sc.LineNum()

	cells, err := splitCells(raw)
	if err != nil {
		return nil, at(err, num, d.key)
	}
	if len(cells) != len(d.cols) {
		return nil, decErrf(ColumnCountMismatch, num, d.key,
			"row %d of table %q has %d cells; %d expected",
			d.total-d.remaining, d.key, len(cells), len(d.cols))
	}
	row := make([]Value, len(cells))
	for i, cell := range cells {
		v, err := parseScalar(strings.TrimSpace(cell))
		if err != nil {
			return nil, at(err, num, d.key)
		}
		row[i] = v
	}
	d.remaining--
	return row, nil
}

// parseArrayLine decodes the value segment of an array line, checking the
// cell count against the declared count.
func parseArrayLine(ln Line, num int) (Array, error) {
	if ln.Value == "" {
		if ln.Count != 0 {
			return nil, decErrf(RowCountMismatch, num, ln.Key,
				"array %q declares %d elements, but 0 were parsed", ln.Key, ln.Count)
		}
		return Array{}, nil
	}
	cells, err := splitCells(ln.Value)
	if err != nil {
		return nil, at(err, num, ln.Key)
	}
	if len(cells) != ln.Count {
		return nil, decErrf(RowCountMismatch, num, ln.Key,
			"array %q declares %d elements, but %d were parsed", ln.Key, ln.Count, len(cells))
	}
	arr := make(Array, len(cells))
	for i, cell := range cells {
		v, err := parseScalar(strings.TrimSpace(cell))
		if err != nil {
			return nil, at(err, num, ln.Key)
		}
		arr[i] = v
	}
	return arr, nil
}

// at tags a decode error with the line and key at which it was detected.
func at(err error, line int, key string) error {
	if de, ok := err.(*DecodeError); ok {
		if de.Line == 0 {
			de.Line = line
		}
		if de.Key == "" {
			de.Key = key
		}
	}
	return err
}
