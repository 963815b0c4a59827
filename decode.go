// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import "io"

// DecodeFrom decodes a TOON document read from r. See Decode.
func (c *Codec) DecodeFrom(r io.Reader) (Object, error) {
	d := newStreamDecoder(r)

	// Collect the flat entries of the document in order. A table block
	// collects into an Array of row Objects whose keys are the declared
	// (possibly dotted) column names.
	var entries Object
	for {
		ev, err := d.nextBlock()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch ev.kind {
		case LineScalar, LineArray:
			entries = append(entries, Member{Key: ev.key, Value: ev.value})
		case LineTable:
			rows := make(Array, 0, ev.count)
			for d.remaining > 0 {
				cells, err := d.readRow()
				if err != nil {
					return nil, err
				}
				row := make(Object, len(cells))
				for i, v := range cells {
					row[i] = Member{Key: d.cols[i], Value: v}
				}
				rows = append(rows, row)
			}
			entries = append(entries, Member{Key: ev.key, Value: rows})
		}
	}
	if entries == nil {
		entries = Object{}
	}
	if !c.expandPaths {
		return entries, nil
	}
	return expandEntries(entries)
}
