package document

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file in the repository root.

*/

import (
	"sort"

	"github.com/npillmayer/cords"
)

// Document is an immutable snapshot of a source text with a line index.
// Lines are 1-based; line n starts right after the (n-1)th newline byte.
// A trailing newline opens a final, empty line, matching what editors
// display.
type Document struct {
	text  cords.Cord
	lines []uint64 // byte offset of each line start; lines[0] == 0
}

// FromString creates a line-indexed document from a source string.
func FromString(s string) *Document {
	d := &Document{
		text:  cords.FromString(s),
		lines: []uint64{0},
	}
	err := d.text.EachLeaf(func(leaf cords.Leaf, start uint64) error {
		frag := leaf.String()
		for i := 0; i < len(frag); i++ {
			if frag[i] == '\n' {
				d.lines = append(d.lines, start+uint64(i)+1)
			}
		}
		return nil
	})
	if err != nil {
		tracer().Errorf("document line scan: %v", err) // cannot happen, callback never fails
	}
	return d
}

// FromBytes creates a line-indexed document from source bytes.
func FromBytes(content []byte) *Document {
	return FromString(string(content))
}

// Len returns the document length in bytes.
func (d *Document) Len() uint64 {
	return d.text.Len()
}

// LineCount returns the number of lines in the document. The empty document
// has a single (empty) line.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Text returns the document's content as a cord.
func (d *Document) Text() cords.Cord {
	return d.text
}

// LineAt returns the 1-based line containing the given byte offset. An
// offset equal to Len() addresses the last line's end and is legal; larger
// offsets are out of bounds.
func (d *Document) LineAt(offset uint64) (int, error) {
	if offset > d.Len() {
		return 0, ErrOffsetOutOfBounds
	}
	// first line start strictly beyond offset; the line we want precedes it
	i := sort.Search(len(d.lines), func(i int) bool {
		return d.lines[i] > offset
	})
	return i, nil
}

// OffsetOfLine returns the byte offset at which the given 1-based line
// starts.
func (d *Document) OffsetOfLine(line int) (uint64, error) {
	if line < 1 || line > len(d.lines) {
		return 0, ErrLineOutOfBounds
	}
	return d.lines[line-1], nil
}

// Line returns the text of the given 1-based line, without the trailing
// newline.
func (d *Document) Line(line int) (string, error) {
	start, err := d.OffsetOfLine(line)
	if err != nil {
		return "", err
	}
	end := d.Len()
	if line < len(d.lines) {
		end = d.lines[line] - 1 // strip the newline
	}
	if end <= start {
		return "", nil
	}
	return d.text.Report(start, end-start)
}
