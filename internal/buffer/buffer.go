// Package buffer implements the editor's document: an ordered list of rows,
// each holding its characters and their tab-expanded render form.
//
// Row and column arguments are 0-based. Operations given a row index that
// does not exist do nothing.
package buffer

import (
	"bufio"
	"errors"
	"io"
	"slices"
	"strings"
)

// Buffer is an ordered sequence of rows. The zero value is an empty, clean
// document.
type Buffer struct {
	rows  []*Row
	dirty bool
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// FromLines returns a clean buffer with one row per line.
func FromLines(lines ...string) *Buffer {
	b := &Buffer{rows: make([]*Row, 0, len(lines))}
	for _, ln := range lines {
		b.rows = append(b.rows, NewRow(ln))
	}
	return b
}

// Load reads newline-delimited text into a clean buffer. A trailing "\r" is
// dropped from each line.
func Load(r io.Reader) (*Buffer, error) {
	b := New()
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			b.rows = append(b.rows, NewRow(line))
		}
		if errors.Is(err, io.EOF) {
			return b, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// WriteTo writes every row followed by a single "\n". It does not change the
// dirty flag.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, r := range b.rows {
		m, err := bw.WriteString(string(r.content))
		n += int64(m)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// Len returns the number of rows.
func (b *Buffer) Len() int { return len(b.rows) }

// Row returns row i, or nil when i is out of range.
func (b *Buffer) Row(i int) *Row {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i]
}

// Lines returns the content of every row.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.rows))
	for i, r := range b.rows {
		out[i] = r.String()
	}
	return out
}

// Dirty reports whether the buffer changed since it was loaded or saved.
func (b *Buffer) Dirty() bool { return b.dirty }

// MarkClean clears the dirty flag after a save.
func (b *Buffer) MarkClean() { b.dirty = false }

// InsertChar inserts ch before column col of row. A column past the end of
// the row appends.
func (b *Buffer) InsertChar(row, col int, ch rune) {
	r := b.Row(row)
	if r == nil {
		return
	}
	r.insert(col, ch)
	b.dirty = true
}

// DeleteChar removes the character before column col of row. At column 0 the
// row is joined onto the previous one; at the start of the document nothing
// happens.
func (b *Buffer) DeleteChar(row, col int) {
	r := b.Row(row)
	if r == nil {
		return
	}
	if col <= 0 {
		b.JoinRow(row)
		return
	}
	if col > r.Len() {
		col = r.Len()
	}
	r.remove(col - 1)
	b.dirty = true
}

// AppendText appends text to the end of row.
func (b *Buffer) AppendText(row int, text string) {
	r := b.Row(row)
	if r == nil || text == "" {
		return
	}
	r.appendRunes([]rune(text))
	b.dirty = true
}

// SplitRowAt truncates row at col and inserts the remainder as a new row
// right after it.
func (b *Buffer) SplitRowAt(row, col int) {
	r := b.Row(row)
	if r == nil {
		return
	}
	col = min(max(col, 0), r.Len())
	tail := slices.Clone(r.content[col:])
	r.content = r.content[:col:col]
	r.update()
	b.rows = slices.Insert(b.rows, row+1, newRow(tail))
	b.dirty = true
}

// JoinRow appends row onto the previous row and removes it.
func (b *Buffer) JoinRow(row int) {
	if row < 1 || row >= len(b.rows) {
		return
	}
	b.rows[row-1].appendRunes(b.rows[row].content)
	b.rows = slices.Delete(b.rows, row, row+1)
	b.dirty = true
}

// InsertBlankRow inserts an empty row at index. index may equal Len to
// append.
func (b *Buffer) InsertBlankRow(index int) {
	if index < 0 || index > len(b.rows) {
		return
	}
	b.rows = slices.Insert(b.rows, index, newRow(nil))
	b.dirty = true
}
