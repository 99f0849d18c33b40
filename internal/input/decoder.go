// Package input decodes the raw terminal byte stream into key events.
package input

import (
	"bytes"
	"io"
	"iter"
	"strconv"
)

// maxParams bounds the CSI parameter buffer. Longer sequences decode as
// Unidentified.
const maxParams = 32

// Decoder turns a terminal byte stream into events.
//
// The source must behave like a raw-mode terminal: Read returns 0, nil when
// its short read timeout expires with nothing to deliver. Any error from the
// source is returned from Next.
type Decoder struct {
	src     io.Reader
	resized func() bool

	one [1]byte

	// Byte read past a lone Escape, delivered by the next call to Next.
	pending    byte
	hasPending bool

	params []byte
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithResize makes Next yield a Resize event when pending reports true while
// waiting for the first byte of an event.
func WithResize(pending func() bool) Option {
	return func(d *Decoder) { d.resized = pending }
}

// NewDecoder returns a decoder reading from src.
func NewDecoder(src io.Reader, opts ...Option) *Decoder {
	d := &Decoder{src: src, params: make([]byte, 0, maxParams)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Next blocks until one event has been decoded.
func (d *Decoder) Next() (Event, error) {
	b, resized, err := d.first()
	if err != nil {
		return Event{}, err
	}
	if resized {
		return Of(Resize), nil
	}
	switch {
	case b == Escape:
		return d.escape()
	case b >= 0x20 && b <= 0x7f:
		return KeyOf(b, false), nil
	case b >= 0x01 && b <= 0x1f:
		return KeyOf(b|0x60, true), nil
	}
	return Of(Unidentified), nil
}

// All yields events until the source fails. The failing error is yielded
// last.
func (d *Decoder) All() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			ev, err := d.Next()
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

func (d *Decoder) first() (b byte, resized bool, err error) {
	if d.hasPending {
		d.hasPending = false
		return d.pending, false, nil
	}
	for {
		b, ok, err := d.readTimeout()
		if err != nil || ok {
			return b, false, err
		}
		if d.resized != nil && d.resized() {
			return 0, true, nil
		}
	}
}

// readTimeout performs a single read. ok is false when the read timed out.
func (d *Decoder) readTimeout() (b byte, ok bool, err error) {
	n, err := d.src.Read(d.one[:])
	if n > 0 {
		return d.one[0], true, nil
	}
	return 0, false, err
}

func (d *Decoder) readBlocking() (byte, error) {
	for {
		b, ok, err := d.readTimeout()
		if err != nil || ok {
			return b, err
		}
	}
}

func (d *Decoder) escape() (Event, error) {
	b, ok, err := d.readTimeout()
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return KeyOf(Escape, false), nil
	}
	if b != '[' {
		d.pending, d.hasPending = b, true
		return KeyOf(Escape, false), nil
	}

	d.params = d.params[:0]
	for len(d.params) <= maxParams {
		b, err := d.readBlocking()
		if err != nil {
			return Event{}, err
		}
		switch b {
		case 'A', 'B', 'C', 'D', 'F', 'H', 'R', '~':
			return d.csi(b), nil
		case 'O':
			next, err := d.readBlocking()
			if err != nil {
				return Event{}, err
			}
			if next == 'F' || next == 'H' {
				return d.csi(next), nil
			}
			d.params = append(d.params, b, next)
		default:
			d.params = append(d.params, b)
		}
	}
	return Of(Unidentified), nil
}

func (d *Decoder) csi(final byte) Event {
	switch final {
	case 'A':
		return Of(Up)
	case 'B':
		return Of(Down)
	case 'C':
		return Of(Right)
	case 'D':
		return Of(Left)
	case 'H':
		return Of(Home)
	case 'F':
		return Of(End)
	case '~':
		n, ok := d.param(0)
		if !ok {
			break
		}
		switch n {
		case 5:
			return Of(PageUp)
		case 6:
			return Of(PageDown)
		case 1, 7:
			return Of(Home)
		case 4, 8:
			return Of(End)
		case 3:
			return Of(Delete)
		}
	case 'R':
		row, ok1 := d.param(0)
		col, ok2 := d.param(1)
		if ok1 && ok2 {
			return Event{Kind: CursorPosition, Row: row, Col: col}
		}
	}
	return Of(Unidentified)
}

// param parses the i-th ';'-separated parameter as an unsigned integer.
func (d *Decoder) param(i int) (int, bool) {
	fields := bytes.Split(d.params, []byte{';'})
	if i >= len(fields) {
		return 0, false
	}
	n, err := strconv.ParseUint(string(fields[i]), 10, 31)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
