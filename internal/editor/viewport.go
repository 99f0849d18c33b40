package editor

type direction uint8

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

// moveCursor takes one step in d. Left and Right wrap across row
// boundaries; the cursor row may sit one past the last row.
func (e *Editor) moveCursor(d direction) {
	row := e.buf.Row(e.cy)
	switch d {
	case dirUp:
		if e.cy > 0 {
			e.cy--
		}
	case dirDown:
		if e.cy < e.buf.Len() {
			e.cy++
		}
	case dirLeft:
		if e.cx > 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.buf.Row(e.cy).Len()
		}
	case dirRight:
		if row == nil {
			break
		}
		if e.cx < row.Len() {
			e.cx++
		} else {
			e.cy++
			e.cx = 0
		}
	}

	limit := 0
	if row := e.buf.Row(e.cy); row != nil {
		limit = row.Len()
	}
	if e.cx > limit {
		e.cx = limit
	}
}

// scroll recomputes the render column and shifts the window just enough to
// keep the cursor inside it.
func (e *Editor) scroll() {
	e.rx = 0
	if row := e.buf.Row(e.cy); row != nil {
		e.rx = row.RxFromCx(e.cx)
	}

	if e.cy < e.rowOff {
		e.rowOff = e.cy
	}
	if e.cy >= e.rowOff+e.screenRows {
		e.rowOff = e.cy - e.screenRows + 1
	}
	if e.rx < e.colOff {
		e.colOff = e.rx
	}
	if e.rx >= e.colOff+e.screenCols {
		e.colOff = e.rx - e.screenCols + 1
	}
}

func (e *Editor) setScreenSize(rows, cols int) {
	// Two lines are taken by the status bar and the message line.
	e.screenRows = max(rows-2, 1)
	e.screenCols = max(cols, 1)
}
