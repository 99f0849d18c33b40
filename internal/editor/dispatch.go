package editor

import (
	"errors"
	"io"

	"kilo/internal/input"
)

const (
	quitWarning = "WARNING! File has unsaved changes. Press Ctrl-Q again to quit."

	// Moves the cursor to the bottom-right corner, then asks where it is.
	querySizeSeq = "\x1b[9999C\x1b[9999B\x1b[6n"
)

// Run repaints and processes events until the user quits or an I/O error
// occurs. The screen is cleared on the way out.
func (e *Editor) Run() (err error) {
	defer func() {
		if cerr := e.clearScreen(); err == nil {
			err = cerr
		}
	}()

	if err := e.updateScreenSize(); err != nil {
		return err
	}
	e.scroll()
	for {
		if err := e.refreshScreen(); err != nil {
			return err
		}
		ev, err := e.in.Next()
		if err != nil {
			return err
		}
		quit, err := e.process(ev)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// process applies one event and reports whether the editor should exit.
func (e *Editor) process(ev input.Event) (bool, error) {
	if ev.Kind == input.Resize {
		if err := e.updateScreenSize(); err != nil {
			return false, err
		}
		e.scroll()
		return false, nil
	}

	act := e.keymap.Lookup(ev)
	switch act {
	case ActionNone:
		return false, nil
	case ActionQuit:
		if !e.buf.Dirty() || e.quitArmed {
			return true, nil
		}
		e.quitArmed = true
		e.setStatus(quitWarning)
		return false, nil
	}
	e.quitArmed = false

	var err error
	switch act {
	case ActionMoveUp:
		e.moveCursor(dirUp)
	case ActionMoveDown:
		e.moveCursor(dirDown)
	case ActionMoveLeft:
		e.moveCursor(dirLeft)
	case ActionMoveRight:
		e.moveCursor(dirRight)
	case ActionLineStart:
		e.cx = 0
	case ActionLineEnd:
		if row := e.buf.Row(e.cy); row != nil {
			e.cx = row.Len()
		}
	case ActionPageUp:
		e.cy = e.rowOff
		for i := 0; i < e.screenRows; i++ {
			e.moveCursor(dirUp)
		}
	case ActionPageDown:
		e.cy = min(e.rowOff+e.screenRows-1, e.buf.Len())
		for i := 0; i < e.screenRows; i++ {
			e.moveCursor(dirDown)
		}
	case ActionDeleteForward:
		e.moveCursor(dirRight)
		e.deleteBackward()
	case ActionDeleteBackward:
		e.deleteBackward()
	case ActionNewline:
		e.insertNewline()
	case ActionInsertTab:
		e.insertChar('\t')
	case ActionInsert:
		e.insertChar(rune(ev.Byte))
	case ActionSave:
		err = e.Save()
	}
	e.scroll()
	return false, err
}

func (e *Editor) insertChar(ch rune) {
	if e.cy == e.buf.Len() {
		e.buf.InsertBlankRow(e.cy)
	}
	e.buf.InsertChar(e.cy, e.cx, ch)
	e.cx++
}

func (e *Editor) insertNewline() {
	if e.cy == e.buf.Len() {
		e.buf.InsertBlankRow(e.cy)
	} else {
		e.buf.SplitRowAt(e.cy, e.cx)
	}
	e.cy++
	e.cx = 0
}

func (e *Editor) deleteBackward() {
	if e.cy == e.buf.Len() || (e.cx == 0 && e.cy == 0) {
		return
	}
	if e.cx > 0 {
		e.buf.DeleteChar(e.cy, e.cx)
		e.cx--
		return
	}
	e.cx = e.buf.Row(e.cy - 1).Len()
	e.buf.JoinRow(e.cy)
	e.cy--
}

func (e *Editor) updateScreenSize() error {
	rows, cols, err := e.term.Size()
	if err != nil || rows <= 0 || cols <= 0 {
		if rows, cols, err = e.querySize(); err != nil {
			return err
		}
	}
	e.setScreenSize(rows, cols)
	return nil
}

// querySize reads the window size from a Device Status Report. Events other
// than the report are discarded.
func (e *Editor) querySize() (rows, cols int, err error) {
	if _, err := io.WriteString(e.term, querySizeSeq); err != nil {
		return 0, 0, err
	}
	for ev, err := range e.in.All() {
		if err != nil {
			return 0, 0, err
		}
		if ev.Kind == input.CursorPosition {
			return ev.Row, ev.Col, nil
		}
	}
	return 0, 0, errors.New("editor: no cursor position report")
}
