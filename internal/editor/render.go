package editor

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const noName = "[No Name]"

// refreshScreen repaints the whole screen and sends it as one write.
func (e *Editor) refreshScreen() error {
	b := &e.frame
	b.Reset()
	b.WriteString("\x1b[?25l\x1b[H")
	e.drawRows(b)
	e.drawStatusBar(b)
	e.drawMessageBar(b)
	writeCursorPos(b, e.cy-e.rowOff+1, e.rx-e.colOff+1)
	b.WriteString("\x1b[?25h")
	_, err := e.term.Write(b.Bytes())
	return err
}

func (e *Editor) clearScreen() error {
	_, err := e.term.Write([]byte("\x1b[2J\x1b[H"))
	return err
}

func writeCursorPos(b *bytes.Buffer, row, col int) {
	var num [20]byte
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(num[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(num[:0], int64(col), 10))
	b.WriteByte('H')
}

func (e *Editor) drawRows(b *bytes.Buffer) {
	for y := 0; y < e.screenRows; y++ {
		fr := y + e.rowOff
		switch {
		case fr < e.buf.Len():
			e.drawRow(b, e.buf.Row(fr).Render())
		case e.buf.Len() == 0 && y == e.screenRows/3:
			e.drawWelcome(b)
		default:
			b.WriteByte('~')
		}
		b.WriteString("\x1b[K\r\n")
	}
}

func (e *Editor) drawRow(b *bytes.Buffer, render []rune) {
	if e.colOff >= len(render) {
		return
	}
	visible := render[e.colOff:]
	if len(visible) > e.screenCols {
		visible = visible[:e.screenCols]
	}
	for _, ch := range visible {
		b.WriteRune(safeTermRune(ch))
	}
}

func (e *Editor) drawWelcome(b *bytes.Buffer) {
	msg := fmt.Sprintf("Kilo editor -- version %s", e.version)
	if len(msg) > e.screenCols {
		msg = msg[:e.screenCols]
	}
	if padding := (e.screenCols - len(msg)) / 2; padding > 0 {
		b.WriteByte('~')
		b.WriteString(strings.Repeat(" ", padding-1))
	}
	b.WriteString(msg)
}

func (e *Editor) drawStatusBar(b *bytes.Buffer) {
	b.WriteString("\x1b[7m")
	name := noName
	if e.file != nil {
		name = safeTermString(e.file.Display)
	}
	modified := ""
	if e.buf.Dirty() {
		modified = " (modified)"
	}
	left := runewidth.Truncate(fmt.Sprintf("%.20s - %d lines%s", name, e.buf.Len(), modified), e.screenCols, "")
	right := fmt.Sprintf("%d/%d", e.cy+1, e.buf.Len())

	b.WriteString(left)
	rest := e.screenCols - runewidth.StringWidth(left)
	if len(right) <= rest {
		b.WriteString(strings.Repeat(" ", rest-len(right)))
		b.WriteString(right)
	} else {
		b.WriteString(strings.Repeat(" ", max(rest, 0)))
	}
	b.WriteString("\x1b[m\r\n")
}

func (e *Editor) drawMessageBar(b *bytes.Buffer) {
	b.WriteString("\x1b[K")
	if e.status.text == "" || e.now().Sub(e.status.at) >= statusTTL {
		return
	}
	b.WriteString(runewidth.Truncate(safeTermString(e.status.text), e.screenCols, ""))
}

// safeTermRune keeps control characters in file content from reaching the
// terminal as commands.
func safeTermRune(r rune) rune {
	if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
		return '?'
	}
	return r
}

func safeTermString(s string) string {
	return strings.Map(safeTermRune, s)
}
