// Package editor ties the buffer, the cursor and the screen together: it
// repaints the terminal, reads one input event at a time and applies it.
package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"kilo/internal/buffer"
	"kilo/internal/input"
)

// statusTTL is how long a status message stays on the message line.
const statusTTL = 5 * time.Second

// Terminal is the output side of the raw terminal session.
type Terminal interface {
	io.Writer
	// Size reports the window dimensions. An error or a zero dimension makes
	// the editor ask the terminal itself for its cursor position instead.
	Size() (rows, cols int, err error)
}

// File associates the buffer with a path on disk.
type File struct {
	Path    string
	Display string
}

type statusMessage struct {
	text string
	at   time.Time
}

// Editor is a single-buffer terminal editor.
type Editor struct {
	term Terminal
	in   *input.Decoder
	buf  *buffer.Buffer

	cx, cy         int
	rx             int
	rowOff, colOff int
	screenRows     int
	screenCols     int

	file      *File
	status    statusMessage
	quitArmed bool

	keymap  Keymap
	version string
	now     func() time.Time

	frame bytes.Buffer
}

// Option configures an Editor.
type Option func(*Editor)

// WithVersion sets the version shown in the welcome banner.
func WithVersion(v string) Option {
	return func(e *Editor) { e.version = v }
}

// WithClock replaces time.Now for status message expiry.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) { e.now = now }
}

// WithKeymap replaces the default key bindings.
func WithKeymap(k Keymap) Option {
	return func(e *Editor) { e.keymap = k }
}

// New returns an editor with an empty, untitled buffer.
func New(term Terminal, in *input.Decoder, opts ...Option) *Editor {
	e := &Editor{
		term:    term,
		in:      in,
		buf:     buffer.New(),
		keymap:  DefaultKeymap(),
		version: "dev",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Buffer returns the document being edited.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// File returns the file associated with the buffer, or nil when untitled.
func (e *Editor) File() *File { return e.file }

// Cursor returns the logical cursor position as (cx, cy).
func (e *Editor) Cursor() (cx, cy int) { return e.cx, e.cy }

// StatusMessage returns the current status message regardless of its age.
func (e *Editor) StatusMessage() string { return e.status.text }

func (e *Editor) setStatus(format string, args ...any) {
	e.status = statusMessage{text: fmt.Sprintf(format, args...), at: e.now()}
}

// Open replaces the buffer with the contents of path. A path that does not
// exist yet opens an empty buffer that the first save will create.
func (e *Editor) Open(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		e.load(buffer.New(), path)
		e.setStatus("\"%s\" [New File]", path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := buffer.Load(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	e.load(buf, path)
	return nil
}

func (e *Editor) load(buf *buffer.Buffer, path string) {
	e.buf = buf
	e.file = &File{Path: path, Display: path}
	e.cx, e.cy, e.rx = 0, 0, 0
	e.rowOff, e.colOff = 0, 0
	e.quitArmed = false
}

// Save writes the buffer to its file. An untitled buffer is not an error:
// the user is told on the message line.
func (e *Editor) Save() error {
	if e.file == nil {
		e.setStatus("No file name: start kilo with a path to save")
		return nil
	}
	f, err := os.Create(e.file.Path)
	if err != nil {
		return err
	}
	n, err := e.buf.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", e.file.Path, err)
	}
	e.buf.MarkClean()
	e.setStatus("%d bytes written to %s", n, e.file.Display)
	return nil
}
