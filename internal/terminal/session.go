// Package terminal owns the controlling terminal while the editor runs.
//
// A Session captures the original line discipline when it is opened and puts
// the terminal into raw mode with short-timeout reads. Close restores the
// captured settings; it is safe to call more than once and from a signal
// handler goroutine.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal is returned by Open when the input is not a terminal.
var ErrNotTerminal = errors.New("terminal: input is not a terminal")

// Session is a terminal held in raw mode.
type Session struct {
	in  *os.File
	out *os.File
	fd  int

	orig unix.Termios

	resized atomic.Bool
	sigs    chan os.Signal
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Open switches in to raw mode. Reads on the session return after roughly
// 100ms even when no byte arrived. Output goes to out.
func Open(in, out *os.File) (*Session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	s := &Session{in: in, out: out, fd: fd}
	if err := termios.Tcgetattr(uintptr(fd), &s.orig); err != nil {
		return nil, fmt.Errorf("terminal: get attributes: %w", err)
	}
	raw := s.orig
	makeRaw(&raw)
	if err := termios.Tcsetattr(uintptr(fd), termios.TCSAFLUSH, &raw); err != nil {
		return nil, fmt.Errorf("terminal: set attributes: %w", err)
	}
	return s, nil
}

func makeRaw(t *unix.Termios) {
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 1
}

// Read reads up to len(p) bytes from the terminal. When the read timeout
// elapses with nothing available it returns 0, nil.
func (s *Session) Read(p []byte) (int, error) {
	n, err := unix.Read(s.fd, p)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		return 0, fmt.Errorf("terminal: read: %w", err)
	}
	return n, nil
}

// Write sends p to the terminal output.
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Size reports the window size as known to the host.
func (s *Session) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(s.out.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("terminal: window size: %w", err)
	}
	return rows, cols, nil
}

// WatchResize starts recording SIGWINCH deliveries. Use ResizePending to
// consume them.
func (s *Session) WatchResize() {
	if s.sigs != nil {
		return
	}
	s.sigs = make(chan os.Signal, 1)
	s.done = make(chan struct{})
	signal.Notify(s.sigs, unix.SIGWINCH)
	go func(sigs <-chan os.Signal, done <-chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-sigs:
				s.resized.Store(true)
			}
		}
	}(s.sigs, s.done)
}

// ResizePending reports whether the window changed size since the last call.
func (s *Session) ResizePending() bool {
	return s.resized.Swap(false)
}

// Close restores the terminal settings captured by Open.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.sigs != nil {
			signal.Stop(s.sigs)
			close(s.done)
		}
		if err := termios.Tcsetattr(uintptr(s.fd), termios.TCSAFLUSH, &s.orig); err != nil {
			s.closeErr = fmt.Errorf("terminal: restore attributes: %w", err)
		}
	})
	return s.closeErr
}
