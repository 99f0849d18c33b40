package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{args: nil, want: ""},
		{args: []string{"notes.txt"}, want: "notes.txt"},
		{args: []string{"--", "-odd-name"}, want: "-odd-name"},
		{args: []string{"--"}, want: ""},
		{args: []string{"-"}, want: "-"},
		{args: []string{"--version"}, wantErr: true},
		{args: []string{"a", "b"}, wantErr: true},
		{args: []string{"--", "a", "b"}, wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseArgs(tc.args)
		if tc.wantErr {
			if !errors.Is(err, errUsage) {
				t.Errorf("parseArgs(%q) error = %v, want usage error", tc.args, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("parseArgs(%q) = %q, %v; want %q", tc.args, got, err, tc.want)
		}
	}
}

func TestRunSessionRequiresTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := runSession(f, f, ""); err == nil || !strings.Contains(err.Error(), "not a terminal") {
		t.Fatalf("runSession on a regular file = %v", err)
	}
}

// convertKeys expands <CR>, <ESC>, <Up> and <C-x> style key names into the
// bytes a terminal sends for them.
func convertKeys(keys string) []byte {
	var out []byte
	for i := 0; i < len(keys); i++ {
		if keys[i] == '<' {
			end := strings.IndexByte(keys[i:], '>')
			if end != -1 {
				out = append(out, specialKeyBytes(keys[i+1:i+end])...)
				i += end
				continue
			}
		}
		out = append(out, keys[i])
	}
	return out
}

func specialKeyBytes(key string) []byte {
	switch key {
	case "CR":
		return []byte("\r")
	case "ESC":
		return []byte("\x1b")
	case "BS":
		return []byte("\x7f")
	case "Tab":
		return []byte("\t")
	case "Up":
		return []byte("\x1b[A")
	case "Down":
		return []byte("\x1b[B")
	case "Right":
		return []byte("\x1b[C")
	case "Left":
		return []byte("\x1b[D")
	}
	if strings.HasPrefix(key, "C-") && len(key) == 3 {
		return []byte{key[2] - 96}
	}
	return nil
}

func TestConvertKeys(t *testing.T) {
	got := string(convertKeys("a<CR><C-q><Left><nope>b"))
	if want := "a\r\x11\x1b[Db"; got != want {
		t.Fatalf("convertKeys = %q, want %q", got, want)
	}
}

// driveSession runs the editor on a pseudo-terminal, types keys once the
// first frame has been drawn and waits for the session to end.
func driveSession(t *testing.T, path, keys string) error {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatal(err)
	}

	ready := make(chan struct{})
	go func() {
		buf := make([]byte, 8192)
		first := true
		for {
			_, err := ptmx.Read(buf)
			if first {
				close(ready)
				first = false
			}
			if err != nil {
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() { done <- runSession(tty, tty, path) }()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for the first frame")
	}
	for _, b := range convertKeys(keys) {
		if _, err := ptmx.Write([]byte{b}); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("editor did not quit")
	}
	return nil
}

func TestEditSaveQuitOnPTY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	if err := driveSession(t, path, "hello<CR>world<Left><BS><C-s><C-q>"); err != nil {
		t.Fatalf("runSession: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "hello\nword\n"; string(data) != want {
		t.Fatalf("file holds %q, want %q", data, want)
	}
}

func TestDirtyQuitNeedsSecondPressOnPTY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.txt")
	if err := os.WriteFile(path, []byte("keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := driveSession(t, path, "x<C-q><C-q>"); err != nil {
		t.Fatalf("runSession: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "keep\n" {
		t.Fatalf("unsaved quit changed the file: %q", data)
	}
}
