package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"kilo/internal/editor"
	"kilo/internal/input"
	"kilo/internal/terminal"
)

// Version is reported in the welcome banner. Release builds set it with
// -ldflags "-X main.Version=...".
var Version = "dev"

const usage = "usage: kilo [--] [path]"

var errUsage = errors.New(usage)

func main() {
	log.SetFlags(0)
	log.SetPrefix("kilo: ")

	path, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := runSession(os.Stdin, os.Stdout, path); err != nil {
		if errors.Is(err, terminal.ErrNotTerminal) {
			log.Fatal("kilo requires a terminal on stdin")
		}
		log.Fatal(err)
	}
}

// parseArgs accepts at most one path, optionally after "--".
func parseArgs(args []string) (string, error) {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	} else if len(args) > 0 && strings.HasPrefix(args[0], "-") && args[0] != "-" {
		return "", fmt.Errorf("unknown flag %s\n%w", args[0], errUsage)
	}
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return args[0], nil
	}
	return "", errUsage
}

// runSession edits path on the terminal behind in and out. The terminal is
// restored before it returns, whether the editor quit, failed or panicked.
func runSession(in, out *os.File, path string) (err error) {
	sess, err := terminal.Open(in, out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); err == nil {
			err = cerr
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			_ = sess.Close()
			fmt.Fprintf(os.Stderr, "kilo panic: %v\n", r)
			_, _ = os.Stderr.Write(debug.Stack())
			os.Exit(2)
		}
	}()

	stop := restoreOnSignal(sess)
	defer stop()
	sess.WatchResize()

	dec := input.NewDecoder(sess, input.WithResize(sess.ResizePending))
	ed := editor.New(sess, dec, editor.WithVersion(Version))
	if path != "" {
		if err := ed.Open(path); err != nil {
			return err
		}
	}
	return ed.Run()
}

// restoreOnSignal puts the terminal back and exits when the process is asked
// to terminate. The returned func stops watching.
func restoreOnSignal(sess *terminal.Session) func() {
	sig := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sig, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		select {
		case s := <-sig:
			_ = sess.Close()
			log.Printf("terminated by %v", s)
			os.Exit(1)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sig)
		close(done)
	}
}
