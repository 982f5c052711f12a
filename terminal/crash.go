package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// crashExit is swapped in tests
var crashExit = os.Exit

// HandleCrash resets the terminal, prints r with its stack trace to stderr
// and exits; a nil r is ignored
func HandleCrash(r any) {
	if r == nil {
		return
	}
	EmergencyReset(os.Stdout)
	os.Stdout.Sync()
	writeCrash(os.Stderr, r, debug.Stack())
	os.Stderr.Sync()
	crashExit(1)
}

// writeCrash uses \r\n so the trace stays readable if the tty is still raw
func writeCrash(w io.Writer, r any, stack []byte) {
	fmt.Fprintf(w, "\r\n\x1b[31mPARVIEW CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(w, "Stack Trace:\r\n%s\r\n", stack)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			HandleCrash(recover())
		}()
		fn()
	}()
}
