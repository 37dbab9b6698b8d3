// ABOUTME: RestoreOnPanic recovers from panics, restores the terminal, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in main, which owns the terminal.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// RestoreOnPanic should be deferred at the top of main. On panic it
// shows the cursor, exits raw mode via the provided Terminal, prints the
// panic value and stack trace, then exits with code 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}
	restoreAfterPanic(t, os.Stderr, r)
	os.Exit(1)
}

// restoreAfterPanic puts the device back into a usable state and reports r.
func restoreAfterPanic(t Terminal, report io.Writer, r any) {
	// Best-effort: show cursor and exit raw mode.
	_, _ = t.Write(appendShowCursor(nil))
	_ = t.ExitRawMode()

	fmt.Fprintf(report, "\npanic: %v\n\n%s\n", r, debug.Stack())
}
