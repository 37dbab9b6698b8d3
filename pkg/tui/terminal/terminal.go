// ABOUTME: Defines the Terminal device interface for raw mode, size queries, and output.
// ABOUTME: Implementations target the process TTY or an in-memory virtual terminal.

package terminal

// Terminal abstracts the low-level device underneath Control: raw mode,
// size queries and output writing. Nothing outside this package writes
// escape sequences to a Terminal.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)
}

// Size is the visible viewport in cells.
type Size struct {
	Rows int
	Cols int
}

// Position is a zero-based cell location.
type Position struct {
	Col int
	Row int
}
