// ABOUTME: Unix input readiness check for ProcessTerminal using poll(2) on stdin.
// ABOUTME: Lets the key reader wait briefly for the rest of a split escape sequence.

//go:build unix

package terminal

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// WaitInput reports whether stdin has bytes to read within timeout.
func (t *ProcessTerminal) WaitInput(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, int(timeout.Milliseconds()))
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("polling stdin: %w", err)
		}
		// POLLHUP and POLLERR count as ready so the next Read reports them.
		return n > 0, nil
	}
}
