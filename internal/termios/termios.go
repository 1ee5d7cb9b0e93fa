// Package termios wraps golang.org/x/term's raw-mode and window-size
// queries behind the narrow save/restore and resize-notification shape
// the editor's console acquire/release needs, so that code does not
// import golang.org/x/term directly. The display surface still queries
// golang.org/x/term itself for the output's window size.
package termios

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// State is a saved terminal mode, returned by MakeRaw and consumed by
// Restore.
type State struct {
	saved *term.State
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool { return term.IsTerminal(fd) }

// MakeRaw puts fd into raw mode, returning the previous state so it can
// be restored later. It is a no-op returning a zero State if fd is not
// a terminal.
func MakeRaw(fd int) (*State, error) {
	if !term.IsTerminal(fd) {
		return &State{}, nil
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &State{saved: saved}, nil
}

// Restore reverts fd to the state saved by MakeRaw. It is a no-op if
// the saved state is empty (fd was not a terminal).
func Restore(fd int, s *State) error {
	if s == nil || s.saved == nil {
		return nil
	}
	return term.Restore(fd, s.saved)
}

// Size returns the terminal's column and row count for fd.
func Size(fd int) (width, height int, err error) {
	return term.GetSize(fd)
}

// NotifyResize registers for window-size-change notifications, calling
// onResize (expected to re-query Size and push it into the display
// surface) each time the window is resized. It returns a stop function
// that must be called to release the underlying signal channel.
func NotifyResize(onResize func()) (stop func()) {
	ch := make(chan os.Signal, 1)
	notifyWinch(ch)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				onResize()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
		close(ch)
	}
}

func notifyWinch(ch chan<- os.Signal) {
	signal.Notify(ch, syscall.SIGWINCH)
}
