// Package ccli implements an embeddable interactive command-line editor:
// line editing with history and incremental search, shell-style
// argument tokenising, tab completion, and a command dispatcher with
// aliases and hierarchical command tables.
package ccli

import (
	"io"
	"os"

	"github.com/lmarchenko/ccli/internal/termios"
)

// Editor is the embeddable line editor (analogous to the teacher's
// Prompt): it wires together the line buffer, history ring, keystroke
// decoder, display surface, kill ring, and command registry.
type Editor struct {
	in  io.Reader
	out io.Writer
	fd  int

	initialWidth, initialHeight int

	history  *History
	registry *Registry
	killRing *KillRing
	decoder  *Decoder
	display  *Display

	historyFile string
	aliasFile   string

	tabCount int

	termState  *termios.State
	stopResize func()
}

// New constructs an Editor from the given options. With no options it
// reads from os.Stdin and writes to os.Stdout.
func New(options ...Option) *Editor {
	e := &Editor{
		in:       os.Stdin,
		out:      os.Stdout,
		fd:       -1,
		registry: NewRegistry(),
		killRing: NewKillRing(),
	}

	e.registry.Register("exit", cmdExit, nil, nil)

	for _, opt := range options {
		opt.apply(e)
	}

	type fdGetter interface{ Fd() uintptr }
	if f, ok := e.in.(fdGetter); ok {
		e.fd = int(f.Fd())
	}

	if e.history == nil {
		e.history = NewHistory(DefaultHistoryMax)
	}

	e.decoder = NewDecoder(e.in)
	e.display = NewDisplay(e.out)
	if e.initialWidth > 0 || e.initialHeight > 0 {
		e.display.SetSize(e.initialWidth, e.initialHeight)
	}

	if e.historyFile != "" {
		if lines, ok, err := LoadFile(e.historyFile, DefaultHistoryTag); err == nil && ok {
			for _, line := range lines {
				e.history.Add(line)
			}
		}
	}
	if e.aliasFile != "" {
		if lines, ok, err := LoadFile(e.aliasFile, DefaultAliasTag); err == nil && ok {
			for _, line := range lines {
				if args, _, err := Tokenize(line, ""); err == nil && len(args) >= 2 {
					e.registry.RegisterAlias(args[0], QuoteArgs(args[1:]))
				}
			}
		}
	}

	return e
}

// cmdExit is the built-in "exit" command registered on every Editor:
// its status return is loop-terminating, ending Run.
func cmdExit(name, line string, data interface{}, args []string) (int, error) {
	return 1, nil
}

// Registry exposes the command and alias registry for registration
// calls made outside of the functional-options constructor.
func (e *Editor) Registry() *Registry { return e.registry }

// History exposes the history ring, e.g. for a "history" command's own
// implementation to list past entries.
func (e *Editor) History() *History { return e.history }

// KillRing exposes the kill ring, e.g. for a "yank-pop" binding
// implemented outside the default event loop.
func (e *Editor) KillRing() *KillRing { return e.killRing }

// ConsoleAcquire puts the input file descriptor into raw mode and
// starts watching for window-size changes, if the input is a terminal.
// ReadLine calls this automatically; it is exposed so a caller that
// needs to shell out to a child process expecting cooked mode can
// release and reacquire the console around that call (see
// ConsoleRelease).
func (e *Editor) ConsoleAcquire() error {
	if e.fd < 0 {
		return nil
	}
	state, err := termios.MakeRaw(e.fd)
	if err != nil {
		return newError(KindIO, err)
	}
	e.termState = state

	if w, h, err := termios.Size(e.fd); err == nil {
		e.display.SetSize(w, h)
	}
	e.stopResize = termios.NotifyResize(func() {
		if w, h, err := termios.Size(e.fd); err == nil {
			e.display.SetSize(w, h)
		}
	})
	return nil
}

// ConsoleRelease restores the input file descriptor's original
// terminal mode and stops watching for resize events, the inverse of
// ConsoleAcquire.
func (e *Editor) ConsoleRelease() error {
	if e.stopResize != nil {
		e.stopResize()
		e.stopResize = nil
	}
	if e.fd < 0 {
		return nil
	}
	if err := termios.Restore(e.fd, e.termState); err != nil {
		return newError(KindIO, err)
	}
	return nil
}

// Execute tokenises and dispatches line against the Editor's registry,
// recording it in history.
func (e *Editor) Execute(line string) (int, error) {
	return Execute(e.registry, e.history, e.out, line, true)
}

// Run repeatedly reads and executes lines, prompting with prompt, until
// the input is exhausted, the interrupt hook ends the session, or a
// dispatched command returns a positive status. It returns nil on a
// clean end-of-input, and any other error encountered along the way.
func (e *Editor) Run(prompt string) error {
	for {
		line, err := e.ReadLine(prompt)
		if err != nil {
			if err == io.EOF || err == ErrInterrupted {
				return nil
			}
			return err
		}
		status, err := e.Execute(line)
		if err != nil {
			return err
		}
		if status > 0 {
			return nil
		}
	}
}

// SaveHistory persists the history ring to the configured history file.
// It is a no-op if no history file was configured.
func (e *Editor) SaveHistory() error {
	if e.historyFile == "" {
		return nil
	}
	lines := make([]string, 0, e.history.Size())
	for i := 1; i <= e.history.Size(); i++ {
		if line, ok := e.history.At(i); ok {
			lines = append(lines, line)
		}
	}
	// At(1) is most recent; reverse to oldest-first for on-disk order.
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return SaveFile(e.historyFile, DefaultHistoryTag, lines)
}

// SaveAliases persists the alias table to the configured alias file. It
// is a no-op if no alias file was configured.
func (e *Editor) SaveAliases() error {
	if e.aliasFile == "" {
		return nil
	}
	lines := make([]string, 0, len(e.registry.Aliases()))
	for _, a := range e.registry.Aliases() {
		lines = append(lines, a.Name+" "+a.Expansion)
	}
	return SaveFile(e.aliasFile, DefaultAliasTag, lines)
}

// Close releases console resources and persists history/aliases if
// configured. It does not close the underlying input/output, which the
// caller owns.
func (e *Editor) Close() error {
	if err := e.ConsoleRelease(); err != nil {
		return err
	}
	if err := e.SaveHistory(); err != nil {
		return err
	}
	return e.SaveAliases()
}
