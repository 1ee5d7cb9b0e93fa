package ccli

import (
	"io"
	"os"
)

// Option configures an Editor at construction time (the functional
// options pattern, as the teacher uses for Prompt).
type Option interface {
	apply(e *Editor)
}

type optionFunc func(e *Editor)

func (f optionFunc) apply(e *Editor) { f(e) }

// WithTTY configures a single file as both input and output.
func WithTTY(tty *os.File) Option {
	return optionFunc(func(e *Editor) {
		e.in = tty
		e.out = tty
		if f, ok := io.Writer(tty).(*os.File); ok {
			e.fd = int(f.Fd())
		}
	})
}

// WithInput configures the input reader. Primarily useful for tests.
func WithInput(r io.Reader) Option {
	return optionFunc(func(e *Editor) { e.in = r })
}

// WithOutput configures the output writer. Primarily useful for tests.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(e *Editor) { e.out = w })
}

// WithSize sets the initial display width and height. When the input is
// a terminal, ConsoleAcquire replaces them with the queried terminal
// size. Primarily useful for tests run against a non-terminal
// input/output pair.
func WithSize(width, height int) Option {
	return optionFunc(func(e *Editor) { e.initialWidth, e.initialHeight = width, height })
}

// WithHistorySize bounds the number of retained history entries. 0
// disables history; a negative value makes it unbounded.
func WithHistorySize(max int) Option {
	return optionFunc(func(e *Editor) { e.history = NewHistory(max) })
}

// WithHistoryFile configures the path used to persist history across
// sessions. An empty path (the default) disables persistence.
func WithHistoryFile(path string) Option {
	return optionFunc(func(e *Editor) { e.historyFile = path })
}

// WithAliasFile configures the path used to persist aliases across
// sessions. An empty path (the default) disables persistence.
func WithAliasFile(path string) Option {
	return optionFunc(func(e *Editor) { e.aliasFile = path })
}

// WithChainDelimiter configures the statement-chaining separator (e.g.
// ";"). An empty string, the default, disables chaining.
func WithChainDelimiter(delim string) Option {
	return optionFunc(func(e *Editor) { e.registry.SetChainDelimiter(delim) })
}

// WithCommandTable installs a hierarchical command table. It panics if
// the table is structurally invalid (duplicate sibling names, or a
// non-root node with neither a callback nor subcommands) since a
// malformed table passed at construction time is a programming error,
// not a runtime condition.
func WithCommandTable(root *CommandNode) Option {
	return optionFunc(func(e *Editor) {
		if err := e.registry.RegisterCommandTable(root); err != nil {
			panic(err)
		}
	})
}

// WithCompletionTable installs a hierarchical completion table.
func WithCompletionTable(root *CompletionNode) Option {
	return optionFunc(func(e *Editor) {
		if err := e.registry.RegisterCompletionTable(root); err != nil {
			panic(err)
		}
	})
}

// WithDefaultCompletion installs the registry-wide fallback completion
// callback used when no per-command completion callback runs.
func WithDefaultCompletion(fn CompleteFunc) Option {
	return optionFunc(func(e *Editor) { e.registry.SetDefaultComplete(fn) })
}

// WithUnknownHook overrides the hook run when a submitted command name
// matches no alias, command, or command-table entry.
func WithUnknownHook(fn UnknownHook) Option {
	return optionFunc(func(e *Editor) { e.registry.SetUnknownHook(fn) })
}

// WithEnterHook overrides the hook run when an empty line is submitted.
func WithEnterHook(fn EnterHook) Option {
	return optionFunc(func(e *Editor) { e.registry.SetEnterHook(fn) })
}

// WithInterruptHook overrides the hook run on Ctrl-C.
func WithInterruptHook(fn InterruptHook) Option {
	return optionFunc(func(e *Editor) { e.registry.SetInterruptHook(fn) })
}
