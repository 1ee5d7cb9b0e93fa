package ccli

import (
	"fmt"
	"io"
	"strings"
)

// Execute tokenises and runs line against r (component X), recording it
// in h unless recordHistory is false (for lines the host runs itself
// rather than ones the user submitted). It returns the
// status of the last statement run; a positive status signals the
// caller (the event loop) to end the read-line session.
//
// An empty or all-whitespace line runs the enter hook instead of being
// tokenised. A non-empty line is split into one or more statements on
// the registry's configured chain delimiter (disabled when empty), each
// tokenised and dispatched independently, left to right.
func Execute(r *Registry, h *History, w io.Writer, line string, recordHistory bool) (int, error) {
	if strings.TrimSpace(line) == "" {
		return r.enterHook()
	}

	remaining := line
	status := 0
	for {
		args, next, perr := Tokenize(remaining, r.chainDelim)
		if perr != nil {
			fmt.Fprintf(w, "parse error: %v\n", perr)
			status = 0
			break
		}
		if len(args) > 0 {
			st, err := dispatchOne(r, w, remaining, args)
			status = st
			if err != nil {
				fmt.Fprintf(w, "%v\n", err)
			}
		}
		if next < 0 {
			break
		}
		remaining = remaining[next:]
	}

	if recordHistory {
		h.Add(line)
	}
	return status, nil
}

// dispatchOne resolves a single tokenised statement: alias expansion
// (with recursion suppressed by the alias's executing flag, falling
// through to the unknown hook rather than looping forever), then a flat
// command lookup (which also covers command-table top-level entries,
// registered flatly by RegisterCommandTable), then the unknown hook.
func dispatchOne(r *Registry, w io.Writer, line string, args []string) (int, error) {
	name := args[0]

	if a, ok := r.LookupAlias(name); ok {
		if a.executing {
			return r.unknownHook(w, name, args)
		}
		a.executing = true
		defer func() { a.executing = false }()

		expansion, _, err := Tokenize(a.Expansion, "")
		if err != nil {
			return 0, err
		}
		newArgs := make([]string, 0, len(expansion)+len(args)-1)
		newArgs = append(newArgs, expansion...)
		newArgs = append(newArgs, args[1:]...)

		newLine := a.Expansion
		if len(args) > 1 {
			newLine += " " + strings.Join(args[1:], " ")
		}
		return dispatchOne(r, w, newLine, newArgs)
	}

	if cmd, ok := r.Lookup(name); ok {
		return cmd.Run(name, line, cmd.Data, args)
	}

	return r.unknownHook(w, name, args)
}
