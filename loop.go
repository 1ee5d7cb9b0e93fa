package ccli

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInterrupted is returned by ReadLine when the interrupt hook
// signals that the session should end (a non-zero return from an
// installed InterruptHook, or the default one).
var ErrInterrupted = errors.New("ccli: interrupted")

// ReadLine runs the event loop (component E): it orchestrates the
// keystroke decoder (K), the line buffer (L), and the display surface
// (D) until a line is submitted, reading from the Editor's configured
// input and writing to its configured output. It returns io.EOF when
// the input is exhausted.
func (e *Editor) ReadLine(prompt string) (string, error) {
	if err := e.ConsoleAcquire(); err != nil {
		return "", err
	}
	defer e.ConsoleRelease()

	buf := NewBuffer()
	e.tabCount = 0

	for {
		if e.history.Searching() {
			e.display.RenderSearch(e.history.SearchKey(), e.history.SearchFailed())
		} else {
			e.display.Refresh(prompt, buf)
		}

		intent, err := e.decoder.Next()
		if err != nil {
			return "", err
		}
		if intent.Kind == IntentEndOfInput {
			return "", io.EOF
		}

		if e.history.Searching() {
			done, line, err := e.handleSearchIntent(intent, buf)
			if err != nil {
				return "", err
			}
			if done {
				return line, nil
			}
			if e.history.Searching() || intent.Kind == IntentInterrupt {
				continue
			}
			// the search just ended without consuming intent (anything
			// but Enter/Interrupt/printable/backspace/Ctrl-R) — fall
			// through and let the normal dispatch below handle it.
		}

		if intent.Kind != IntentTab {
			e.tabCount = 0
		}
		if intent.Kind != IntentDeleteWord && intent.Kind != IntentDeleteToStart {
			e.killRing.StopKilling()
		}
		if intent.Kind != IntentYank {
			e.killRing.StopYanking()
		}

		done, line, err := e.handleIntent(intent, buf, prompt)
		if err != nil {
			return "", err
		}
		if done {
			return line, nil
		}
	}
}

// handleSearchIntent processes one intent while an incremental reverse
// search is active. done reports whether the line was submitted.
func (e *Editor) handleSearchIntent(intent Intent, buf *Buffer) (done bool, line string, err error) {
	switch intent.Kind {
	case IntentPrintable:
		e.history.AppendSearchKey(intent.Byte, buf)
		return false, "", nil
	case IntentBackspace:
		e.history.TruncateSearchKey(buf)
		return false, "", nil
	case IntentReverseSearch:
		e.history.Advance(buf)
		return false, "", nil
	case IntentInterrupt:
		e.history.AbortSearch(buf)
		return false, "", nil
	case IntentEnter:
		e.history.EndSearch()
		fmt.Fprint(e.out, "\r\n")
		return true, string(buf.All()), nil
	default:
		e.history.EndSearch()
		return false, "", nil
	}
}

// handleIntent processes one intent during normal (non-search) editing.
func (e *Editor) handleIntent(intent Intent, buf *Buffer, prompt string) (done bool, line string, err error) {
	switch intent.Kind {
	case IntentPrintable:
		buf.InsertByte(intent.Byte)
	case IntentBackspace:
		buf.Backspace()
	case IntentDelete:
		buf.Delete()
	case IntentDeleteWord:
		e.killRing.Prepend(buf.KillWordBefore())
	case IntentDeleteToStart:
		e.killRing.Prepend(buf.KillToStart())
	case IntentYank:
		buf.InsertString(e.killRing.Yank())
	case IntentLeft:
		buf.Left()
	case IntentRight:
		buf.Right()
	case IntentLeftWord:
		buf.LeftWord()
	case IntentRightWord:
		buf.RightWord()
	case IntentHome:
		buf.Home()
	case IntentEnd:
		buf.End()
	case IntentUp:
		e.history.Up(1, buf)
	case IntentDown:
		e.history.Down(1, buf)
	case IntentReverseSearch:
		e.history.BeginSearch(buf)
	case IntentInterrupt:
		status, ierr := e.registry.interruptHook(e.out, buf.String(), buf.Pos()-buf.Start())
		if ierr != nil {
			return false, "", ierr
		}
		if status != 0 {
			return false, "", ErrInterrupted
		}
	case IntentTab:
		e.completeWord(buf)
	case IntentEnter:
		if buf.IsLastByteEscape() {
			buf.InsertContinuation()
			fmt.Fprint(e.out, "\r\n")
			return false, "", nil
		}
		fmt.Fprint(e.out, "\r\n")
		return true, string(buf.All()), nil
	case IntentInsert, IntentContinuation, IntentPageUp, IntentPageDown, IntentIgnored, IntentNone:
		// no line-editing effect of their own outside the contexts
		// (pagination, explicit continuation) that interpret them.
	}
	return false, "", nil
}

// wordAtCursor splits prefix — the editable buffer contents up to the
// cursor — into an argument vector and reports which argument (by
// index) is the in-progress word being completed, along with its
// partial text. A prefix ending in whitespace means the cursor sits on
// a fresh, empty word just past the last complete argument.
func wordAtCursor(prefix string) (args []string, word int, match string) {
	args, _, _ = Tokenize(prefix, "")
	if prefix == "" || isSpace(prefix[len(prefix)-1]) {
		return args, len(args), ""
	}
	if len(args) == 0 {
		return args, 0, ""
	}
	return args, len(args) - 1, args[len(args)-1]
}

// completeWord implements Tab: extend the in-progress word to the
// longest common prefix of the matching candidates, inserting a
// trailing space (or the candidate's own terminator byte) on a unique
// match. When no further extension is possible, the first Tab beeps and
// the second displays the full candidate listing (tabCount tracks the
// double-press).
func (e *Editor) completeWord(buf *Buffer) {
	relPos := buf.Pos() - buf.Start()
	prefix := string(buf.Bytes()[:relPos])
	args, word, match := wordAtCursor(prefix)

	cands := Complete(e.registry, args, word, match)
	switch {
	case len(cands.Words) == 0:
		e.display.Bell()
		e.tabCount = 0
	case len(cands.Words) == 1:
		buf.InsertString(strings.TrimPrefix(cands.Words[0], match))
		switch cands.Terminator {
		case 0:
			buf.InsertByte(' ')
		case NoSpace:
		default:
			buf.InsertByte(cands.Terminator)
		}
		e.tabCount = 0
	default:
		lcp := LongestCommonPrefix(cands.Words)
		if len(lcp) > len(match) {
			buf.InsertString(lcp[len(match):])
			e.tabCount = 0
			return
		}
		e.tabCount++
		if e.tabCount < 2 {
			e.display.Bell()
			return
		}
		e.tabCount = 0
		fmt.Fprint(e.out, "\r\n")
		e.display.WriteCandidates(cands.Words, e.decoder)
	}
}
