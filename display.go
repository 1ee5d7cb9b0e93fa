package ccli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// defaultWidth and defaultHeight are used when the output endpoint is
// not a terminal (or its size cannot be queried), matching a sane
// 80x24 fallback.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Display is the output-side rendering surface (component D): line
// repaint, the reverse-search status line, and paginated/columnar
// completion listings. It deliberately tracks bytes, not runes or
// display cells — wide-character accounting is out of scope.
type Display struct {
	out           io.Writer
	tty           *os.File
	width, height int
}

// NewDisplay returns a Display writing to out, querying out's window
// size via golang.org/x/term if out is a terminal file, else falling
// back to an 80x24 flat-listing posture.
func NewDisplay(out io.Writer) *Display {
	d := &Display{out: out, width: defaultWidth, height: defaultHeight}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		d.tty = f
		d.refreshSize()
	}
	return d
}

func (d *Display) refreshSize() {
	if d.tty == nil {
		return
	}
	if w, h, err := term.GetSize(int(d.tty.Fd())); err == nil && w > 0 && h > 0 {
		d.width, d.height = w, h
	}
}

// SetSize installs an explicit window size, e.g. from a SIGWINCH
// handler that already resolved it once for the whole process.
func (d *Display) SetSize(w, h int) {
	if w > 0 {
		d.width = w
	}
	if h > 0 {
		d.height = h
	}
}

// Size reports the current width and height used for pagination and
// column layout.
func (d *Display) Size() (width, height int) { return d.width, d.height }

// IsTerminal reports whether the output endpoint is a real terminal.
func (d *Display) IsTerminal() bool { return d.tty != nil }

func (d *Display) write(s string) { io.WriteString(d.out, s) }

// ClearLine erases the current terminal line and returns the cursor to
// column zero.
func (d *Display) ClearLine() { d.write("\r\x1b[K") }

// Refresh repaints prompt followed by buf's editable contents and
// positions the cursor to match buf's logical cursor. While a
// continuation is active (buf.Start() > 0) it substitutes the fixed
// "> " continuation prompt for prompt, since the read-only prefix
// already covers everything the original prompt introduced.
func (d *Display) Refresh(prompt string, buf *Buffer) {
	d.ClearLine()
	if buf.Start() > 0 {
		d.write("> ")
	} else {
		d.write(prompt)
	}
	d.out.Write(buf.Bytes())

	relLen := buf.Len() - buf.Start()
	relPos := buf.Pos() - buf.Start()
	if tail := relLen - relPos; tail > 0 {
		fmt.Fprintf(d.out, "\x1b[%dD", tail)
	}
}

// RenderSearch draws the incremental reverse-search status line in the
// canonical "(reverse-i-search)`key': " form, prefixed with "failed "
// when the current needle has no match.
func (d *Display) RenderSearch(key string, failed bool) {
	d.ClearLine()
	if failed {
		fmt.Fprintf(d.out, "(failed reverse-i-search)`%s': ", key)
		return
	}
	fmt.Fprintf(d.out, "(reverse-i-search)`%s': ", key)
}

// Bell writes the audible/visual bell sequence, used by Tab completion
// when there is no candidate, or when several candidates cannot be
// extended further on the first press.
func (d *Display) Bell() { d.write("\a") }

// Columns lays out words into a multi-column grid sized to fit width,
// filled column by column like ls(1), for completion listings with more
// than one candidate.
func (d *Display) Columns(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	maxLen := 0
	for _, w := range words {
		if len(w) > maxLen {
			maxLen = len(w)
		}
	}
	colWidth := maxLen + 2
	cols := d.width / colWidth
	if cols < 1 {
		cols = 1
	}
	rows := (len(words) + cols - 1) / cols

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < cols; c++ {
			i := c*rows + r
			if i >= len(words) {
				break
			}
			if c == cols-1 || i+rows >= len(words) {
				b.WriteString(words[i])
			} else {
				fmt.Fprintf(&b, "%-*s", colWidth, words[i])
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// pagePrompt is the fixed prompt shown between screens.
const pagePrompt = "--Type <RET> for more, q to quit, c to continue without paging--"

// Page writes lines to the output, pausing with pagePrompt every
// height-1 rows when writing to a real terminal, reading one byte from
// dec to decide how to proceed: 'q' (or Ctrl-C) aborts the listing
// early and reports aborted=true, 'c' continues without any further
// pausing, and anything else just shows the next screen. Against a
// non-terminal output (or with a height of 1 or less, which leaves no
// room to page) it writes everything without pausing.
func (d *Display) Page(lines []string, dec *Decoder) (aborted bool, err error) {
	if !d.IsTerminal() || d.height <= 1 {
		for _, line := range lines {
			fmt.Fprintf(d.out, "%s\r\n", line)
		}
		return false, nil
	}

	step := d.height - 1
	paging := true
	for i, line := range lines {
		fmt.Fprintf(d.out, "%s\r\n", line)
		last := i == len(lines)-1
		if !paging || last || (i+1)%step != 0 {
			continue
		}
		d.write(pagePrompt)
		b, rerr := dec.ReadByte()
		d.ClearLine()
		if rerr != nil {
			return false, newError(KindIO, rerr)
		}
		switch b {
		case 'q', 0x03:
			return true, nil
		case 'c':
			paging = false
		}
	}
	return false, nil
}

// WriteCandidates lays out and pages a completion candidate list.
func (d *Display) WriteCandidates(words []string, dec *Decoder) (aborted bool, err error) {
	return d.Page(d.Columns(words), dec)
}
