package ccli

import "strings"

// DefaultHistoryMax is the default bound on the number of history
// entries retained (component H).
const DefaultHistoryMax = 256

// History is a bounded ring of past submissions plus a scratch slot for
// the in-progress line, with incremental reverse search.
type History struct {
	entries []string
	max     int
	size    int // total lines ever added (monotonic)
	current int // index in [0, size]; size means "the line being composed"
	scratch string
	hasScratch bool

	searching    bool
	searchKey    string
	searchMatched bool
	lastMatch    string
	failed       bool
	savedCurrent int
}

// NewHistory returns a History bounded at max entries. A max of 0
// disables history; a negative max means unbounded.
func NewHistory(max int) *History {
	return &History{max: max}
}

func (h *History) lowest() int {
	if h.max <= 0 {
		return 0
	}
	if l := h.size - h.max; l > 0 {
		return l
	}
	return 0
}

func (h *History) slot(i int) int {
	if h.max <= 0 {
		return i
	}
	return i % h.max
}

// Size returns the total number of lines ever added.
func (h *History) Size() int { return h.size }

// Add appends a new entry, evicting the oldest if the ring is full, and
// resets navigation to the fresh (size) slot.
func (h *History) Add(line string) {
	if h.max == 0 {
		return
	}
	if h.max < 0 || len(h.entries) < h.max {
		h.entries = append(h.entries, "")
	}
	h.entries[h.slot(h.size)] = line
	h.size++
	h.current = h.size
	h.hasScratch = false
	h.scratch = ""
}

// entryAt returns the string at logical index i, where i == size is the
// fresh/scratch slot.
func (h *History) entryAt(i int) string {
	if i == h.size {
		if h.hasScratch {
			return h.scratch
		}
		return ""
	}
	return h.entries[h.slot(i)]
}

// At fetches the entry `past` steps back from the most recently added
// line (past=1 is the most recent). Returns ok=false when past exceeds
// either the total size or the ring bound.
func (h *History) At(past int) (string, bool) {
	if past <= 0 || past > h.size {
		return "", false
	}
	if h.max > 0 && past > h.max {
		return "", false
	}
	return h.entries[h.slot(h.size-past)], true
}

// saveCurrent stashes buf's contents into the ring slot being viewed
// (if the user had navigated to a recalled entry) or into scratch (if
// the fresh line was being edited).
func (h *History) saveCurrent(buf *Buffer) {
	if h.current == h.size {
		h.scratch = buf.String()
		h.hasScratch = true
		return
	}
	h.entries[h.slot(h.current)] = buf.String()
}

func (h *History) restore(buf *Buffer) {
	buf.Reset()
	buf.Replace(h.entryAt(h.current))
}

// Up navigates to the previous (older) entry, by step slots. It returns
// true if the navigation was a no-op (already at the oldest accessible
// entry).
func (h *History) Up(step int, buf *Buffer) bool {
	target := h.current - step
	if lo := h.lowest(); target < lo {
		target = lo
	}
	if target == h.current {
		return true
	}
	h.saveCurrent(buf)
	h.current = target
	h.restore(buf)
	return false
}

// Down navigates to the next (newer) entry, by step slots. It returns
// true if the navigation was a no-op (already at the fresh line).
func (h *History) Down(step int, buf *Buffer) bool {
	target := h.current + step
	if target > h.size {
		target = h.size
	}
	if target == h.current {
		return true
	}
	h.saveCurrent(buf)
	h.current = target
	h.restore(buf)
	return false
}

// Searching reports whether reverse search is currently active.
func (h *History) Searching() bool { return h.searching }

// SearchKey returns the in-progress search needle.
func (h *History) SearchKey() string { return h.searchKey }

// SearchFailed reports whether the most recent search update found no
// match.
func (h *History) SearchFailed() bool { return h.failed }

func (h *History) maybeInitSearch(buf *Buffer) {
	if h.searching {
		return
	}
	h.searching = true
	h.savedCurrent = h.current
	h.searchKey = ""
	h.lastMatch = ""
	h.failed = false
	h.searchMatched = false
	h.saveCurrent(buf)
}

// BeginSearch starts (or continues) an incremental reverse search.
func (h *History) BeginSearch(buf *Buffer) {
	h.maybeInitSearch(buf)
	h.advance(buf)
}

// AppendSearchKey extends the search needle by one printable byte.
func (h *History) AppendSearchKey(b byte, buf *Buffer) {
	if !h.searching {
		return
	}
	h.searchKey += string(b)
	h.rescan(buf)
}

// TruncateSearchKey removes the last byte of the search needle.
func (h *History) TruncateSearchKey(buf *Buffer) {
	if !h.searching || len(h.searchKey) == 0 {
		return
	}
	h.searchKey = h.searchKey[:len(h.searchKey)-1]
	h.rescan(buf)
}

// Advance moves to an earlier match for the same needle (a repeated
// Ctrl-R).
func (h *History) Advance(buf *Buffer) {
	if !h.searching {
		return
	}
	h.advance(buf)
}

func (h *History) advance(buf *Buffer) {
	if h.searchKey == "" {
		h.failed = false
		return
	}
	h.scan(buf)
}

// rescan restarts the scan from where the search began, so a changed
// needle can still match the entry currently shown. On a miss the
// previous match stays current.
func (h *History) rescan(buf *Buffer) {
	if h.searchKey == "" {
		h.failed = false
		h.current = h.savedCurrent
		h.restore(buf)
		return
	}
	prev, prevMatched := h.current, h.searchMatched
	h.current = h.savedCurrent
	h.searchMatched = false
	h.scan(buf)
	if h.failed {
		h.current, h.searchMatched = prev, prevMatched
	}
}

// scan walks current-1 down to the oldest accessible entry for one
// containing the search needle, skipping a consecutive duplicate of
// the last matched value.
func (h *History) scan(buf *Buffer) {
	lo := h.lowest()
	for idx := h.current - 1; idx >= lo; idx-- {
		val := h.entryAt(idx)
		if h.searchMatched && val == h.lastMatch {
			continue
		}
		pos := strings.Index(val, h.searchKey)
		if pos == -1 {
			continue
		}
		h.current = idx
		buf.Reset()
		buf.Replace(val)
		buf.pos = buf.start + pos + len(h.searchKey)
		h.lastMatch = val
		h.searchMatched = true
		h.failed = false
		return
	}
	h.failed = true
}

// EndSearch commits the current match and returns to normal editing.
func (h *History) EndSearch() {
	h.searching = false
	h.searchKey = ""
	h.failed = false
	h.searchMatched = false
}

// AbortSearch cancels the search, restoring the buffer and current
// index to what they were before the search began.
func (h *History) AbortSearch(buf *Buffer) {
	h.current = h.savedCurrent
	h.restore(buf)
	h.EndSearch()
}
