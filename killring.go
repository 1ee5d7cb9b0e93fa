package ccli

// killRingMax bounds the number of retained kill-ring entries, as the
// teacher bounds its own kill ring.
const killRingMax = 10

// KillRing implements a fixed-size kill ring: a supplemented feature
// (§12) not named by the line-buffer module itself, adapted from the
// teacher's kill_ring.go from rune slices to the byte-oriented Buffer.
// Consecutive kill intents accumulate into a single entry; any other
// intent between them starts a fresh one.
type KillRing struct {
	entries []string
	killing bool
	yanking bool
}

// NewKillRing returns an empty KillRing.
func NewKillRing() *KillRing { return &KillRing{} }

func (r *KillRing) maybeBegin() {
	if r.killing {
		return
	}
	r.killing = true
	if r.entries == nil {
		r.entries = make([]string, 0, killRingMax)
	}
	if len(r.entries) < cap(r.entries) {
		r.entries = append(r.entries, "")
		return
	}
	copy(r.entries, r.entries[1:])
	r.entries[len(r.entries)-1] = ""
}

// Append adds text to the current entry (for a forward kill, e.g.
// kill-to-end-of-line).
func (r *KillRing) Append(text string) {
	if text == "" {
		return
	}
	r.maybeBegin()
	head := len(r.entries) - 1
	r.entries[head] += text
}

// Prepend adds text before the current entry (for a backward kill, e.g.
// kill-word-before-cursor).
func (r *KillRing) Prepend(text string) {
	if text == "" {
		return
	}
	r.maybeBegin()
	head := len(r.entries) - 1
	r.entries[head] = text + r.entries[head]
}

// Yank returns the most recent kill-ring entry, or "" if empty.
func (r *KillRing) Yank() string {
	if len(r.entries) == 0 {
		return ""
	}
	r.yanking = true
	return r.entries[len(r.entries)-1]
}

// Yanking reports whether the last operation was a yank, which
// YankPop needs to decide whether to rotate or no-op.
func (r *KillRing) Yanking() bool { return r.yanking }

// Rotate cycles the ring so the previously most-recent entry becomes
// the oldest, and the next entry back becomes current — used by
// yank-pop to cycle through prior kills after a yank.
func (r *KillRing) Rotate() {
	if len(r.entries) == 0 {
		return
	}
	last := r.entries[len(r.entries)-1]
	copy(r.entries[1:], r.entries)
	r.entries[0] = last
}

// StopKilling ends a run of consecutive kill intents, so the next kill
// starts a fresh entry instead of accumulating onto the last one.
func (r *KillRing) StopKilling() { r.killing = false }

// StopYanking clears the yanking flag, so a subsequent yank-pop with no
// intervening yank is a no-op.
func (r *KillRing) StopYanking() { r.yanking = false }
