package ccli

// bufChunk is the amortised growth increment for Buffer's backing
// array, mirroring the teacher's screen.text doubling strategy but
// sized for line-editing rather than full-screen rendering.
const bufChunk = 64

// Buffer is the mutable line-editing buffer (component L). It tracks a
// logical length, a cursor position, and a "start" marker used to wall
// off a read-only prefix left behind by a continuation line.
//
// Invariant: 0 <= start <= pos <= length < cap(buf), and buf[length] is
// always 0. Growth happens in bufChunk-sized increments so inserts
// amortise to O(1).
type Buffer struct {
	buf    []byte
	length int
	pos    int
	start  int
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	b := &Buffer{buf: make([]byte, bufChunk)}
	return b
}

// Len returns the logical length of the buffer.
func (b *Buffer) Len() int { return b.length }

// Pos returns the cursor offset.
func (b *Buffer) Pos() int { return b.pos }

// Start returns the offset of the first editable byte.
func (b *Buffer) Start() int { return b.start }

// Bytes returns the editable contents of the buffer, [start, length).
// The returned slice aliases the buffer and must not be retained across
// a mutating call.
func (b *Buffer) Bytes() []byte { return b.buf[b.start:b.length] }

// All returns the full buffer contents, including any read-only
// continuation prefix.
func (b *Buffer) All() []byte { return b.buf[:b.length] }

func (b *Buffer) grow(extra int) {
	need := b.length + extra + 1 // +1 keeps buf[length] addressable as the NUL sentinel
	if need <= cap(b.buf) {
		b.buf = b.buf[:cap(b.buf)]
		return
	}
	newCap := cap(b.buf)
	for newCap < need {
		newCap += bufChunk
	}
	newBuf := make([]byte, newCap)
	copy(newBuf, b.buf[:b.length])
	b.buf = newBuf
}

func (b *Buffer) terminate() {
	b.buf[b.length] = 0
}

// There is no continuation sentinel byte: the event loop signals that
// Enter was pressed while the buffer ends in an unescaped backslash by
// calling InsertContinuation, while real keystrokes arrive through
// InsertByte, rather than overloading a single insert on a magic byte.

// InsertByte inserts a single byte at the cursor, shifting the tail
// right, and advances the cursor past it.
func (b *Buffer) InsertByte(c byte) {
	b.grow(1)
	copy(b.buf[b.pos+1:b.length+1], b.buf[b.pos:b.length])
	b.buf[b.pos] = c
	b.length++
	b.pos++
	b.terminate()
}

// InsertContinuation implements the continuation half of L's insert
// operation: it removes the trailing (unescaped, by construction —
// the caller only calls this when IsLastByteEscape() held) backslash
// and marks everything up to the new length as a read-only prefix.
func (b *Buffer) InsertContinuation() {
	if b.length > 0 && b.buf[b.length-1] == '\\' {
		b.length--
		if b.pos > b.length {
			b.pos = b.length
		}
		b.terminate()
	}
	b.start = b.length
	b.pos = b.length
}

// Left moves the cursor one byte left, clamped at start.
func (b *Buffer) Left() {
	if b.pos > b.start {
		b.pos--
	}
}

// Right moves the cursor one byte right, clamped at length.
func (b *Buffer) Right() {
	if b.pos < b.length {
		b.pos++
	}
}

// Home moves the cursor to start.
func (b *Buffer) Home() { b.pos = b.start }

// End moves the cursor to length.
func (b *Buffer) End() { b.pos = b.length }

// Backspace deletes the byte before the cursor. It is a no-op at
// pos == start.
func (b *Buffer) Backspace() bool {
	if b.pos == b.start {
		return false
	}
	copy(b.buf[b.pos-1:b.length-1], b.buf[b.pos:b.length])
	b.length--
	b.pos--
	b.terminate()
	return true
}

// Delete deletes the byte under the cursor. It is a no-op at
// pos == length.
func (b *Buffer) Delete() bool {
	if b.pos == b.length {
		return false
	}
	copy(b.buf[b.pos:b.length-1], b.buf[b.pos+1:b.length])
	b.length--
	b.terminate()
	return true
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// LeftWord moves the cursor left past the current run of
// non-alphanumerics, then past the following run of alphanumerics.
func (b *Buffer) LeftWord() {
	for b.pos > b.start && !isAlnum(b.buf[b.pos-1]) {
		b.pos--
	}
	for b.pos > b.start && isAlnum(b.buf[b.pos-1]) {
		b.pos--
	}
}

// RightWord moves the cursor right past the current run of
// non-alphanumerics, then past the following run of alphanumerics.
func (b *Buffer) RightWord() {
	for b.pos < b.length && !isAlnum(b.buf[b.pos]) {
		b.pos++
	}
	for b.pos < b.length && isAlnum(b.buf[b.pos]) {
		b.pos++
	}
}

// DeleteWord deletes from the start of the previous word to the
// cursor, returning the number of bytes removed.
func (b *Buffer) DeleteWord() int {
	old := b.pos
	b.LeftWord()
	n := old - b.pos
	if n > 0 {
		copy(b.buf[b.pos:b.length-n], b.buf[old:b.length])
		b.length -= n
		b.terminate()
	}
	return n
}

// DeleteToStart deletes from start to the cursor, returning the number
// of bytes removed.
func (b *Buffer) DeleteToStart() int {
	old := b.pos
	n := old - b.start
	if n > 0 {
		copy(b.buf[b.start:b.length-n], b.buf[old:b.length])
		b.length -= n
		b.pos = b.start
		b.terminate()
	}
	return n
}

// KillWordBefore deletes from the start of the previous word to the
// cursor, like DeleteWord, but returns the removed text so a kill ring
// can capture it.
func (b *Buffer) KillWordBefore() string {
	end := b.pos
	start := end
	for start > b.start && !isAlnum(b.buf[start-1]) {
		start--
	}
	for start > b.start && isAlnum(b.buf[start-1]) {
		start--
	}
	text := string(b.buf[start:end])
	if n := end - start; n > 0 {
		copy(b.buf[start:b.length-n], b.buf[end:b.length])
		b.length -= n
		b.pos = start
		b.terminate()
	}
	return text
}

// KillToStart deletes from start to the cursor, like DeleteToStart, but
// returns the removed text.
func (b *Buffer) KillToStart() string {
	text := string(b.buf[b.start:b.pos])
	if n := len(text); n > 0 {
		copy(b.buf[b.start:b.length-n], b.buf[b.pos:b.length])
		b.length -= n
		b.pos = b.start
		b.terminate()
	}
	return text
}

// KillToEnd deletes from the cursor to the end of the buffer, returning
// the removed text.
func (b *Buffer) KillToEnd() string {
	text := string(b.buf[b.pos:b.length])
	if n := len(text); n > 0 {
		b.length -= n
		b.terminate()
	}
	return text
}

// InsertString inserts each byte of s at the cursor in turn, as repeated
// InsertByte calls; used to splice in a kill-ring yank.
func (b *Buffer) InsertString(s string) {
	for i := 0; i < len(s); i++ {
		b.InsertByte(s[i])
	}
}

// CopyPrefix copies the first min(n, length) bytes into a new Buffer
// with the cursor placed at the end of the copy.
func (b *Buffer) CopyPrefix(n int) *Buffer {
	if n > b.length {
		n = b.length
	}
	nb := NewBuffer()
	nb.grow(n)
	copy(nb.buf, b.buf[:n])
	nb.length = n
	nb.pos = n
	nb.terminate()
	return nb
}

// Replace overwrites the buffer with s, growing it as needed, and
// places the cursor at the new end. start is preserved, clamped to the
// new length.
func (b *Buffer) Replace(s string) {
	b.length = 0
	b.grow(len(s))
	copy(b.buf, s)
	b.length = len(s)
	if b.start > b.length {
		b.start = b.length
	}
	b.pos = b.length
	b.terminate()
}

// Reset clears the buffer back to empty, dropping any continuation
// prefix.
func (b *Buffer) Reset() {
	b.length = 0
	b.pos = 0
	b.start = 0
	b.terminate()
}

// IsLastByteEscape reports whether the buffer ends in an odd number of
// trailing backslashes, i.e. whether the final byte is an unescaped
// backslash.
func (b *Buffer) IsLastByteEscape() bool {
	n := 0
	for i := b.length - 1; i >= b.start && b.buf[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// String returns the editable contents as a string.
func (b *Buffer) String() string { return string(b.Bytes()) }
