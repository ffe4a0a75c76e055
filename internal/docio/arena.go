// Package docio holds small scan/copy plumbing used by the debug
// summarizer (internal/docrender) to build truncated, whitespace-collapsed
// previews of atom text without allocating a new string per atom.
package docio

// PreviewArena accumulates per-atom preview text in one shared backing
// buffer, sealed into one token per atom by Push. It implements io.Writer
// so a word scanner can be copied straight into it.
type PreviewArena struct {
	buf  []byte
	ends []int // one past-the-end buffer offset per sealed token
}

// Write appends p to the token currently being built, returning len(p) and
// a nil error.
func (a *PreviewArena) Write(p []byte) (int, error) {
	a.buf = append(a.buf, p...)
	return len(p), nil
}

// WriteString appends s to the token currently being built, returning
// len(s) and a nil error.
func (a *PreviewArena) WriteString(s string) (int, error) {
	a.buf = append(a.buf, s...)
	return len(s), nil
}

// Push seals any bytes written since the prior Push as the next token. A
// Push with no intervening writes seals an empty token, holding the
// one-token-per-atom correspondence for atoms with no preview content.
func (a *PreviewArena) Push() {
	a.ends = append(a.ends, len(a.buf))
}

// Len returns the number of sealed tokens.
func (a *PreviewArena) Len() int { return len(a.ends) }

// Text returns a string copy of the i-th sealed token. Panics if i is out
// of range.
func (a *PreviewArena) Text(i int) string {
	start := 0
	if i > 0 {
		start = a.ends[i-1]
	}
	return string(a.buf[start:a.ends[i]])
}

// Reset discards all tokens and buffered bytes, retaining capacity for
// reuse across documents.
func (a *PreviewArena) Reset() {
	a.buf = a.buf[:0]
	a.ends = a.ends[:0]
}
