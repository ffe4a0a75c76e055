// Package docutil holds small writer plumbing shared by cmd/docsplit: a
// flush-on-newline buffer and the line-prefixer built on top of it that
// gives every log line its "docsplit: " (or --log-prefix) prefix.
package docutil

import (
	"bytes"
	"io"
)

// WriteBuffer combines a byte buffer with a destination writer and flush
// policy. Example use:
//
//	var buf WriteBuffer
//	buf.To = os.Stderr
//	for _, line := range lines {
//		fmt.Fprintln(&buf, line)
//		buf.MaybeFlush() // TODO errcheck
//	}
//	buf.Flush() // TODO errcheck
//
// The flush methods are typically deferred when a function scope is
// available.
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy determines when a WriteBuffer should flush during its main
// write phase.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc is a convenience adaptor for FlushPolicy around a
// compatible anonymous function.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls the receiver function pointer.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush attempts to write all of the receiver buffer's contents,
// regardless of FlushPolicy. Call after the main write phase.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// MaybeFlush writes N bytes into To if FlushPolicy returns N > 0, then
// discards those N bytes from the buffer. If FlushPolicy is nil, it
// defaults to FlushLineChunks.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return err
	}
	return nil
}

// FlushLineChunks is a FlushPolicy(Func) that flushes as large a chunk as
// possible, through the last written newline byte.
func FlushLineChunks(b []byte) int {
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// ErrWriter wraps a writer, tracking its last error and refusing further
// writes once one has occurred.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer if Err is nil, retaining any returned
// error.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// PrefixWriter returns a writer that prepends prefix before every line
// written through it. The caller should Close it to flush any buffered
// partial final line.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	var p Prefixer
	p.Buffer.To = w
	p.Prefix = prefix
	return &p
}

// Prefixer writes prefix before every line written to an underlying
// writer. Create with PrefixWriter. Set Skip true for a one-shot "don't
// prefix the next line" (used when resuming output mid-line).
type Prefixer struct {
	Prefix string
	Skip   bool
	Buffer WriteBuffer
}

// Close flushes all internally buffered bytes to the underlying writer.
func (p *Prefixer) Close() error { return p.Buffer.Flush() }

// Flush flushes all internally buffered bytes to the underlying writer.
func (p *Prefixer) Flush() error { return p.Buffer.Flush() }

// Write writes bytes to the internal buffer, inserting Prefix before
// every line, then flushes all complete lines to the underlying writer.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		p.prefixIfLineStart(n == 0)
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			i++
			line, b = b[:i], b[i:]
		} else {
			b = nil
		}
		m, _ := p.Buffer.Write(line)
		n += m
	}
	return n, p.Buffer.MaybeFlush()
}

// WriteString writes a string to the internal buffer, inserting Prefix
// before every line, then flushes all complete lines to the underlying
// writer.
func (p *Prefixer) WriteString(s string) (n int, err error) {
	for len(s) > 0 {
		p.prefixIfLineStart(n == 0)
		line := s
		if i := bytes.IndexByte([]byte(s), '\n'); i >= 0 {
			i++
			line, s = s[:i], s[i:]
		} else {
			s = ""
		}
		m, _ := p.Buffer.WriteString(line)
		n += m
	}
	return n, p.Buffer.MaybeFlush()
}

// prefixIfLineStart adds the prefix when the buffer is empty or ends in a
// newline, i.e. when the next byte written starts a fresh line. first is
// true only on the initial iteration of the caller's write loop, where the
// buffer's trailing byte (not the freshly written one) determines whether
// a line is starting.
func (p *Prefixer) prefixIfLineStart(first bool) {
	if !first {
		p.addPrefix()
		return
	}
	if i := p.Buffer.Len() - 1; i < 0 || p.Buffer.Bytes()[i] == '\n' {
		p.addPrefix()
	}
}

func (p *Prefixer) addPrefix() {
	if p.Skip {
		p.Skip = false
	} else {
		p.Buffer.WriteString(p.Prefix)
	}
}
