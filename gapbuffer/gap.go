// Package gapbuffer implements the byte storage behind a document: a single slice with a
// movable gap at the edit point, so typing at the cursor is amortized O(1).
package gapbuffer

import (
	"errors"
	"io"
)

// ErrOutOfRange is returned when given position is out of range for the buffer.
var ErrOutOfRange = errors.New("index out of range")

const minGrow = 64

// Buffer is a gap buffer. The zero value is an empty buffer ready to use.
type Buffer struct {
	buf   []byte
	start int // gap start, is considered empty
	end   int // gap end, holds next byte counting from before the gap
}

// New returns a buffer holding a copy of s with the gap at the end.
func New(s string) *Buffer {
	b := &Buffer{}
	b.WriteString(s)
	return b
}

// Bytes returns a copy of the content without the gap.
func (b *Buffer) Bytes() []byte {
	p := make([]byte, 0, b.Len())
	p = append(p, b.buf[:b.start]...)
	return append(p, b.buf[b.end:]...)
}

// String returns the content as a string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Reset empties the buffer but keeps the allocated memory.
func (b *Buffer) Reset() {
	b.start = 0
	b.end = len(b.buf)
}

// ByteAt returns the byte at the given offset, ignoring and hiding the gap.
func (b *Buffer) ByteAt(offset int) (byte, error) {
	if offset < 0 {
		return 0, ErrOutOfRange
	}
	if offset >= b.Len() {
		return 0, io.EOF
	}
	if offset >= b.start {
		offset += b.gapLen()
	}
	return b.buf[offset], nil
}

func (b *Buffer) gapLen() int {
	return b.end - b.start
}

// Len returns the length of actual data.
func (b *Buffer) Len() int {
	return len(b.buf) - b.gapLen()
}

// Seek moves the gap to offset, clamped to [0, Len()].
func (b *Buffer) Seek(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > b.Len() {
		offset = b.Len()
	}

	switch {
	case offset < b.start: // move backwards
		n := b.start - offset
		copy(b.buf[b.end-n:b.end], b.buf[offset:b.start])
		b.start -= n
		b.end -= n
	case offset > b.start: // move forward
		n := offset - b.start
		copy(b.buf[b.start:b.start+n], b.buf[b.end:b.end+n])
		b.start += n
		b.end += n
	}
}

// Delete removes up to n bytes before the gap and returns how many were removed.
func (b *Buffer) Delete(n int) int {
	if n > b.start {
		n = b.start
	}
	if n < 0 {
		return 0
	}
	b.start -= n
	return n
}

// grow makes room for at least n more bytes in the gap.
func (b *Buffer) grow(n int) {
	if b.gapLen() >= n {
		return
	}
	size := 2*len(b.buf) + n
	if size < minGrow {
		size = minGrow
	}
	nb := make([]byte, size)
	copy(nb, b.buf[:b.start])
	tail := len(b.buf) - b.end
	copy(nb[size-tail:], b.buf[b.end:])
	b.end = size - tail
	b.buf = nb
}

// Write inserts p at the gap position and moves the gap past it.
//
// It will never return any other error than nil.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.grow(len(p))
	copy(b.buf[b.start:], p)
	b.start += len(p)
	return len(p), nil
}

// WriteString is Write for strings.
func (b *Buffer) WriteString(s string) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	b.grow(len(s))
	copy(b.buf[b.start:], s)
	b.start += len(s)
	return len(s), nil
}

// ReadAt fills p with bytes starting at offset, ignoring the gap. It returns io.EOF when
// fewer than len(p) bytes were available.
func (b *Buffer) ReadAt(p []byte, offset int) (n int, err error) {
	if offset < 0 {
		return 0, ErrOutOfRange
	}
	if offset >= b.Len() {
		return 0, io.EOF
	}

	if offset < b.start {
		n = copy(p, b.buf[offset:b.start])
		offset = b.start
	}
	if n < len(p) {
		n += copy(p[n:], b.buf[b.end+offset-b.start:])
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
