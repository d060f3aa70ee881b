// Package scratch is a reusable text buffer for strings rebuilt every frame
// (stats overlays, debug labels). It grows during the first frames and then
// stops allocating. Single-threaded.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Buffer accumulates lines of text in one byte slice.
type Buffer struct {
	buf  []byte
	ends []int // end offset of every finished line
}

// New returns a buffer with room for capacity bytes.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity), ends: make([]int, 0, 32)}
}

// Reset clears the buffer length without freeing memory.
// Call this once per frame, before building.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.ends = b.ends[:0]
}

func (b *Buffer) Cap() int { return cap(b.buf) }
func (b *Buffer) Len() int { return len(b.buf) }

// ----- Append primitives (chainable) -----

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

func (b *Buffer) R(r rune) *Buffer {
	b.buf = utf8.AppendRune(b.buf, r)
	return b
}

// I appends a base-10 integer.
func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

// F appends a float with prec digits after the decimal point.
// Example: F(3.14159, 2) -> "3.14"
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

func (b *Buffer) Bool(v bool) *Buffer {
	b.buf = strconv.AppendBool(b.buf, v)
	return b
}

// Pad appends n copies of c.
func (b *Buffer) Pad(n int, c byte) *Buffer {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, c)
	}
	return b
}

// End finishes the current line.
func (b *Buffer) End() *Buffer {
	b.ends = append(b.ends, len(b.buf))
	return b
}

// Lines reports how many lines were finished with End.
func (b *Buffer) Lines() int { return len(b.ends) }

// Line returns a zero-copy view of line i. The view is valid until the next
// Reset or append.
func (b *Buffer) Line(i int) string {
	start := 0
	if i > 0 {
		start = b.ends[i-1]
	}
	return view(b.buf[start:b.ends[i]])
}

// String returns a zero-copy view of everything, lines joined by '\n'
// only if the caller appended them.
func (b *Buffer) String() string { return view(b.buf) }

func view(p []byte) string {
	if len(p) == 0 {
		return ""
	}
	return unsafe.String(&p[0], len(p))
}
