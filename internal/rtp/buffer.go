package rtp

import "bytes"

// Buffer is the aligned byte buffer of one symbol's (or a parity
// accumulator's) worth of subsymbol data. Go slices already give us
// reference semantics and bounds-checked indexing, so Buffer is a thin
// wrapper that adds the XOR-into and clone operations the coding algebra
// needs, rather than reproducing the C++ original's move-only ownership.
type Buffer struct {
	data []byte
}

// NewBuffer allocates a zeroed buffer of size bytes.
func NewBuffer(size uint32) Buffer {
	return Buffer{data: make([]byte, size)}
}

// NewBufferFromBytes wraps an existing slice without copying it.
func NewBufferFromBytes(b []byte) Buffer {
	return Buffer{data: b}
}

func (b Buffer) Len() int { return len(b.data) }

// Bytes exposes the underlying slice for IO calls.
func (b Buffer) Bytes() []byte { return b.data }

// XorInto XORs the first len(src) bytes of src into b, in place.
func (b Buffer) XorInto(src []byte) {
	xorBytes(b.data, src)
}

// Slice returns the off..off+length view into b's backing array.
func (b Buffer) Slice(off, length int) []byte {
	return b.data[off : off+length]
}

// Clone returns a new buffer with its own copy of the bytes.
func (b Buffer) Clone() Buffer {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return Buffer{data: out}
}

func (b Buffer) Equal(other Buffer) bool {
	return bytes.Equal(b.data, other.data)
}

func (b Buffer) IsZero() bool {
	for _, v := range b.data {
		if v != 0 {
			return false
		}
	}
	return true
}
