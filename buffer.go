// SPDX-License-Identifier: Apache-2.0

package alloc

import "io"

// Buffer is a bytes.Buffer-like byte container that draws all backing
// memory through an optional Allocator, making it the canonical example
// of a container built on this package's capability contract. It
// implements io.Reader, io.Writer, io.WriterTo and io.ReaderFrom.
//
// Backed by a Pool, a Buffer keeps working in contexts where the process
// heap cannot be trusted, at the cost of the pool never reclaiming
// regions abandoned by growth.
type Buffer struct {
	a       Allocator
	buf     []byte // contents are buf[off:]
	off     int    // read position
	scratch []byte // reused by ReadFrom
}

// NewBuffer returns an empty buffer that allocates through a. A nil a
// uses the Go heap, per the package's fallback convention.
func NewBuffer(a Allocator) *Buffer {
	return &Buffer{a: a}
}

// Write appends p to the buffer. The returned error is always nil; growth
// falls back to the Go heap if the allocator is exhausted.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) > 0 {
		b.buf = Append(b.a, b.buf, p...)
	}
	return len(p), nil
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	if len(s) > 0 {
		b.buf = Append(b.a, b.buf, []byte(s)...)
	}
	return len(s), nil
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.buf = Append(b.a, b.buf, c)
	return nil
}

// Read copies up to len(p) unread bytes into p, advancing the read
// position. It returns io.EOF when the buffer is empty.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.off >= len(b.buf) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	return n, nil
}

// ReadByte returns the next unread byte, or io.EOF.
func (b *Buffer) ReadByte() (byte, error) {
	if b.off >= len(b.buf) {
		return 0, io.EOF
	}
	c := b.buf[b.off]
	b.off++
	return c, nil
}

// Next returns a view of the next n unread bytes, advancing the read
// position as if they had been read. The view is valid until the next
// modification of the buffer.
func (b *Buffer) Next(n int) []byte {
	if m := b.Len(); n > m {
		n = m
	}
	if n <= 0 {
		return nil
	}
	s := b.buf[b.off : b.off+n]
	b.off += n
	return s
}

// WriteTo writes the unread portion to w until drained or w errors.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	m := b.Len()
	if m == 0 {
		return 0, nil
	}
	n, err := w.Write(b.buf[b.off:])
	b.off += n
	if err != nil {
		return int64(n), err
	}
	if n != m {
		return int64(n), io.ErrShortWrite
	}
	b.Reset()
	return int64(n), nil
}

// ReadFrom reads from r until EOF, appending everything to the buffer.
// The intermediate read chunk is allocated once, through the buffer's
// allocator.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	const chunkSize = 4096
	if b.scratch == nil {
		b.scratch = MakeSlice[byte](b.a, chunkSize, chunkSize)
	}
	var total int64
	for {
		n, err := r.Read(b.scratch)
		if n > 0 {
			b.buf = Append(b.a, b.buf, b.scratch[:n]...)
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Bytes returns the unread portion of the buffer. The slice is valid
// until the next modification.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.off:]
}

// String returns the unread portion as a string.
func (b *Buffer) String() string {
	return string(b.buf[b.off:])
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return len(b.buf) - b.off }

// Cap returns the capacity of the backing region.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Reset empties the buffer, keeping the backing region for reuse.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// Truncate keeps the first n unread bytes and discards the rest. It
// panics if n is negative or beyond Len.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.Len() {
		panic("alloc: Buffer truncation out of range")
	}
	b.buf = b.buf[:b.off+n]
}
