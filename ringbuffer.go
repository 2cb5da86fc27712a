// Package fifobuffer implements a fixed-capacity byte ring buffer for
// little-endian 8, 16 and 32 bit values.
package fifobuffer

import (
	"encoding/binary"
	"fmt"
)

const (
	// DefaultCapacity is the capacity used by NewDefault.
	DefaultCapacity = 32

	Uint16Size = 2
	Uint32Size = 4
)

// Buffer is a bounded FIFO of bytes stored in a circular array.
// Multi-byte values are stored little-endian.
//
// Buffer performs no locking. It must be used from a single goroutine
// or guarded by the caller.
type Buffer struct {
	storage []byte
	read    int // index of the oldest unread byte
	write   int // index of the next byte to be written
	free    int // number of unoccupied slots
}

// New creates a buffer holding up to capacity bytes.
// The backing array is allocated once and never grows.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		panic("capacity must be > 0")
	}
	return NewWithStorage(make([]byte, capacity))
}

// NewDefault creates a buffer of DefaultCapacity bytes.
func NewDefault() *Buffer {
	return New(DefaultCapacity)
}

// NewWithStorage creates a buffer on top of the caller supplied storage,
// e.g. a slice of a statically declared array. The storage is zeroed and
// owned by the buffer from now on.
func NewWithStorage(storage []byte) *Buffer {
	if len(storage) == 0 {
		panic("capacity must be > 0")
	}
	b := &Buffer{storage: storage}
	b.Reset()
	return b
}

// Reset empties the buffer and zeroes the storage.
func (b *Buffer) Reset() {
	clear(b.storage)
	b.read = 0
	b.write = 0
	b.free = len(b.storage)
}

// PutByte appends v. Returns false if the buffer is full.
func (b *Buffer) PutByte(v byte) bool {
	if b.free == 0 {
		return false
	}
	b.storage[b.write] = v
	b.write = b.advance(b.write, 1)
	b.free--
	return true
}

// GetByte removes the oldest byte.
// Returns (0, false) if the buffer is empty.
func (b *Buffer) GetByte() (byte, bool) {
	if b.free == len(b.storage) {
		return 0, false
	}
	v := b.storage[b.read]
	b.read = b.advance(b.read, 1)
	b.free++
	return v, true
}

// PutUint16 appends v low byte first.
// Returns false if fewer than 2 bytes are free.
func (b *Buffer) PutUint16(v uint16) bool {
	var p [Uint16Size]byte
	binary.LittleEndian.PutUint16(p[:], v)
	return b.put(p[:])
}

// GetUint16 removes two bytes and decodes them as a little-endian uint16.
// Returns (0, false) if fewer than 2 bytes are stored.
func (b *Buffer) GetUint16() (uint16, bool) {
	var p [Uint16Size]byte
	if !b.get(p[:]) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(p[:]), true
}

// PutUint32 appends v least significant byte first.
// Returns false if fewer than 4 bytes are free.
func (b *Buffer) PutUint32(v uint32) bool {
	var p [Uint32Size]byte
	binary.LittleEndian.PutUint32(p[:], v)
	return b.put(p[:])
}

// GetUint32 removes four bytes and decodes them as a little-endian uint32.
// Returns (0, false) if fewer than 4 bytes are stored.
func (b *Buffer) GetUint32() (uint32, bool) {
	var p [Uint32Size]byte
	if !b.get(p[:]) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(p[:]), true
}

// put writes all of p or nothing.
func (b *Buffer) put(p []byte) bool {
	n := len(p)
	if b.free < n {
		return false
	}
	// first segment runs up to the end of storage, the rest wraps to 0
	k := copy(b.storage[b.write:], p)
	copy(b.storage, p[k:])
	b.write = b.advance(b.write, n)
	b.free -= n
	return true
}

// get consumes exactly len(p) bytes into p, or nothing.
func (b *Buffer) get(p []byte) bool {
	n := len(p)
	if len(b.storage)-b.free < n {
		return false
	}
	b.peek(p)
	b.read = b.advance(b.read, n)
	b.free += n
	return true
}

// peek copies len(p) bytes starting at the read cursor.
// len(p) must not exceed Len().
func (b *Buffer) peek(p []byte) {
	end := b.read + len(p)
	if end <= len(b.storage) {
		copy(p, b.storage[b.read:end])
		return
	}
	k := copy(p, b.storage[b.read:])
	copy(p[k:], b.storage[:len(p)-k])
}

func (b *Buffer) advance(pos, n int) int {
	return (pos + n) % len(b.storage)
}

// Len returns the number of stored bytes.
func (b *Buffer) Len() int {
	return len(b.storage) - b.free
}

// Free returns the number of bytes that can still be put.
func (b *Buffer) Free() int {
	return b.free
}

// Cap returns the fixed buffer capacity.
func (b *Buffer) Cap() int {
	return len(b.storage)
}

func (b *Buffer) Empty() bool {
	return b.free == len(b.storage)
}

func (b *Buffer) Full() bool {
	return b.free == 0
}

// Bytes returns a copy of the stored bytes, oldest first.
// The buffer is not modified.
func (b *Buffer) Bytes() []byte {
	p := make([]byte, b.Len())
	b.peek(p)
	return p
}

// String is meant for debugging only.
func (b *Buffer) String() string {
	return fmt.Sprintf("fifobuffer{read=%d write=%d free=%d/%d data=[% X]}",
		b.read, b.write, b.free, len(b.storage), b.Bytes())
}
