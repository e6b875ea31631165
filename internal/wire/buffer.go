/*
 * Copyright 2024 The Colnative Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxStringLen is the largest string length this codec accepts. Lengths
// above this are treated as malformed input rather than an attempt to
// allocate an unbounded buffer.
const MaxStringLen = 0x00FFFFFF

// Reader is a cursor over an in-memory byte slice. It never blocks and
// never mutates the underlying slice; every Read* method either advances
// the cursor and returns a value, or returns ErrNeedMoreData/leaves the
// cursor untouched on failure so the caller can retry once more bytes
// arrive.
//
// Clone and Advance support speculative parsing: parse against a clone,
// then advance the original by the clone's position once the parse fully
// succeeds. The decoder in package proto gets the same effect by parsing
// each frame from a fresh Reader over its buffered bytes.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for reading starting at position 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Clone returns an independent copy of r positioned at the same offset.
// Advancing the clone never affects r.
func (r *Reader) Clone() *Reader {
	return &Reader{buf: r.buf, pos: r.pos}
}

// Pos returns the current cursor offset into the original buffer.
func (r *Reader) Pos() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Bytes returns the unread suffix without advancing the cursor.
func (r *Reader) Bytes() []byte { return r.buf[r.pos:] }

// Advance moves the cursor forward by n bytes, used by callers that
// commit a successful speculative parse performed on a Clone.
func (r *Reader) Advance(n int) { r.pos += n }

func (r *Reader) readByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, ErrNeedMoreData
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

func (r *Reader) readN(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrNeedMoreData
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Uvarint decodes a VarInt64 from the cursor, advancing it on success.
func (r *Reader) Uvarint() (uint64, error) {
	v, n, err := Uvarint(r.buf[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// String reads a VarInt64-length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	n, err := r.Uvarint()
	if err != nil {
		return "", err
	}
	if n > MaxStringLen {
		return "", fmt.Errorf("wire: string length %d exceeds maximum %d", n, MaxStringLen)
	}
	// peek the length prefix's worth of bytes before consuming: if the
	// payload isn't fully buffered yet, roll back so the caller can
	// retry the whole read once more bytes arrive.
	save := r.pos
	b, err := r.readN(int(n))
	if err != nil {
		r.pos = save
		return "", err
	}
	return string(b), nil
}

// FixedString reads exactly n bytes and strips everything from the first
// embedded NUL onward, matching the server's padding convention.
func (r *Reader) FixedString(n int) (string, error) {
	b, err := r.readN(n)
	if err != nil {
		return "", err
	}
	if i := indexZero(b); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

func indexZero(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}

// Uint8 reads a single unsigned byte.
func (r *Reader) Uint8() (uint8, error) { return r.readByte() }

// Int8 reads a single signed byte.
func (r *Reader) Int8() (int8, error) {
	b, err := r.readByte()
	return int8(b), err
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Int16 reads a little-endian int16.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.readN(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Float32 reads a little-endian IEEE-754 single-precision float.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// Float64 reads a little-endian IEEE-754 double-precision float.
func (r *Reader) Float64() (float64, error) {
	v, err := r.Uint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadRaw reads n raw bytes.
func (r *Reader) ReadRaw(n int) ([]byte, error) { return r.readN(n) }

// Writer accumulates the outbound byte stream for a single frame. It never
// fails: all writes are appends to a growable slice.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Uvarint appends the VarInt64 encoding of v.
func (w *Writer) Uvarint(v uint64) { w.buf = PutUvarint(w.buf, v) }

// String appends a VarInt64 length prefix followed by the raw UTF-8 bytes
// of s.
func (w *Writer) String(s string) {
	w.Uvarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// FixedString appends up to n bytes of s (truncated byte-wise, which may
// split a multi-byte code point) zero-padded to exactly n bytes.
func (w *Writer) FixedString(s string, n int) {
	b := []byte(s)
	if len(b) > n {
		b = b[:n]
	}
	start := len(w.buf)
	w.buf = append(w.buf, make([]byte, n)...)
	copy(w.buf[start:], b)
}

// Uint8 appends a single unsigned byte.
func (w *Writer) Uint8(v uint8) { w.buf = append(w.buf, v) }

// Int8 appends a single signed byte.
func (w *Writer) Int8(v int8) { w.buf = append(w.buf, byte(v)) }

// Uint16 appends a little-endian uint16.
func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Int16 appends a little-endian int16.
func (w *Writer) Int16(v int16) { w.Uint16(uint16(v)) }

// Uint32 appends a little-endian uint32.
func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Int32 appends a little-endian int32.
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

// Uint64 appends a little-endian uint64.
func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Int64 appends a little-endian int64.
func (w *Writer) Int64(v int64) { w.Uint64(uint64(v)) }

// Float32 appends a little-endian IEEE-754 single-precision float.
func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

// Float64 appends a little-endian IEEE-754 double-precision float.
func (w *Writer) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }
