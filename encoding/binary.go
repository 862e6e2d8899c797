// Package encoding provides the little-endian wire primitives shared by
// the frame and segment codecs: a bounds-checked cursor reader and an
// append-only writer with length backfill.
package encoding

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrShortData is returned when a read would pass the end of the buffer.
var ErrShortData = errors.New("unexpected end of data")

// Reader is a cursor over a byte slice. The first failed read latches the
// error; every later read returns zero values, so decoders can read a
// whole record and check Err once.
type Reader struct {
	data []byte
	off  int
	err  error
}

// NewReader creates a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the latched error, if any read failed.
func (r *Reader) Err() error {
	return r.err
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = ErrShortData
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Bool reads one byte as a boolean (non-zero is true).
func (r *Reader) Bool() bool {
	return r.Uint8() != 0
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() int32 {
	return int32(r.Uint32())
}

// Int64 reads a little-endian int64.
func (r *Reader) Int64() int64 {
	return int64(r.Uint64())
}

// Float64 reads a little-endian IEEE 754 double.
func (r *Reader) Float64() float64 {
	return math.Float64frombits(r.Uint64())
}

// Bytes reads n bytes and returns a copy.
func (r *Reader) Bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// String reads an int32 length prefix followed by that many UTF-8 bytes.
// A zero length yields the empty string; negative lengths latch an error.
func (r *Reader) String() string {
	n := r.Int32()
	if r.err != nil {
		return ""
	}
	if n < 0 {
		r.err = ErrShortData
		return ""
	}
	if n == 0 {
		return ""
	}
	b := r.take(int(n))
	if b == nil {
		return ""
	}
	return string(b)
}

// NullableString reads a one-byte present flag, then a string if set.
func (r *Reader) NullableString() (string, bool) {
	if !r.Bool() {
		return "", false
	}
	return r.String(), r.err == nil
}

// Writer builds a little-endian byte stream. Positions returned by
// Reserve32 can be backfilled once the final length is known.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Uint8 appends one byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Bool appends a one-byte boolean.
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// Uint16 appends a little-endian uint16.
func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Uint32 appends a little-endian uint32.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Uint64 appends a little-endian uint64.
func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// Int32 appends a little-endian int32.
func (w *Writer) Int32(v int32) {
	w.Uint32(uint32(v))
}

// Int64 appends a little-endian int64.
func (w *Writer) Int64(v int64) {
	w.Uint64(uint64(v))
}

// Float64 appends a little-endian IEEE 754 double.
func (w *Writer) Float64(v float64) {
	w.Uint64(math.Float64bits(v))
}

// Raw appends bytes verbatim.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// String appends an int32 length prefix followed by the UTF-8 bytes.
func (w *Writer) String(s string) {
	w.Int32(int32(len(s)))
	w.buf = append(w.buf, s...)
}

// NullableString appends a one-byte present flag, then the string if set.
func (w *Writer) NullableString(s string, present bool) {
	w.Bool(present)
	if present {
		w.String(s)
	}
}

// Reserve32 appends a four-byte placeholder and returns its position for
// Backfill32.
func (w *Writer) Reserve32() int {
	pos := len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)
	return pos
}

// Backfill32 writes v at a position previously returned by Reserve32.
func (w *Writer) Backfill32(pos int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[pos:], v)
}

// BackfillLength writes the number of bytes appended since the reserved
// position, the segment-length discipline used on write.
func (w *Writer) BackfillLength(pos int) {
	w.Backfill32(pos, uint32(len(w.buf)-pos-4))
}
