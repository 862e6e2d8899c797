package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.Uint8(0xAB)
	w.Bool(true)
	w.Uint16(0x1234)
	w.Uint32(0xDEADBEEF)
	w.Int32(-5)
	w.Int64(-1 << 40)
	w.Float64(3.5)
	w.String("hello")
	w.String("")
	w.NullableString("maybe", true)
	w.NullableString("", false)
	w.EntityID(0x0000000100000002)
	w.NullableEntityID(0)
	w.NullableEntityID(42)

	r := NewReader(w.Bytes())
	assert.Equal(t, uint8(0xAB), r.Uint8())
	assert.True(t, r.Bool())
	assert.Equal(t, uint16(0x1234), r.Uint16())
	assert.Equal(t, uint32(0xDEADBEEF), r.Uint32())
	assert.Equal(t, int32(-5), r.Int32())
	assert.Equal(t, int64(-1<<40), r.Int64())
	assert.Equal(t, 3.5, r.Float64())
	assert.Equal(t, "hello", r.String())
	assert.Equal(t, "", r.String())

	s, ok := r.NullableString()
	assert.True(t, ok)
	assert.Equal(t, "maybe", s)
	s, ok = r.NullableString()
	assert.False(t, ok)
	assert.Equal(t, "", s)

	assert.Equal(t, uint64(0x0000000100000002), r.EntityID())
	assert.Equal(t, uint64(0), r.NullableEntityID())
	assert.Equal(t, uint64(42), r.NullableEntityID())

	require.NoError(t, r.Err())
	assert.Equal(t, 0, r.Remaining())
}

func TestReaderShortData(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	r.Uint32()
	assert.ErrorIs(t, r.Err(), ErrShortData)

	// errors latch: further reads stay zero
	assert.Equal(t, uint8(0), r.Uint8())
	assert.Equal(t, "", r.String())
	assert.ErrorIs(t, r.Err(), ErrShortData)
}

func TestReaderNegativeStringLength(t *testing.T) {
	w := NewWriter()
	w.Int32(-1)
	r := NewReader(w.Bytes())
	assert.Equal(t, "", r.String())
	assert.ErrorIs(t, r.Err(), ErrShortData)
}

func TestWriterBackfill(t *testing.T) {
	w := NewWriter()
	w.Uint16(0xABCD)
	pos := w.Reserve32()
	w.String("content")
	w.BackfillLength(pos)

	r := NewReader(w.Bytes())
	assert.Equal(t, uint16(0xABCD), r.Uint16())
	length := r.Uint32()
	assert.Equal(t, uint32(4+len("content")), length)
	assert.Equal(t, "content", r.String())
	require.NoError(t, r.Err())
}

func TestReaderBytesCopy(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	r := NewReader(src)
	b := r.Bytes(4)
	b[0] = 9
	assert.Equal(t, byte(1), src[0], "Bytes must return a copy")
}
