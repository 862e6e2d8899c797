// Package codec implements the ZLIB (RFC 1950) wrapper used by the save
// payload: two-byte header, raw deflate body, big-endian Adler-32 trailer.
//
// The header handling is stricter than the stdlib wrapper on write (the
// FLG byte must carry the requested compression level) and looser on read:
// production saves exist with wrong Adler-32 trailers, so a checksum
// mismatch is logged and tolerated instead of failing the load.
package codec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/adler32"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/bannerkit/twsave/log"
)

var (
	// ErrEmptyInput is returned when Inflate is given no bytes at all.
	ErrEmptyInput = errors.New("empty compressed input")

	// ErrCorruptHeader is returned when the two-byte ZLIB header fails
	// the method or FCHECK validation.
	ErrCorruptHeader = errors.New("corrupt zlib header")

	// ErrDeflateStream wraps failures inside the deflate body.
	ErrDeflateStream = errors.New("deflate stream error")
)

// Level selects the deflate effort on save.
type Level int

const (
	NoCompression Level = iota
	Fastest
	Optimal
	SmallestSize
)

func (l Level) String() string {
	switch l {
	case NoCompression:
		return "NoCompression"
	case Fastest:
		return "Fastest"
	case Optimal:
		return "Optimal"
	case SmallestSize:
		return "SmallestSize"
	default:
		return "Unknown"
	}
}

// flateLevel maps a Level to the flate package's numeric level.
func (l Level) flateLevel() int {
	switch l {
	case NoCompression:
		return flate.NoCompression
	case Fastest:
		return flate.BestSpeed
	case SmallestSize:
		return flate.BestCompression
	default:
		return flate.DefaultCompression
	}
}

// flgBits returns the two FLEVEL bits stored in bits 6-7 of the FLG byte.
func (l Level) flgBits() byte {
	switch l {
	case NoCompression:
		return 0
	case Fastest:
		return 1
	case Optimal:
		return 2
	default:
		return 3
	}
}

const zlibCMF = 0x78 // deflate, 32K window

// Inflate decompresses a ZLIB-wrapped deflate stream. The two-byte header
// is validated strictly; the Adler-32 trailer and the announced size (when
// expectedSize > 0) are verified but mismatches only log warnings, since
// some production saves ship incorrect trailers.
func Inflate(ctx context.Context, compressed []byte, expectedSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(compressed) == 0 {
		return nil, ErrEmptyInput
	}
	if len(compressed) < 2 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptHeader, len(compressed))
	}

	cmf, flg := compressed[0], compressed[1]
	if cmf&0x0F != 8 {
		return nil, fmt.Errorf("%w: compression method %d", ErrCorruptHeader, cmf&0x0F)
	}
	if (uint32(cmf)*256+uint32(flg))%31 != 0 {
		return nil, fmt.Errorf("%w: FCHECK failed", ErrCorruptHeader)
	}

	fr := flate.NewReader(bytes.NewReader(compressed[2:]))
	defer fr.Close()
	data, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeflateStream, err)
	}

	if len(compressed) >= 6 {
		stored := uint32(compressed[len(compressed)-4])<<24 |
			uint32(compressed[len(compressed)-3])<<16 |
			uint32(compressed[len(compressed)-2])<<8 |
			uint32(compressed[len(compressed)-1])
		computed := adler32.Checksum(data)
		if stored != computed {
			log.Warn("adler-32 mismatch in compressed payload",
				log.F("stored", stored), log.F("computed", computed))
		}
	}

	if expectedSize > 0 && len(data) != expectedSize {
		log.Warn("decompressed size differs from announced size",
			log.F("announced", expectedSize), log.F("actual", len(data)))
	}

	return data, nil
}

// Deflate compresses data into a ZLIB stream at the given level. The FLG
// byte carries the level in bits 6-7 with FCHECK padding so that
// (CMF*256+FLG) mod 31 == 0, and the trailer is the big-endian Adler-32
// of the input.
func Deflate(ctx context.Context, data []byte, level Level) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flg := level.flgBits() << 6
	rem := (uint32(zlibCMF)*256 + uint32(flg)) % 31
	if rem != 0 {
		flg += byte(31 - rem)
	}

	var buf bytes.Buffer
	buf.WriteByte(zlibCMF)
	buf.WriteByte(flg)

	fw, err := flate.NewWriter(&buf, level.flateLevel())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeflateStream, err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeflateStream, err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeflateStream, err)
	}

	sum := adler32.Checksum(data)
	buf.WriteByte(byte(sum >> 24))
	buf.WriteByte(byte(sum >> 16))
	buf.WriteByte(byte(sum >> 8))
	buf.WriteByte(byte(sum))

	return buf.Bytes(), nil
}

// ValidHeader reports whether the first two bytes of a compressed stream
// form a valid ZLIB header. Used by the post-write integrity check.
func ValidHeader(compressed []byte) bool {
	if len(compressed) < 2 {
		return false
	}
	if compressed[0]&0x0F != 8 {
		return false
	}
	return (uint32(compressed[0])*256+uint32(compressed[1]))%31 == 0
}
