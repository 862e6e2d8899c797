// Package store reads and writes whole save files: the plaintext outer
// frame, load/save orchestration over the codec and segment layers, the
// post-write integrity check, and the atomic swap that makes a save
// durable.
package store

import (
	"errors"
	"fmt"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/encoding"
)

// ErrMalformedFrame is returned when the outer frame fails validation:
// bad magic, version out of range, or a negative or oversized length
// prefix.
var ErrMalformedFrame = errors.New("malformed save frame")

// Frame is the decoded outer layout of a save file. The compressed
// payload is carried opaque; the codec and segments packages interpret
// it.
type Frame struct {
	Header      twsave.Header
	Modules     []twsave.Module
	MetadataRaw []byte
	Compressed  []byte
}

// ReadFrame decodes the outer frame from a complete file image. It stops
// at the first malformed length and never reads past the buffer.
func ReadFrame(data []byte) (*Frame, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedFrame, len(data))
	}
	if string(data[:4]) != twsave.Magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrMalformedFrame, data[:4])
	}

	r := encoding.NewReader(data[4:])
	f := &Frame{}

	f.Header.Version = r.Int32()
	if r.Err() == nil && (f.Header.Version < twsave.MinFormatVersion || f.Header.Version > twsave.MaxFormatVersion) {
		return nil, fmt.Errorf("%w: version %d outside [%d, %d]",
			ErrMalformedFrame, f.Header.Version, twsave.MinFormatVersion, twsave.MaxFormatVersion)
	}

	f.Header.GameVersion = r.String()

	moduleCount := r.Int32()
	if r.Err() == nil && moduleCount < 0 {
		return nil, fmt.Errorf("%w: negative module count %d", ErrMalformedFrame, moduleCount)
	}
	for i := int32(0); i < moduleCount && r.Err() == nil; i++ {
		var m twsave.Module
		m.ID = r.String()
		m.Version = r.String()
		m.Official = r.Bool()
		f.Modules = append(f.Modules, m)
	}

	metaLen := r.Int32()
	if r.Err() == nil && metaLen < 0 {
		return nil, fmt.Errorf("%w: negative metadata length %d", ErrMalformedFrame, metaLen)
	}
	f.MetadataRaw = r.Bytes(int(metaLen))

	compLen := r.Int32()
	if r.Err() == nil && compLen < 0 {
		return nil, fmt.Errorf("%w: negative payload length %d", ErrMalformedFrame, compLen)
	}
	f.Compressed = r.Bytes(int(compLen))

	if r.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, r.Err())
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedFrame, r.Remaining())
	}
	return f, nil
}

// Encode serializes the frame: magic, version, game-version string,
// module list, metadata block, compressed payload. No trailing bytes.
func (f *Frame) Encode() []byte {
	w := encoding.NewWriter()
	w.Raw([]byte(twsave.Magic))
	w.Int32(f.Header.Version)
	w.String(f.Header.GameVersion)
	w.Int32(int32(len(f.Modules)))
	for _, m := range f.Modules {
		w.String(m.ID)
		w.String(m.Version)
		w.Bool(m.Official)
	}
	w.Int32(int32(len(f.MetadataRaw)))
	w.Raw(f.MetadataRaw)
	w.Int32(int32(len(f.Compressed)))
	w.Raw(f.Compressed)
	return w.Bytes()
}
