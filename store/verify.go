package store

import (
	"fmt"
	"os"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/codec"
	"github.com/bannerkit/twsave/encoding"
)

// VerifyBytes runs the structural integrity check over a complete file
// image: magic, version range, game-version string length, length fields
// consistent with the file size, and a valid ZLIB header on the payload.
// It does not decompress.
func VerifyBytes(data []byte) error {
	if len(data) < 4 || string(data[:4]) != twsave.Magic {
		return fmt.Errorf("%w: bad magic", ErrMalformedFrame)
	}
	r := encoding.NewReader(data[4:])

	version := r.Int32()
	if r.Err() == nil && (version < twsave.MinFormatVersion || version > twsave.MaxFormatVersion) {
		return fmt.Errorf("%w: version %d out of range", ErrMalformedFrame, version)
	}

	gvLen := r.Int32()
	if r.Err() == nil && (gvLen < 1 || gvLen > 100) {
		return fmt.Errorf("%w: game-version length %d outside [1, 100]", ErrMalformedFrame, gvLen)
	}
	r.Bytes(int(gvLen))

	moduleCount := r.Int32()
	if r.Err() == nil && moduleCount < 0 {
		return fmt.Errorf("%w: negative module count", ErrMalformedFrame)
	}
	for i := int32(0); i < moduleCount && r.Err() == nil; i++ {
		_ = r.String()
		_ = r.String()
		r.Bool()
	}

	metaLen := r.Int32()
	if r.Err() == nil && metaLen < 0 {
		return fmt.Errorf("%w: negative metadata length", ErrMalformedFrame)
	}
	r.Bytes(int(metaLen))

	compLen := r.Int32()
	if r.Err() == nil && compLen < 0 {
		return fmt.Errorf("%w: negative payload length", ErrMalformedFrame)
	}
	compressed := r.Bytes(int(compLen))

	if r.Err() != nil {
		return fmt.Errorf("%w: %v", ErrMalformedFrame, r.Err())
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformedFrame, r.Remaining())
	}
	if compLen > 0 && !codec.ValidHeader(compressed) {
		return fmt.Errorf("%w: invalid zlib header", ErrMalformedFrame)
	}
	return nil
}

// VerifyFile runs VerifyBytes over a file on disk.
func VerifyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return VerifyBytes(data)
}
