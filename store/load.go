package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/codec"
	"github.com/bannerkit/twsave/segments"
)

// ErrFileNotFound is returned when the source path does not exist.
var ErrFileNotFound = errors.New("save file not found")

// LoadOptions control how a save is read.
type LoadOptions struct {
	// Permissive makes the segment walker log and skip undecodable
	// segments instead of failing the load.
	Permissive bool

	// MetadataOnly stops after the frame and metadata block; the payload
	// is never decompressed.
	MetadataOnly bool

	// SkipValidation leaves the Report field nil.
	SkipValidation bool

	// KeepRawData retains the decompressed payload on the SaveFile.
	KeepRawData bool
}

// DefaultLoadOptions returns the standard load behavior: strict decoding
// with validation.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// Load reads and decodes a save file from disk.
func Load(ctx context.Context, path string, opts LoadOptions) (*twsave.SaveFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return LoadBytes(ctx, data, opts)
}

// LoadBytes decodes a save from an in-memory file image.
func LoadBytes(ctx context.Context, data []byte, opts LoadOptions) (*twsave.SaveFile, error) {
	frame, err := ReadFrame(data)
	if err != nil {
		return nil, err
	}

	md, err := twsave.ParseMetadata(frame.MetadataRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}

	save := &twsave.SaveFile{
		Header:   frame.Header,
		Modules:  frame.Modules,
		Metadata: md,
	}
	save.Header.CompressedSize = len(frame.Compressed)

	if opts.MetadataOnly {
		return save, nil
	}

	payload, err := codec.Inflate(ctx, frame.Compressed, 0)
	if err != nil {
		return nil, err
	}
	save.Header.UncompressedSize = len(payload)

	if err := segments.DecodePayload(ctx, payload, save, opts.Permissive); err != nil {
		return nil, err
	}
	if opts.KeepRawData {
		save.RawPayload = payload
	}

	save.Resolve()
	if !opts.SkipValidation {
		save.Report = twsave.Validate(save)
	}
	return save, nil
}

// ReadMetadata is the fast path used by save browsers: it decodes the
// frame and metadata block only, without touching the compressed payload.
func ReadMetadata(ctx context.Context, path string) (*twsave.SaveFile, error) {
	return Load(ctx, path, LoadOptions{MetadataOnly: true, SkipValidation: true})
}
