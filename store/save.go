package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bannerkit/twsave"
	"github.com/bannerkit/twsave/codec"
	"github.com/bannerkit/twsave/log"
	"github.com/bannerkit/twsave/segments"
)

// Snapshotter captures a pre-edit snapshot of a save before it is
// replaced. The backup package's Engine implements it.
type Snapshotter interface {
	PreEditSnapshot(ctx context.Context, sourcePath string) error
}

// ErrSaveWrite is returned when the post-write integrity check or the
// atomic swap fails. The target path is left holding either its prior
// contents or the new contents, never a partial write.
var ErrSaveWrite = errors.New("save write failed")

// ErrValidationFailed is returned when ValidateBeforeSave finds errors.
var ErrValidationFailed = errors.New("save refused: validation reported errors")

// SaveOptions control how a save is written.
type SaveOptions struct {
	// Backup, when set together with CreateBackup, snapshots the target
	// file with a pre-edit trigger before it is replaced.
	Backup       Snapshotter
	CreateBackup bool

	// ValidateBeforeSave refuses to write when validation reports any
	// error-severity finding.
	ValidateBeforeSave bool

	// CompressionLevel selects the deflate effort for the payload.
	CompressionLevel codec.Level

	// VerifyAfterSave re-opens the temp file and runs the integrity
	// check before the swap.
	VerifyAfterSave bool
}

// DefaultSaveOptions returns the standard save behavior: optimal
// compression, verified before the swap.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{
		CompressionLevel: codec.Optimal,
		VerifyAfterSave:  true,
	}
}

// Encode serializes a SaveFile to a complete file image without touching
// the filesystem.
func Encode(ctx context.Context, save *twsave.SaveFile, level codec.Level) ([]byte, error) {
	payload, err := segments.EncodePayload(ctx, save)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Deflate(ctx, payload, level)
	if err != nil {
		return nil, err
	}

	metaRaw, err := save.Metadata.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: metadata: %v", ErrSaveWrite, err)
	}

	frame := &Frame{
		Header:      save.Header,
		Modules:     save.Modules,
		MetadataRaw: metaRaw,
		Compressed:  compressed,
	}
	return frame.Encode(), nil
}

// Save writes a SaveFile to path atomically: serialize, deflate, write to
// path+".tmp", verify, swap in with a ".bak" of the prior contents, then
// drop the ".bak". Any failure after the swap begins restores the prior
// contents. A cancelled write deletes its temp file.
func Save(ctx context.Context, save *twsave.SaveFile, path string, opts SaveOptions) error {
	if opts.ValidateBeforeSave {
		if report := twsave.Validate(save); report.HasErrors() {
			return fmt.Errorf("%w: %d errors", ErrValidationFailed, len(report.Errors))
		}
	}

	if opts.CreateBackup && opts.Backup != nil {
		if _, err := os.Stat(path); err == nil {
			if err := opts.Backup.PreEditSnapshot(ctx, path); err != nil {
				return fmt.Errorf("pre-edit snapshot: %w", err)
			}
		}
	}

	data, err := Encode(ctx, save, opts.CompressionLevel)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveWrite, err)
	}

	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if opts.VerifyAfterSave {
		if err := VerifyFile(tmpPath); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("%w: integrity check: %v", ErrSaveWrite, err)
		}
	}

	if err := swapIn(ctx, tmpPath, path); err != nil {
		return err
	}

	save.ClearDirty()
	return nil
}

// swapIn replaces path with tmpPath via a ".bak" of the prior contents.
// The renames stay on one filesystem, so each step is atomic; on failure
// the ".bak" is restored and the temp file removed.
func swapIn(ctx context.Context, tmpPath, path string) error {
	bakPath := path + ".bak"
	hadPrior := false

	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if _, err := os.Stat(path); err == nil {
		hadPrior = true
		if err := os.Rename(path, bakPath); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("%w: %v", ErrSaveWrite, err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if hadPrior {
			if rerr := os.Rename(bakPath, path); rerr != nil {
				log.Error("failed to restore prior save after swap failure",
					log.F("path", path), log.F("err", rerr))
			}
		}
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %v", ErrSaveWrite, err)
	}

	if hadPrior {
		if err := os.Remove(bakPath); err != nil {
			log.Warn("could not remove backup of prior save",
				log.F("path", bakPath), log.F("err", err))
		}
	}
	return nil
}
