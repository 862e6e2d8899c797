package backup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bannerkit/twsave/log"
)

// Restore writes the snapshot at backupPath back over targetPath,
// decompressing as needed. The prior target contents are kept in a
// ".restore-backup" safety copy until the restore succeeds; any failure
// rolls them back before the error is surfaced.
func (e *Engine) Restore(ctx context.Context, backupPath, targetPath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("%w: backup %s: %v", ErrRestore, backupPath, err)
	}
	if !e.verifyLocked(backupPath) {
		return fmt.Errorf("%w: backup %s failed verification", ErrRestore, backupPath)
	}

	safetyPath := targetPath + ".restore-backup"
	hadTarget := false
	if _, err := os.Stat(targetPath); err == nil {
		hadTarget = true
		if err := copyFile(targetPath, safetyPath); err != nil {
			return fmt.Errorf("%w: safety copy: %v", ErrRestore, err)
		}
	}

	rollback := func(cause error) error {
		if hadTarget {
			if err := copyFile(safetyPath, targetPath); err != nil {
				log.Error("restore rollback failed",
					log.F("target", targetPath), log.F("err", err))
			}
			os.Remove(safetyPath)
		}
		return fmt.Errorf("%w: %v", ErrRestore, cause)
	}

	if err := ctx.Err(); err != nil {
		return rollback(err)
	}
	if err := streamRestore(backupPath, targetPath); err != nil {
		return rollback(err)
	}

	if hadTarget {
		os.Remove(safetyPath)
	}
	log.Info("restore complete",
		log.F("backup", backupPath), log.F("target", targetPath))
	return nil
}

// Verify opens the snapshot and streams it to completion, through the
// decompressor when the file is compressed. It reports whether the
// snapshot is intact.
func (e *Engine) Verify(backupPath string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.verifyLocked(backupPath)
}

func (e *Engine) verifyLocked(backupPath string) bool {
	f, err := os.Open(backupPath)
	if err != nil {
		return false
	}
	defer f.Close()

	r, err := newDecompressReader(f, compressionForPath(backupPath))
	if err != nil {
		return false
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		log.Warn("backup verification failed",
			log.F("backup", backupPath), log.F("err", err))
		return false
	}
	return true
}

// streamRestore decompresses or copies the snapshot over the target.
func streamRestore(backupPath, targetPath string) error {
	src, err := os.Open(backupPath)
	if err != nil {
		return err
	}
	defer src.Close()

	r, err := newDecompressReader(src, compressionForPath(backupPath))
	if err != nil {
		return err
	}

	dst, err := os.Create(targetPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// copyFile copies src over dst byte-for-byte.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
