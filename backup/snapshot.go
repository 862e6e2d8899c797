package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bannerkit/twsave/log"
)

// CreateSnapshot copies (or compression-streams) the save at sourcePath
// into the backup root and returns its BackupInfo. Snapshot and restore
// operations on the same engine never interleave.
func (e *Engine) CreateSnapshot(ctx context.Context, sourcePath string, trigger Trigger) (*BackupInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.createSnapshotLocked(ctx, sourcePath, trigger)
}

// PreEditSnapshot satisfies the store package's Snapshotter interface.
func (e *Engine) PreEditSnapshot(ctx context.Context, sourcePath string) error {
	_, err := e.CreateSnapshot(ctx, sourcePath, TriggerPreEdit)
	return err
}

func (e *Engine) createSnapshotLocked(ctx context.Context, sourcePath string, trigger Trigger) (*BackupInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	srcInfo, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("%w: source %s: %v", ErrSnapshot, sourcePath, err)
	}

	var srcSum string
	if e.cfg.ComputeChecksums {
		srcSum, err = hashFile(sourcePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
		}
	}

	createdAt := time.Now().UTC()
	backupPath, err := e.snapshotPath(trigger, sourcePath, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.streamSnapshot(sourcePath, backupPath); err != nil {
		os.Remove(backupPath)
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	backupInfo, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	var bakSum string
	if e.cfg.ComputeChecksums {
		bakSum, err = hashFile(backupPath)
		if err != nil {
			os.Remove(backupPath)
			return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
		}
	}

	info := BackupInfo{
		BackupPath:   backupPath,
		OriginalPath: sourcePath,
		CreatedAt:    createdAt,
		OriginalSize: srcInfo.Size(),
		BackupSize:   backupInfo.Size(),
		Checksum:     srcSum,
		Trigger:      trigger,
	}

	if e.cfg.CreateManifests {
		m := &Manifest{
			Version: manifestVersion,
			Created: createdAt,
			Trigger: trigger,
			Original: ManifestFile{
				Path:         sourcePath,
				Size:         srcInfo.Size(),
				SHA256:       srcSum,
				LastModified: srcInfo.ModTime().UTC(),
			},
			Backup: ManifestBackup{
				Path:        backupPath,
				Size:        backupInfo.Size(),
				Compression: e.cfg.CompressionType,
				SHA256:      bakSum,
			},
			Metadata: saveMetadata(ctx, sourcePath),
		}
		if err := e.writeManifest(m); err != nil {
			// A snapshot without a manifest is still a valid snapshot.
			log.Warn("could not write snapshot manifest",
				log.F("backup", backupPath), log.F("err", err))
		}
	}

	log.Info("snapshot created",
		log.F("source", sourcePath), log.F("backup", backupPath),
		log.F("trigger", string(trigger)))

	if e.cfg.OnBackupCreated != nil {
		e.cfg.OnBackupCreated(info)
	}
	return &info, nil
}

// snapshotPath builds the destination path for a new snapshot, appending
// a counter when two snapshots of one save land in the same second.
func (e *Engine) snapshotPath(trigger Trigger, sourcePath string, createdAt time.Time) (string, error) {
	dir := filepath.Join(e.cfg.Dir, dirFor(trigger))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stamp := timestampName(createdAt)
	base := filepath.Base(sourcePath)
	ext := e.cfg.CompressionType.Ext()

	path := filepath.Join(dir, stamp+"_"+base+ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Manifest names drop the subdirectory, so a same-second
			// snapshot of this save in the other directory also counts.
			if _, err := os.Stat(e.manifestPath(path)); os.IsNotExist(err) {
				return path, nil
			}
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d_%s%s", stamp, n, base, ext))
	}
}

// timestampName formats a UTC time as ISO-8601 with colons replaced so
// the result is a portable filename.
func timestampName(t time.Time) string {
	return t.UTC().Format("2006-01-02T15-04-05Z")
}

// parseTimestampName recovers the creation time from a snapshot
// filename. The bool is false when the name carries no timestamp prefix.
func parseTimestampName(name string) (time.Time, bool) {
	if len(name) < len("2006-01-02T15-04-05Z") {
		return time.Time{}, false
	}
	stamp := name[:len("2006-01-02T15-04-05Z")]
	t, err := time.Parse("2006-01-02T15-04-05Z", stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// streamSnapshot copies the source into the backup path through the
// configured compression writer.
func (e *Engine) streamSnapshot(sourcePath, backupPath string) error {
	src, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return err
	}

	cw, err := newCompressWriter(dst, e.cfg.CompressionType)
	if err != nil {
		dst.Close()
		return err
	}

	if _, err := io.Copy(cw, src); err != nil {
		cw.Close()
		dst.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// hashFile returns the file's SHA-256 as "sha256:<lowercase hex>".
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}
