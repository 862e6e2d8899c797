// Package backup snapshots save files before they are edited and restores
// them when an edit goes wrong.
//
// Snapshots are plain copies or compressed streams of the original file,
// stored under a configured root:
//
//	<root>/pre-edit/   <timestamp>_<basename>[.ext]
//	<root>/snapshots/  <timestamp>_<basename>[.ext]
//	<root>/manifests/  <timestamp>_<basename>.manifest.json
//
// Each Engine instance carries its own configuration and a mutex that
// serializes snapshot and restore operations, so no two of them ever
// interleave their filesystem steps. Multiple engines rooted at different
// directories can coexist.
package backup

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrSnapshot is returned when a snapshot cannot be created.
	ErrSnapshot = errors.New("snapshot failed")

	// ErrRestore is returned when a restore fails. The target file is
	// rolled back to its pre-restore contents first.
	ErrRestore = errors.New("restore failed")
)

// Trigger records why a snapshot was taken.
type Trigger string

const (
	TriggerManual        Trigger = "Manual"
	TriggerPreEdit       Trigger = "PreEdit"
	TriggerScheduled     Trigger = "Scheduled"
	TriggerOnClose       Trigger = "OnClose"
	TriggerBeforeRestore Trigger = "BeforeRestore"
)

// Compression selects how snapshots are stored on disk.
type Compression string

const (
	CompressionNone Compression = "None"
	CompressionGZip Compression = "GZip"
	CompressionLZ4  Compression = "LZ4"
	CompressionLZMA Compression = "LZMA"
)

// RetentionPolicy bounds how many snapshots survive pruning.
type RetentionPolicy struct {
	// MaxAge deletes snapshots older than this; zero disables the check.
	MaxAge time.Duration

	// MaxPerSave keeps only the newest N snapshots per original save.
	MaxPerSave int

	// MaxTotalSize bounds the summed size of all snapshots in bytes;
	// zero disables the check.
	MaxTotalSize int64

	// KeepAtLeastOne never deletes the last remaining snapshot of a
	// save, regardless of the other limits.
	KeepAtLeastOne bool
}

// DefaultRetentionPolicy returns the standard policy: 30 days, 10 per
// save, 10 GiB total, always keeping at least one.
func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		MaxAge:         30 * 24 * time.Hour,
		MaxPerSave:     10,
		MaxTotalSize:   10 << 30,
		KeepAtLeastOne: true,
	}
}

// BackupInfo describes one snapshot.
type BackupInfo struct {
	BackupPath   string
	OriginalPath string
	CreatedAt    time.Time
	OriginalSize int64
	BackupSize   int64
	Checksum     string // "sha256:<hex>", empty when checksums are off
	Trigger      Trigger
}

// Config configures an Engine.
type Config struct {
	// Dir is the backup root directory.
	Dir string

	// CompressionType selects the snapshot storage format.
	CompressionType Compression

	// Retention is applied by Prune.
	Retention RetentionPolicy

	// ComputeChecksums includes SHA-256 digests in manifests and
	// BackupInfo.
	ComputeChecksums bool

	// CreateManifests writes a JSON manifest for each snapshot under
	// <root>/manifests/.
	CreateManifests bool

	// OnBackupCreated, when set, is invoked after each successful
	// snapshot.
	OnBackupCreated func(BackupInfo)
}

// DefaultConfig returns the standard configuration rooted at dir: gzip
// compression, default retention, checksums and manifests on.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:              dir,
		CompressionType:  CompressionGZip,
		Retention:        DefaultRetentionPolicy(),
		ComputeChecksums: true,
		CreateManifests:  true,
	}
}

// Engine creates, lists, verifies, restores, and prunes snapshots.
type Engine struct {
	cfg Config

	// Serializes snapshot and restore filesystem steps.
	mu sync.Mutex
}

// New creates an Engine. The root directories are created lazily on the
// first snapshot.
func New(cfg Config) *Engine {
	if cfg.CompressionType == "" {
		cfg.CompressionType = CompressionGZip
	}
	return &Engine{cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

const (
	preEditDir   = "pre-edit"
	snapshotsDir = "snapshots"
	manifestsDir = "manifests"
)

// dirFor returns the storage directory for a trigger.
func dirFor(trigger Trigger) string {
	if trigger == TriggerPreEdit {
		return preEditDir
	}
	return snapshotsDir
}
