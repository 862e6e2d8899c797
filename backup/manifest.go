package backup

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bannerkit/twsave/log"
	"github.com/bannerkit/twsave/store"
)

// manifestVersion is the schema version written into new manifests.
const manifestVersion = 1

// Manifest is the JSON document written for each snapshot under
// <root>/manifests/.
type Manifest struct {
	Version  int              `json:"version"`
	Created  time.Time        `json:"created"`
	Trigger  Trigger          `json:"trigger"`
	Original ManifestFile     `json:"original"`
	Backup   ManifestBackup   `json:"backup"`
	Metadata ManifestMetadata `json:"metadata"`
}

// ManifestFile describes the original save at snapshot time.
type ManifestFile struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	SHA256       string    `json:"sha256,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// ManifestBackup describes the snapshot file itself.
type ManifestBackup struct {
	Path        string      `json:"path"`
	Size        int64       `json:"size"`
	Compression Compression `json:"compression"`
	SHA256      string      `json:"sha256,omitempty"`
}

// ManifestMetadata carries the save's own metadata block for display in
// backup browsers. Empty when the source is not a readable save.
type ManifestMetadata struct {
	Character   string   `json:"character,omitempty"`
	Level       int      `json:"level,omitempty"`
	Day         int64    `json:"day,omitempty"`
	GameVersion string   `json:"game_version,omitempty"`
	Modules     []string `json:"modules,omitempty"`
}

// manifestPath returns the manifest location for a snapshot file.
func (e *Engine) manifestPath(backupPath string) string {
	name := filepath.Base(backupPath)
	// Strip the compression extension so the manifest name tracks the
	// snapshot's logical name.
	name = strings.TrimSuffix(name, e.cfg.CompressionType.Ext())
	return filepath.Join(e.cfg.Dir, manifestsDir, name+".manifest.json")
}

func manifestPathFor(root, backupPath string) string {
	name := filepath.Base(backupPath)
	name = strings.TrimSuffix(name, compressionForPath(backupPath).Ext())
	return filepath.Join(root, manifestsDir, name+".manifest.json")
}

// writeManifest stores a manifest for a completed snapshot.
func (e *Engine) writeManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	path := e.manifestPath(m.Backup.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// readManifest loads the manifest for a snapshot, or nil when absent.
func readManifest(root, backupPath string) *Manifest {
	data, err := os.ReadFile(manifestPathFor(root, backupPath))
	if err != nil {
		return nil
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		log.Warn("unreadable backup manifest",
			log.F("backup", backupPath), log.F("err", err))
		return nil
	}
	return &m
}

// saveMetadata reads the source's frame metadata for the manifest. A
// source that is not a readable save yields an empty block.
func saveMetadata(ctx context.Context, sourcePath string) ManifestMetadata {
	save, err := store.ReadMetadata(ctx, sourcePath)
	if err != nil {
		log.Debug("snapshot source metadata unavailable",
			log.F("path", sourcePath), log.F("err", err))
		return ManifestMetadata{}
	}
	md := ManifestMetadata{
		Character:   save.Metadata.CharacterName,
		Level:       save.Metadata.MainHeroLevel,
		Day:         save.Metadata.Day,
		GameVersion: save.Header.GameVersion,
	}
	for _, m := range save.Modules {
		md.Modules = append(md.Modules, m.ID)
	}
	return md
}
