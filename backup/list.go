package backup

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// List enumerates the snapshots under the backup root, newest first.
// When filter is non-empty, only snapshots of originals whose basename
// contains filter's basename are returned. Manifest files are never
// listed.
func (e *Engine) List(filter string) ([]BackupInfo, error) {
	var infos []BackupInfo
	for _, sub := range []string{snapshotsDir, preEditDir} {
		dir := filepath.Join(e.cfg.Dir, sub)
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info := e.describe(filepath.Join(dir, entry.Name()), sub)
			infos = append(infos, info)
		}
	}

	if filter != "" {
		needle := filepath.Base(filter)
		kept := infos[:0]
		for _, info := range infos {
			if strings.Contains(filepath.Base(info.OriginalPath), needle) {
				kept = append(kept, info)
			}
		}
		infos = kept
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})
	return infos, nil
}

// Latest returns the newest snapshot of the given original save, or nil
// when none exists.
func (e *Engine) Latest(originalPath string) (*BackupInfo, error) {
	infos, err := e.List(originalPath)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, nil
	}
	return &infos[0], nil
}

// describe builds a BackupInfo for a snapshot file, preferring manifest
// data and falling back to what the filename and stat carry.
func (e *Engine) describe(backupPath, sub string) BackupInfo {
	info := BackupInfo{
		BackupPath: backupPath,
		Trigger:    TriggerManual,
	}
	if sub == preEditDir {
		info.Trigger = TriggerPreEdit
	}

	if st, err := os.Stat(backupPath); err == nil {
		info.BackupSize = st.Size()
		info.CreatedAt = st.ModTime().UTC()
	}

	name := filepath.Base(backupPath)
	if t, ok := parseTimestampName(name); ok {
		info.CreatedAt = t
	}
	if _, base, ok := strings.Cut(name, "_"); ok {
		info.OriginalPath = strings.TrimSuffix(base, compressionForPath(name).Ext())
	}

	if m := readManifest(e.cfg.Dir, backupPath); m != nil {
		info.OriginalPath = m.Original.Path
		info.OriginalSize = m.Original.Size
		info.Checksum = m.Original.SHA256
		info.Trigger = m.Trigger
		info.CreatedAt = m.Created
		info.BackupSize = m.Backup.Size
	}
	return info
}
