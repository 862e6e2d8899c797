package backup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bannerkit/twsave/log"
)

// Prune applies a retention policy: per-save age and count limits first,
// then the global size limit, oldest snapshots going first. The newest
// snapshot of a save survives everything when KeepAtLeastOne is set.
// Individual delete failures are logged and skipped, never fatal.
// It returns the number of snapshots deleted.
func (e *Engine) Prune(ctx context.Context, policy RetentionPolicy) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	infos, err := e.List("")
	if err != nil {
		return 0, err
	}

	groups := make(map[string][]BackupInfo)
	for _, info := range infos {
		key := filepath.Base(info.OriginalPath)
		groups[key] = append(groups[key], info)
	}

	now := time.Now().UTC()
	marked := make(map[string]bool)

	for _, group := range groups {
		// List returns newest first; keep that order within the group.
		sort.Slice(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		for i, info := range group {
			tooOld := policy.MaxAge > 0 && now.Sub(info.CreatedAt) > policy.MaxAge
			overCount := i >= policy.MaxPerSave
			if tooOld || overCount {
				marked[info.BackupPath] = true
			}
		}
		if policy.KeepAtLeastOne && len(group) > 0 {
			allMarked := true
			for _, info := range group {
				if !marked[info.BackupPath] {
					allMarked = false
					break
				}
			}
			if allMarked {
				delete(marked, group[0].BackupPath)
			}
		}
	}

	deleted := 0
	remaining := make([]BackupInfo, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if marked[info.BackupPath] {
			if e.deleteSnapshot(info.BackupPath) {
				deleted++
				continue
			}
		}
		remaining = append(remaining, info)
	}

	if policy.MaxTotalSize > 0 {
		deleted += e.enforceTotalSize(ctx, remaining, policy)
	}
	return deleted, nil
}

// enforceTotalSize deletes the oldest remaining snapshots until the
// summed size fits the limit. Snapshots that are the last of their save
// are spared when KeepAtLeastOne is set.
func (e *Engine) enforceTotalSize(ctx context.Context, remaining []BackupInfo, policy RetentionPolicy) int {
	var total int64
	for _, info := range remaining {
		total += info.BackupSize
	}

	perGroup := make(map[string]int)
	for _, info := range remaining {
		perGroup[filepath.Base(info.OriginalPath)]++
	}

	// Oldest first for deletion order.
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].CreatedAt.Before(remaining[j].CreatedAt)
	})

	deleted := 0
	for total > policy.MaxTotalSize {
		if err := ctx.Err(); err != nil {
			return deleted
		}
		idx := -1
		for i, info := range remaining {
			group := filepath.Base(info.OriginalPath)
			if policy.KeepAtLeastOne && perGroup[group] <= 1 {
				continue
			}
			idx = i
			break
		}
		if idx < 0 {
			break
		}
		info := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		if e.deleteSnapshot(info.BackupPath) {
			total -= info.BackupSize
			perGroup[filepath.Base(info.OriginalPath)]--
			deleted++
		}
	}
	return deleted
}

// deleteSnapshot removes a snapshot file and its manifest, reporting
// whether the snapshot itself was removed.
func (e *Engine) deleteSnapshot(backupPath string) bool {
	if err := os.Remove(backupPath); err != nil {
		log.Warn("could not delete snapshot",
			log.F("backup", backupPath), log.F("err", err))
		return false
	}
	manifest := manifestPathFor(e.cfg.Dir, backupPath)
	if err := os.Remove(manifest); err != nil && !os.IsNotExist(err) {
		log.Warn("could not delete snapshot manifest",
			log.F("manifest", manifest), log.F("err", err))
	}
	log.Debug("snapshot pruned", log.F("backup", backupPath))
	return true
}
