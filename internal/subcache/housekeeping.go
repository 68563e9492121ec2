package subcache

import (
	"os"
	"path/filepath"
	"sort"
	"time"
)

// HousekeepingConfig bounds how many stale ".pru" sidecars accumulate
// across a workspace's sub-makefiles, by count and by age.
type HousekeepingConfig struct {
	MaxFiles int // 0 disables count-based pruning
	KeepDays int // 0 disables age-based pruning
}

// Prune removes ".pru" files under dir whose age or rank beyond
// MaxFiles/KeepDays exceeds the configured bound. It never touches the
// in-memory Cache; callers run it independently of Load/Save, typically
// once per top-level invocation.
func Prune(dir string, cfg HousekeepingConfig) error {
	if cfg.MaxFiles == 0 && cfg.KeepDays == 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.pru"))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}

	type fileInfo struct {
		path    string
		modTime time.Time
	}
	var infos []fileInfo
	for _, p := range matches {
		st, err := os.Stat(p)
		if err != nil {
			continue
		}
		infos = append(infos, fileInfo{path: p, modTime: st.ModTime()})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].modTime.Before(infos[j].modTime)
	})

	if cfg.KeepDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -cfg.KeepDays)
		var kept []fileInfo
		for _, fi := range infos {
			if fi.modTime.Before(cutoff) {
				_ = os.Remove(fi.path)
				continue
			}
			kept = append(kept, fi)
		}
		infos = kept
	}

	if cfg.MaxFiles > 0 && len(infos) > cfg.MaxFiles {
		for _, fi := range infos[:len(infos)-cfg.MaxFiles] {
			_ = os.Remove(fi.path)
		}
	}

	return nil
}
