package backup

import (
	"os"
	"path/filepath"

	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/fsutil"
	"github.com/always-further/claude-extensions/internal/target"
	"go.uber.org/zap"
)

// RestoreReport lists what a restore replaced.
type RestoreReport struct {
	Snapshot Snapshot
	Dirs     []string
	Files    []string
}

// Restore replaces t's component directories and shared config files with
// the copies held in snap. Directories absent from the snapshot are left
// alone. The current state is not backed up first.
func (m *Manager) Restore(t target.Target, snap Snapshot) (RestoreReport, error) {
	report := RestoreReport{Snapshot: snap}
	if _, err := os.Stat(snap.Path); err != nil {
		return report, component.IOError("reading", snap.Path, err)
	}

	for _, name := range component.BackupDirs {
		src := filepath.Join(snap.Path, name)
		if info, err := os.Stat(src); err != nil || !info.IsDir() {
			continue
		}
		dst := filepath.Join(t.Root, name)
		if err := fsutil.RemovePath(dst); err != nil {
			return report, component.IOError("removing", dst, err)
		}
		if err := fsutil.CopyTree(src, dst, nil); err != nil {
			return report, component.IOError("restoring", dst, err)
		}
		report.Dirs = append(report.Dirs, name)
		m.log.Debug("directory restored", zap.String("dir", name))
	}

	for _, f := range t.SharedFiles() {
		src := filepath.Join(snap.Path, f.Name)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := fsutil.CopyFile(src, f.Path); err != nil {
			return report, component.IOError("restoring", f.Path, err)
		}
		report.Files = append(report.Files, f.Name)
		m.log.Debug("file restored", zap.String("file", f.Name))
	}
	return report, nil
}
