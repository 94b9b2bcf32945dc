package fsutil

import (
	"errors"
	"io/fs"
	"os"
)

// Lexists reports whether path exists without following a final symlink, so
// dangling links count as present.
func Lexists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// RemovePath deletes whatever is at path: a link is unlinked (its target is
// untouched), a directory is removed recursively, a file is deleted. A
// missing path is not an error.
func RemovePath(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 || !info.IsDir() {
		return os.Remove(path)
	}
	return os.RemoveAll(path)
}

// HasEntries reports whether path is a directory with at least one entry.
// A link to a directory counts.
func HasEntries(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}
