package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/always-further/claude-extensions/internal/platform"
)

// junkNames are skipped when a component is copied into a target.
var junkNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// SkipJunk reports whether name is VCS or OS clutter that should not be
// copied into a target.
func SkipJunk(name string) bool {
	return junkNames[name]
}

// CopyTree recursively copies src to dst. Symbolic links are dereferenced, so
// dst never refers back into src. Existing files in dst are overwritten;
// existing directories are merged. When skip is non-nil, entries whose base
// name it accepts are left out.
func CopyTree(src, dst string, skip func(name string) bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return CopyFile(src, dst)
	}

	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if skip != nil && skip(entry.Name()) {
			continue
		}
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Stat follows links; a dangling link fails the copy.
		target, err := os.Stat(srcPath)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", srcPath, err)
		}

		switch {
		case target.IsDir():
			if err := CopyTree(srcPath, dstPath, skip); err != nil {
				return err
			}
		case target.Mode().IsRegular():
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
		// Sockets, devices and pipes are not part of any component.
	}

	return nil
}

// CopyFile copies a single file by value, following links at src and
// preserving its permission bits. A link at dst is replaced, not written
// through.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if fi, err := os.Lstat(dst); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(dst); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile keeps the mode of a file that already existed.
	return platform.Chmod(dst, info.Mode().Perm())
}
