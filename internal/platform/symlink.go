package platform

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// sidecarSuffix names the file that records a link target when Windows falls
// back to copying.
const sidecarSuffix = ".target"

// CreateSymlink creates link pointing at target. On Windows without symlink
// support a regular-file target is copied and the target path is written to a
// sidecar; directory targets cannot fall back and return an error.
func CreateSymlink(target, link string) error {
	err := os.Symlink(target, link)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}

	info, statErr := os.Stat(target)
	if statErr != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("symlinking directory %s requires developer mode; use copy mode instead: %w", target, err)
	}

	if err := copyForFallback(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}
	// The copy already landed; a missing sidecar only loses ReadSymlinkTarget.
	_ = os.WriteFile(link+sidecarSuffix, []byte(target), 0644)
	return nil
}

// RemoveSymlink removes a link (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	_ = os.Remove(path + sidecarSuffix)
	return err
}

// IsSymlink reports whether path itself is a symbolic link.
func IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

// ReadSymlinkTarget returns the target of a link, consulting the Windows
// sidecar when the link is a fallback copy.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}
	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no %s sidecar found: %w", sidecarSuffix, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlinkSupported reports whether native links can be created. Only
// Windows can say no.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	dir, err := os.MkdirTemp("", "claude-ext-link-test")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	return os.Symlink(dir, dir+string(os.PathSeparator)+"link") == nil
}

func copyForFallback(src, dst string) error {
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
