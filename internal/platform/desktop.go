package platform

import "path/filepath"

// DesktopConfigDir returns the desktop app's configuration directory for the
// given OS and home directory. The second result is false on platforms where
// the desktop app is not supported.
func DesktopConfigDir(goos, home string) (string, bool) {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude"), true
	case "linux":
		return filepath.Join(home, ".config", "Claude"), true
	default:
		return "", false
	}
}
