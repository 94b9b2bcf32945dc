// Package platform hides the OS differences the installer cares about:
// symbolic link creation (with a file-copy fallback on Windows when developer
// mode symlinks are unavailable), permission bits, and where the desktop app
// keeps its configuration.
package platform
