// Package fsutil provides the recursive copy and link-aware removal used by
// the copied placement strategy, snapshot creation, and restore.
package fsutil
