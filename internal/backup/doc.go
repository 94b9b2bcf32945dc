// Package backup snapshots a target's installed components and shared config
// files before an install, keeps the most recent few, and restores a target
// from a snapshot.
//
// Snapshots live under <target>/.backups/backup-YYYYMMDD-HHMMSS. Component
// directories are deep-copied with symlinks dereferenced, so a snapshot stays
// valid after the extensions repository changes.
package backup
