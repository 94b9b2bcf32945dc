// Package config manages user-level settings stored at
// ~/.claude-extensions/config.yaml: the extensions repository location, the
// default target and placement mode, and whether installs take a backup first.
package config
