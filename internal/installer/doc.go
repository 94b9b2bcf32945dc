// Package installer installs one component into one target. Skills, agents,
// and commands are placed with an injected placement.Strategy. Hooks and MCP
// presets are merged into the target's shared config files: hook handlers
// are appended per event, so reinstalling a hook duplicates its handlers,
// while MCP servers are replaced by name, so the last install wins.
package installer
