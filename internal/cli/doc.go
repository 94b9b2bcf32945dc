// Package cli defines the Cobra command tree for the claude-ext CLI. Each file
// in this package registers one top-level command (install, restore, validate,
// etc.) with the root command. Command implementations delegate to internal
// packages for the installation engine and only handle flag parsing, output
// formatting, and user interaction.
package cli
