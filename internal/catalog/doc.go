// Package catalog reads the extensions repository: its catalog.json
// document, the presets it names, and the on-disk repository itself, which
// is cloned and kept fresh with git.
package catalog
