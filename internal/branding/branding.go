// Package branding holds the identity of the installer: command name, product
// name, the dot-directory under $HOME, the environment variable prefix, and the
// default extensions repository URL. Values come from the embedded
// branding.yaml, with hard-coded fallbacks.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	RepoURL     string `yaml:"repo_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "claude-ext",
			DisplayName: "Claude Extensions",
			Description: "Installer for Claude Code community extensions",
			HomeDir:     ".claude-extensions",
			EnvPrefix:   "CLAUDE_EXT",
			RepoURL:     "https://github.com/always-further/claude-extensions.git",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "claude-ext").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".claude-extensions").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CLAUDE_EXT").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// RepoURL returns the default git URL of the extensions repository.
func RepoURL() string { load(); return defaults.RepoURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("repo") → "CLAUDE_EXT_REPO".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
