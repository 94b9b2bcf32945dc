package catalog

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/always-further/claude-extensions/internal/branding"
	"github.com/always-further/claude-extensions/internal/config"
	"github.com/mitchellh/go-homedir"
)

const (
	freshnessFile = ".catalog-updated"

	// DefaultMaxAge is the staleness threshold for the local repository.
	DefaultMaxAge = 7 * 24 * time.Hour

	tmpSuffix = ".tmp"
)

// RepoURL returns the extensions repository URL, checking (in order):
//  1. <PREFIX>_REPO_URL env var
//  2. config key "repo_url"
//  3. branding.RepoURL()
func RepoURL() string {
	if v := os.Getenv(branding.EnvVar("REPO_URL")); v != "" {
		return v
	}
	if v := config.Get(config.KeyRepoURL); v != "" {
		return v
	}
	return branding.RepoURL()
}

// DefaultRoot returns ~/.claude-extensions/repo.
func DefaultRoot() string {
	return filepath.Join(config.Dir(), "repo")
}

// ResolveRoot returns the extensions repository root, checking (in order):
//  1. flagValue (--repo)
//  2. <PREFIX>_REPO env var
//  3. config key "repo"
//  4. the parent of the directory holding the running binary, when it looks
//     like a repository (a checkout running its own build)
//  5. DefaultRoot()
func ResolveRoot(flagValue string) (string, error) {
	for _, v := range []string{flagValue, os.Getenv(branding.EnvVar("REPO")), config.Get(config.KeyRepo)} {
		if v == "" {
			continue
		}
		expanded, err := homedir.Expand(v)
		if err != nil {
			return "", fmt.Errorf("expanding repository path %q: %w", v, err)
		}
		return filepath.Abs(expanded)
	}

	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(filepath.Dir(exe)); IsRepo(dir) {
			return dir, nil
		}
	}
	return DefaultRoot(), nil
}

// IsRepo reports whether dir looks like an extensions repository.
func IsRepo(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, "skills"))
	return err == nil && info.IsDir()
}

// Clone performs a shallow clone of the repository into targetDir.
//
// The clone is atomic: it writes to a .tmp directory first, then renames
// on success. On failure the .tmp directory is cleaned up.
func Clone(targetDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	tmpDir := targetDir + tmpSuffix
	_ = os.RemoveAll(tmpDir)

	if err := os.MkdirAll(filepath.Dir(tmpDir), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := git("", "clone", "--depth=1", RepoURL(), tmpDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning extensions repository: %w", err)
	}

	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing existing repository dir: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing clone: %w", err)
	}

	WriteFreshnessMarker(targetDir)
	return nil
}

// Update pulls the latest changes into repoDir, cloning it when absent.
func Update(repoDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(repoDir, ".git")); os.IsNotExist(err) {
		if IsRepo(repoDir) {
			return fmt.Errorf("%s is not a git checkout; update it manually", repoDir)
		}
		return Clone(repoDir)
	}

	if err := git(repoDir, "pull", "--ff-only"); err != nil {
		return fmt.Errorf("pulling repository updates: %w", err)
	}

	WriteFreshnessMarker(repoDir)
	return nil
}

// WriteFreshnessMarker writes the current Unix timestamp to the freshness file.
func WriteFreshnessMarker(repoDir string) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	_ = os.WriteFile(filepath.Join(repoDir, freshnessFile), []byte(ts), 0644)
}

// ReadFreshnessMarker reads the timestamp from the freshness file.
// Returns zero time if the file doesn't exist or can't be parsed.
func ReadFreshnessMarker(repoDir string) time.Time {
	data, err := os.ReadFile(filepath.Join(repoDir, freshnessFile))
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale returns true if the repository was last updated more than maxAge
// ago, or has never been updated by this tool.
func IsStale(repoDir string, maxAge time.Duration) bool {
	lastUpdated := ReadFreshnessMarker(repoDir)
	if lastUpdated.IsZero() {
		return true
	}
	return time.Since(lastUpdated) > maxAge
}

func git(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
