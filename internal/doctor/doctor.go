// Package doctor runs health checks over the extensions repository and the
// installation targets, printing one status line per check.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/always-further/claude-extensions/internal/backup"
	"github.com/always-further/claude-extensions/internal/catalog"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/fsutil"
	"github.com/always-further/claude-extensions/internal/platform"
	"github.com/always-further/claude-extensions/internal/sharedconfig"
	"github.com/always-further/claude-extensions/internal/target"
)

// Result counts check outcomes.
type Result struct {
	Warnings int
	Failures int
	Fixed    int
}

// OK reports whether no check failed.
func (r Result) OK() bool { return r.Failures == 0 }

type checker struct {
	w   io.Writer
	fix bool
	res Result
}

func (c *checker) ok(format string, args ...any) {
	fmt.Fprintf(c.w, "  [ OK ] "+format+"\n", args...)
}

func (c *checker) warn(format string, args ...any) {
	c.res.Warnings++
	fmt.Fprintf(c.w, "  [WARN] "+format+"\n", args...)
}

func (c *checker) fail(format string, args ...any) {
	c.res.Failures++
	fmt.Fprintf(c.w, "  [FAIL] "+format+"\n", args...)
}

func (c *checker) fixed(format string, args ...any) {
	c.res.Fixed++
	fmt.Fprintf(c.w, "  [FIX ] "+format+"\n", args...)
}

// Run checks repoRoot and each target. With fix set, dangling component
// links in the targets are removed.
func Run(w io.Writer, repoRoot string, targets []target.Target, fix bool) Result {
	c := &checker{w: w, fix: fix}
	c.checkRepo(repoRoot)
	for _, t := range targets {
		c.checkTarget(t)
	}
	return c.res
}

func (c *checker) checkRepo(repoRoot string) {
	fmt.Fprintln(c.w, "Repository check:")

	if _, err := exec.LookPath("git"); err != nil {
		c.warn("git not found in PATH (needed for catalog update and validate --changed-only)")
	} else {
		c.ok("git found")
	}

	if !catalog.IsRepo(repoRoot) {
		c.fail("%s is not an extensions repository; run 'catalog update' or pass --repo", repoRoot)
		return
	}
	c.ok("%s", repoRoot)

	cat, err := catalog.Load(repoRoot)
	if err != nil {
		c.fail("%v", err)
	} else {
		c.ok("%s parses (%d presets)", catalog.FileName, len(cat.Presets))
	}

	if _, err := os.Stat(filepath.Join(repoRoot, ".git")); err == nil {
		if last := catalog.ReadFreshnessMarker(repoRoot); last.IsZero() {
			c.warn("repository has never been updated by this tool")
		} else if catalog.IsStale(repoRoot, catalog.DefaultMaxAge) {
			c.warn("repository last updated %s ago", time.Since(last).Round(time.Hour))
		} else {
			c.ok("repository updated %s", last.Format(time.DateOnly))
		}
	}
}

func (c *checker) checkTarget(t target.Target) {
	fmt.Fprintf(c.w, "\nTarget %s:\n", t)

	if _, err := os.Stat(t.Root); os.IsNotExist(err) {
		c.ok("%s does not exist yet", t.Root)
		return
	}

	for _, kind := range component.AllKinds {
		if !kind.IsFileBased() || !t.Accepts(kind) {
			continue
		}
		c.checkLinks(filepath.Join(t.Root, kind.Dir()))
	}

	for _, f := range t.SharedFiles() {
		if _, err := os.Stat(f.Path); os.IsNotExist(err) {
			continue
		}
		if _, err := sharedconfig.Load(f.Path); err != nil {
			c.fail("%v", err)
			continue
		}
		c.ok("%s parses", f.Path)
	}

	snaps, err := backup.New().List(t)
	switch {
	case err != nil:
		c.warn("%v", err)
	case len(snaps) == 0:
		c.ok("no backups")
	default:
		c.ok("%d backup(s), newest %s", len(snaps), snaps[0].ID)
	}
}

// checkLinks reports component links whose source is gone.
func (c *checker) checkLinks(dir string) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		c.fail("%s: %v", dir, err)
		return
	}

	dangling := 0
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if !platform.IsSymlink(path) {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			continue
		}
		dangling++
		dest, _ := platform.ReadSymlinkTarget(path)
		if !c.fix {
			c.warn("%s -> %s (source does not exist)", path, dest)
			continue
		}
		if err := fsutil.RemovePath(path); err != nil {
			c.fail("could not remove %s: %v", path, err)
			continue
		}
		c.fixed("removed dangling link %s", path)
	}
	if dangling == 0 {
		c.ok("%s links intact (%d entries)", dir, len(entries))
	}
}
