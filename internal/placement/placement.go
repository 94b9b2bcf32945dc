// Package placement puts a component source at its destination path. The two
// strategies are Linked (a symbolic link back to the repository, so a git pull
// updates the install in place) and Copied (an independent duplicate).
package placement

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/fsutil"
	"github.com/always-further/claude-extensions/internal/platform"
)

// Mode selects a placement strategy for a whole run.
type Mode string

const (
	ModeLinked Mode = "symlink"
	ModeCopied Mode = "copy"
)

// ParseMode accepts "symlink"/"link"/"linked" or "copy"/"copied".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symlink", "link", "linked":
		return ModeLinked, nil
	case "copy", "copied":
		return ModeCopied, nil
	default:
		return "", fmt.Errorf("%w: unknown install mode %q (want symlink or copy)", component.ErrInvalidSelection, s)
	}
}

// Strategy places src at dst. dst's parent exists and dst itself does not.
type Strategy interface {
	Mode() Mode
	Place(src, dst string) error
}

// For returns the strategy for mode.
func For(mode Mode) (Strategy, error) {
	switch mode {
	case ModeLinked:
		return Linked{}, nil
	case ModeCopied:
		return Copied{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown install mode %q", component.ErrInvalidSelection, mode)
	}
}

// Linked places a symbolic link to the absolute source path.
type Linked struct{}

func (Linked) Mode() Mode { return ModeLinked }

func (Linked) Place(src, dst string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	return platform.CreateSymlink(abs, dst)
}

// Copied duplicates the source (recursively for directories), leaving out
// VCS and OS clutter.
type Copied struct{}

func (Copied) Mode() Mode { return ModeCopied }

func (Copied) Place(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fsutil.CopyTree(src, dst, fsutil.SkipJunk)
	}
	return fsutil.CopyFile(src, dst)
}
