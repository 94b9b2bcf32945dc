package target

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/always-further/claude-extensions/internal/branding"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/always-further/claude-extensions/internal/platform"
	"github.com/mitchellh/go-homedir"
)

// Choice is what the user asked to install into.
type Choice string

const (
	ChoiceCode    Choice = "claude-code"
	ChoiceDesktop Choice = "claude-desktop"
	ChoiceBoth    Choice = "both"
	ChoiceProject Choice = "project"
)

// Choices lists every valid choice in menu order.
var Choices = []Choice{ChoiceCode, ChoiceDesktop, ChoiceBoth, ChoiceProject}

// ParseChoice validates a target name.
func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Choices {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown target %q (want claude-code, claude-desktop, both, or project)", component.ErrInvalidSelection, s)
}

// Resolver turns choices into targets. Zero fields fall back to the running
// process: $HOME, runtime.GOOS, and the working directory.
type Resolver struct {
	Home string
	GOOS string
	Cwd  string
}

// Resolve returns the targets for choice. "both" drops the desktop target,
// with a warning, on platforms without the desktop app; asking for the
// desktop target alone there is an error.
func (r Resolver) Resolve(choice Choice) (targets []Target, warnings []string, err error) {
	switch choice {
	case ChoiceCode:
		t, err := r.code()
		if err != nil {
			return nil, nil, err
		}
		return []Target{t}, nil, nil
	case ChoiceProject:
		t, err := r.project()
		if err != nil {
			return nil, nil, err
		}
		return []Target{t}, nil, nil
	case ChoiceDesktop:
		t, ok, err := r.desktop()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("%w: Claude Desktop is not supported on %s", component.ErrInvalidSelection, r.goos())
		}
		return []Target{t}, nil, nil
	case ChoiceBoth:
		code, err := r.code()
		if err != nil {
			return nil, nil, err
		}
		desk, ok, err := r.desktop()
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return []Target{code}, []string{fmt.Sprintf("Claude Desktop is not supported on %s; installing to Claude Code only", r.goos())}, nil
		}
		return []Target{code, desk}, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown target %q", component.ErrInvalidSelection, choice)
	}
}

func (r Resolver) code() (Target, error) {
	if root, ok, err := override("CODE_DIR"); ok || err != nil {
		if err != nil {
			return Target{}, err
		}
		return New(FlavorCode, root)
	}
	home, err := r.home()
	if err != nil {
		return Target{}, err
	}
	return New(FlavorCode, filepath.Join(home, ".claude"))
}

func (r Resolver) project() (Target, error) {
	if root, ok, err := override("PROJECT_DIR"); ok || err != nil {
		if err != nil {
			return Target{}, err
		}
		return New(FlavorProject, root)
	}
	cwd := r.Cwd
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return Target{}, fmt.Errorf("resolving working directory: %w", err)
		}
	}
	return New(FlavorProject, filepath.Join(cwd, ".claude"))
}

func (r Resolver) desktop() (Target, bool, error) {
	if root, ok, err := override("DESKTOP_DIR"); ok || err != nil {
		if err != nil {
			return Target{}, false, err
		}
		t, err := New(FlavorDesktop, root)
		return t, err == nil, err
	}
	home, err := r.home()
	if err != nil {
		return Target{}, false, err
	}
	dir, ok := platform.DesktopConfigDir(r.goos(), home)
	if !ok {
		return Target{}, false, nil
	}
	t, err := New(FlavorDesktop, dir)
	return t, err == nil, err
}

func (r Resolver) home() (string, error) {
	if r.Home != "" {
		return r.Home, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

func (r Resolver) goos() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return runtime.GOOS
}

// override reads a CLAUDE_EXT_<suffix> root override, expanding a leading ~.
func override(suffix string) (string, bool, error) {
	v := os.Getenv(branding.EnvVar(suffix))
	if v == "" {
		return "", false, nil
	}
	expanded, err := homedir.Expand(v)
	if err != nil {
		return "", true, fmt.Errorf("expanding %s: %w", branding.EnvVar(suffix), err)
	}
	return expanded, true, nil
}
