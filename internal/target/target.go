package target

import (
	"fmt"
	"path/filepath"

	"github.com/always-further/claude-extensions/internal/component"
)

// Flavor is the kind of configuration root a target is.
type Flavor int

const (
	FlavorCode Flavor = iota
	FlavorProject
	FlavorDesktop
)

// String returns the name used on the command line.
func (f Flavor) String() string {
	switch f {
	case FlavorCode:
		return "claude-code"
	case FlavorProject:
		return "project"
	case FlavorDesktop:
		return "claude-desktop"
	default:
		return fmt.Sprintf("flavor(%d)", int(f))
	}
}

// MCPFlavor names the repository directory (mcp/<name>/) holding presets
// for this flavor. Project targets use Claude Code presets.
func (f Flavor) MCPFlavor() string {
	if f == FlavorDesktop {
		return FlavorDesktop.String()
	}
	return FlavorCode.String()
}

// Shared config file names.
const (
	SettingsFile      = "settings.json"
	CodeMCPFile       = ".mcp.json"
	DesktopConfigFile = "claude_desktop_config.json"
	BackupsDir        = ".backups"
)

// Target is one installation destination.
type Target struct {
	Flavor Flavor
	Root   string
}

// New returns a Target for root, which is made absolute.
func New(flavor Flavor, root string) (Target, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Target{}, fmt.Errorf("resolving target root %s: %w", root, err)
	}
	return Target{Flavor: flavor, Root: abs}, nil
}

func (t Target) String() string {
	return fmt.Sprintf("%s (%s)", t.Flavor, t.Root)
}

// Accepts reports whether components of kind can be installed here. Desktop
// targets only take MCP presets.
func (t Target) Accepts(kind component.Kind) bool {
	if t.Flavor == FlavorDesktop {
		return kind == component.KindMCP
	}
	return true
}

// ComponentPath returns the destination of a file-based component.
func (t Target) ComponentPath(kind component.Kind, id string) string {
	switch kind {
	case component.KindAgent, component.KindCommand:
		return filepath.Join(t.Root, kind.Dir(), id+".md")
	default:
		return filepath.Join(t.Root, kind.Dir(), id)
	}
}

// SettingsPath returns the settings file that hook bindings merge into.
func (t Target) SettingsPath() string {
	return filepath.Join(t.Root, SettingsFile)
}

// MCPPath returns the MCP server registry file. Claude Code reads .mcp.json
// from beside its config directory; the desktop app keeps it inside.
func (t Target) MCPPath() string {
	if t.Flavor == FlavorDesktop {
		return filepath.Join(t.Root, DesktopConfigFile)
	}
	return filepath.Join(filepath.Dir(t.Root), CodeMCPFile)
}

// BackupsPath returns the directory holding this target's snapshots.
func (t Target) BackupsPath() string {
	return filepath.Join(t.Root, BackupsDir)
}

// SharedFile is a shared config file and the name it is stored under in a
// snapshot.
type SharedFile struct {
	Name string
	Path string
}

// SharedFiles lists the shared config files a target can hold.
func (t Target) SharedFiles() []SharedFile {
	if t.Flavor == FlavorDesktop {
		return []SharedFile{{Name: DesktopConfigFile, Path: t.MCPPath()}}
	}
	return []SharedFile{
		{Name: SettingsFile, Path: t.SettingsPath()},
		{Name: CodeMCPFile, Path: t.MCPPath()},
	}
}
