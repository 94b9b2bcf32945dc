package component

import (
	"fmt"
	"strings"
)

// Kind identifies one of the five component kinds.
type Kind int

const (
	KindSkill Kind = iota
	KindAgent
	KindCommand
	KindHook
	KindMCP
)

// AllKinds lists every kind in installation order. Hooks and MCP presets come
// last so their merges compose with any earlier shared-file writes.
var AllKinds = []Kind{KindSkill, KindAgent, KindCommand, KindHook, KindMCP}

// String returns the singular name used in output and flags.
func (k Kind) String() string {
	switch k {
	case KindSkill:
		return "skill"
	case KindAgent:
		return "agent"
	case KindCommand:
		return "command"
	case KindHook:
		return "hook"
	case KindMCP:
		return "mcp"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Dir returns the directory name that holds this kind in both the extensions
// repository and a target.
func (k Kind) Dir() string {
	switch k {
	case KindSkill:
		return "skills"
	case KindAgent:
		return "agents"
	case KindCommand:
		return "commands"
	case KindHook:
		return "hooks"
	case KindMCP:
		return "mcp"
	default:
		return ""
	}
}

// IsFileBased reports whether the kind owns a path in the target (as opposed
// to merging into a shared config file).
func (k Kind) IsFileBased() bool {
	return k == KindSkill || k == KindAgent || k == KindCommand
}

// ParseKind accepts the singular or plural name of a kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skill", "skills":
		return KindSkill, nil
	case "agent", "agents":
		return KindAgent, nil
	case "command", "commands":
		return KindCommand, nil
	case "hook", "hooks":
		return KindHook, nil
	case "mcp", "mcp-preset", "mcp-presets":
		return KindMCP, nil
	default:
		return 0, fmt.Errorf("%w: unknown component kind %q", ErrInvalidSelection, s)
	}
}

// BackupDirs are the target subdirectories captured by a snapshot.
var BackupDirs = []string{
	KindSkill.Dir(),
	KindAgent.Dir(),
	KindCommand.Dir(),
	KindHook.Dir(),
}
