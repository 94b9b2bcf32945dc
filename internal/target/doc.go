// Package target describes installation destinations: the global Claude Code
// root (~/.claude), a per-project root (./.claude), and the desktop app's
// configuration root. It knows where each flavor keeps its settings file and
// MCP server registry, and resolves a user's target choice into concrete
// directories, honoring CLAUDE_EXT_*_DIR overrides.
package target
