package validate

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/always-further/claude-extensions/internal/sharedconfig"
)

const (
	maxDescriptionLen = 1024
	maxSkillLines     = 500
	minAgentBody      = 50
	minCommandBody    = 20
)

var (
	knownTools  = []string{"Bash", "Read", "Write", "Edit", "Glob", "Grep", "WebFetch", "WebSearch", "Task", "NotebookEdit"}
	knownModels = []string{"haiku", "sonnet", "opus", "inherit"}
)

// Skill checks a skill directory.
func Skill(dir string) []Issue {
	var issues []Issue
	name := filepath.Base(dir)
	skillMD := filepath.Join(dir, "SKILL.md")

	data, err := os.ReadFile(skillMD)
	if err != nil {
		return append(issues, errorf(dir, "Missing required SKILL.md"))
	}
	if _, err := os.Stat(filepath.Join(dir, "README.md")); err != nil {
		issues = append(issues, errorf(dir, "Missing required README.md"))
	}

	content := string(data)
	meta, _ := parseFrontmatter(content)
	if meta == nil {
		return append(issues, errorf(skillMD, "SKILL.md must start with YAML frontmatter (---)"))
	}

	if v, ok := field(meta, "name"); !ok {
		issues = append(issues, errorf(skillMD, "Missing required 'name' field in frontmatter"))
	} else if !namePattern.MatchString(v) {
		issues = append(issues, errorf(skillMD, "Name must be lowercase alphanumeric with hyphens, got: %s", v))
	} else if v != name {
		issues = append(issues, warnf(skillMD, "Name '%s' doesn't match directory name '%s'", v, name))
	}

	if v, ok := field(meta, "description"); !ok {
		issues = append(issues, errorf(skillMD, "Missing required 'description' field in frontmatter"))
	} else if n := utf8.RuneCountInString(v); n > maxDescriptionLen {
		issues = append(issues, errorf(skillMD, "Description too long (%d > %d characters)", n, maxDescriptionLen))
	}

	if lines := strings.Count(content, "\n") + 1; lines > maxSkillLines {
		issues = append(issues, warnf(skillMD, "SKILL.md too long (%d > %d lines). Use reference files for additional content.", lines, maxSkillLines))
	}

	if raw, ok := meta["allowed-tools"]; ok {
		for _, tool := range toolList(raw) {
			if !slices.Contains(knownTools, tool) {
				issues = append(issues, warnf(skillMD, "Unknown tool in allowed-tools: %s", tool))
			}
		}
	}

	return issues
}

// toolList accepts allowed-tools as a comma-separated string or a YAML list.
func toolList(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		parts = strings.Split(v, ",")
	}

	tools := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tools = append(tools, p)
		}
	}
	return tools
}

// Agent checks an agent markdown file.
func Agent(path string) []Issue {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Issue{errorf(path, "Cannot read agent: %v", err)}
	}

	meta, body := parseFrontmatter(string(data))
	if meta == nil {
		return []Issue{errorf(path, "Agent must start with YAML frontmatter (---)")}
	}

	var issues []Issue
	for _, key := range []string{"name", "description"} {
		if _, ok := meta[key]; !ok {
			issues = append(issues, errorf(path, "Missing required '%s' field in frontmatter", key))
		}
	}

	if v, ok := field(meta, "name"); ok {
		if !namePattern.MatchString(v) {
			issues = append(issues, errorf(path, "Name must be lowercase alphanumeric with hyphens, got: %s", v))
		}
		if stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)); v != stem {
			issues = append(issues, warnf(path, "Name '%s' doesn't match filename '%s'", v, stem))
		}
	}

	if v, ok := field(meta, "model"); ok && !slices.Contains(knownModels, strings.ToLower(v)) {
		issues = append(issues, errorf(path, "Invalid model: %s. Must be one of: %s", v, strings.Join(knownModels, ", ")))
	}

	if len(strings.TrimSpace(body)) < minAgentBody {
		issues = append(issues, warnf(path, "Agent body seems too short. Include detailed instructions."))
	}

	return issues
}

// Hook checks a hook directory: a README with a security disclosure and a
// settings fragment with a hooks key.
func Hook(dir string) []Issue {
	var issues []Issue

	readme := filepath.Join(dir, "README.md")
	if data, err := os.ReadFile(readme); err != nil {
		issues = append(issues, errorf(dir, "Missing required README.md"))
	} else {
		content := strings.ToLower(string(data))
		if !strings.Contains(content, "security") {
			issues = append(issues, errorf(readme, "README.md must include security disclosure section"))
		}
		if !strings.Contains(content, "security level") {
			issues = append(issues, errorf(readme, "README.md must specify security level (LOW/MEDIUM/HIGH)"))
		}
	}

	settings := filepath.Join(dir, "settings.json")
	data, err := os.ReadFile(settings)
	if err != nil {
		return append(issues, errorf(dir, "Missing required settings.json"))
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return append(issues, errorf(settings, "Invalid JSON: %v", err))
	}
	if _, ok := doc[sharedconfig.HooksKey]; !ok {
		issues = append(issues, errorf(settings, "settings.json must contain 'hooks' key"))
	}
	return issues
}

// Command checks a slash-command markdown file.
func Command(path string) []Issue {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Issue{errorf(path, "Cannot read command: %v", err)}
	}

	meta, body := parseFrontmatter(string(data))
	if meta == nil {
		return []Issue{errorf(path, "Command must start with YAML frontmatter (---)")}
	}

	var issues []Issue
	if _, ok := meta["description"]; !ok {
		issues = append(issues, errorf(path, "Missing required 'description' field in frontmatter"))
	}
	if len(strings.TrimSpace(body)) < minCommandBody {
		issues = append(issues, warnf(path, "Command body seems too short. Include instructions."))
	}
	return issues
}

// MCPPreset checks an MCP preset file.
func MCPPreset(path string) []Issue {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Issue{errorf(path, "MCP preset not found")}
	}
	if err != nil {
		return []Issue{errorf(path, "Cannot read MCP preset: %v", err)}
	}
	doc, err := sharedconfig.Decode(path, data)
	if err != nil {
		return []Issue{errorf(path, "Invalid JSON: %v", err)}
	}
	return PresetDocument(path, doc)
}
