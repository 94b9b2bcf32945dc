package validate

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/always-further/claude-extensions/internal/component"
)

// All validates every component in the repository.
func All(repoRoot string) []Issue {
	var issues []Issue
	for _, kind := range component.AllKinds {
		for _, path := range componentPaths(repoRoot, kind) {
			issues = append(issues, check(kind, path)...)
		}
	}
	return issues
}

func componentPaths(repoRoot string, kind component.Kind) []string {
	base := filepath.Join(repoRoot, kind.Dir())
	var paths []string
	switch kind {
	case component.KindSkill, component.KindHook:
		entries, _ := os.ReadDir(base)
		for _, e := range entries {
			if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
				paths = append(paths, filepath.Join(base, e.Name()))
			}
		}
	case component.KindAgent, component.KindCommand:
		paths, _ = filepath.Glob(filepath.Join(base, "*.md"))
	case component.KindMCP:
		paths, _ = filepath.Glob(filepath.Join(base, "*", "*.json"))
	}
	sort.Strings(paths)
	return paths
}

func check(kind component.Kind, path string) []Issue {
	switch kind {
	case component.KindSkill:
		return Skill(path)
	case component.KindAgent:
		return Agent(path)
	case component.KindCommand:
		return Command(path)
	case component.KindHook:
		return Hook(path)
	case component.KindMCP:
		return MCPPreset(path)
	}
	return nil
}

// KindOf locates path inside the repository and returns the component it
// belongs to: its kind and the path the kind's validator expects (the
// component directory for skills and hooks, the file otherwise). ok is false
// for paths outside any component.
func KindOf(repoRoot, path string) (kind component.Kind, componentPath string, ok bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, "", false
	}
	root, err := filepath.Abs(repoRoot)
	if err != nil {
		return 0, "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return 0, "", false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) < 2 {
		return 0, "", false
	}
	for _, k := range component.AllKinds {
		if k.Dir() != parts[0] {
			continue
		}
		switch k {
		case component.KindSkill, component.KindHook:
			return k, filepath.Join(root, parts[0], parts[1]), true
		case component.KindAgent, component.KindCommand:
			if len(parts) == 2 && strings.HasSuffix(parts[1], ".md") {
				return k, abs, true
			}
		case component.KindMCP:
			if len(parts) == 3 && strings.HasSuffix(parts[2], ".json") {
				return k, abs, true
			}
		}
	}
	return 0, "", false
}

// Path validates the single component containing path. Paths that belong
// to no component produce a warning.
func Path(repoRoot, path string) []Issue {
	kind, componentPath, ok := KindOf(repoRoot, path)
	if !ok {
		return []Issue{warnf(path, "Unknown component type")}
	}
	return check(kind, componentPath)
}

// Paths validates each distinct component touched by paths. Paths that
// belong to no component or no longer exist are skipped.
func Paths(repoRoot string, paths []string) []Issue {
	type key struct {
		kind component.Kind
		path string
	}
	seen := make(map[key]bool)
	var issues []Issue
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(repoRoot, p)
		}
		kind, componentPath, ok := KindOf(repoRoot, p)
		if !ok || seen[key{kind, componentPath}] {
			continue
		}
		seen[key{kind, componentPath}] = true
		if _, err := os.Stat(componentPath); err != nil {
			continue
		}
		issues = append(issues, check(kind, componentPath)...)
	}
	return issues
}
