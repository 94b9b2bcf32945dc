package validate

import (
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// parseFrontmatter splits a markdown document into its YAML frontmatter and
// body. meta is nil when the document has no frontmatter block or it is not
// a YAML mapping.
func parseFrontmatter(content string) (meta map[string]any, body string) {
	if !strings.HasPrefix(content, "---") {
		return nil, content
	}
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return nil, content
	}
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil || meta == nil {
		return nil, content
	}
	return meta, parts[2]
}

// field returns meta[key] formatted as a string.
func field(meta map[string]any, key string) (string, bool) {
	v, ok := meta[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}
