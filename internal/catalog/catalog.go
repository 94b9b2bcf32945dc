package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/always-further/claude-extensions/internal/component"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FileName is the catalog document at the repository root.
const FileName = "catalog.json"

// SupportedVersions is the range of catalog format versions this build reads.
const SupportedVersions = "^1"

//go:embed schema/catalog.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	schemaOnce     sync.Once
	schemaErr      error
)

// Entry describes one component in the catalog.
type Entry struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	SecurityLevel string `json:"securityLevel,omitempty"`
	Path          string `json:"path,omitempty"`
}

// Title returns the display name, falling back to the id.
func (e Entry) Title() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Components groups catalog entries by kind. MCP presets are keyed by
// flavor ("claude-code", "claude-desktop").
type Components struct {
	Skills   []Entry            `json:"skills,omitempty"`
	Agents   []Entry            `json:"agents,omitempty"`
	Hooks    []Entry            `json:"hooks,omitempty"`
	Commands []Entry            `json:"commands,omitempty"`
	MCP      map[string][]Entry `json:"mcp,omitempty"`
}

// Preset is a named selection.
type Preset struct {
	ID          string   `json:"id"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Agents      []string `json:"agents,omitempty"`
	Hooks       []string `json:"hooks,omitempty"`
	Commands    []string `json:"commands,omitempty"`
	MCP         []string `json:"mcp,omitempty"`
}

// Selection converts the preset into an installable selection.
func (p Preset) Selection() component.Selection {
	return component.NewSelection(map[component.Kind][]string{
		component.KindSkill:   p.Skills,
		component.KindAgent:   p.Agents,
		component.KindHook:    p.Hooks,
		component.KindCommand: p.Commands,
		component.KindMCP:     p.MCP,
	})
}

// Catalog is the decoded catalog.json document.
type Catalog struct {
	Version    string     `json:"version,omitempty"`
	Components Components `json:"components"`
	Presets    []Preset   `json:"presets,omitempty"`
}

// Load reads catalog.json from repoRoot. A missing file yields an empty
// catalog.
func Load(repoRoot string) (*Catalog, error) {
	path := filepath.Join(repoRoot, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Catalog{}, nil
	}
	if err != nil {
		return nil, component.IOError("reading", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", component.ErrMalformedConfig, FileName, err)
	}
	if err := checkVersion(c.Version); err != nil {
		return nil, err
	}
	return &c, nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %s: invalid version %q: %v", component.ErrMalformedConfig, FileName, v, err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(version) {
		return fmt.Errorf("%w: %s: version %s is not supported (want %s)",
			component.ErrMalformedConfig, FileName, version, SupportedVersions)
	}
	return nil
}

func validate(data []byte) error {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("catalog.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("catalog.schema.json")
	})
	if schemaErr != nil {
		return fmt.Errorf("compiling catalog schema: %w", schemaErr)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", component.ErrMalformedConfig, FileName, err)
	}
	if err := compiledSchema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return fmt.Errorf("%w: %s: %s", component.ErrMalformedConfig, FileName, firstLeaf(ve))
		}
		return fmt.Errorf("%w: %s: %v", component.ErrMalformedConfig, FileName, err)
	}
	return nil
}

// firstLeaf returns the deepest first cause, which names the failing property.
func firstLeaf(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return "/" + strings.Join(ve.InstanceLocation, "/") + ": " + ve.Error()
}

// Entries returns the catalog entries for kind. For MCP presets the
// entries of the given flavor are returned.
func (c *Catalog) Entries(kind component.Kind, mcpFlavor string) []Entry {
	switch kind {
	case component.KindSkill:
		return c.Components.Skills
	case component.KindAgent:
		return c.Components.Agents
	case component.KindHook:
		return c.Components.Hooks
	case component.KindCommand:
		return c.Components.Commands
	case component.KindMCP:
		return c.Components.MCP[mcpFlavor]
	}
	return nil
}

// Hook returns the hook entry with the given id.
func (c *Catalog) Hook(id string) (Entry, bool) {
	for _, h := range c.Components.Hooks {
		if h.ID == id {
			return h, true
		}
	}
	return Entry{}, false
}

// Preset returns the preset named name, or ErrInvalidSelection.
func (c *Catalog) Preset(name string) (Preset, error) {
	for _, p := range c.Presets {
		if p.ID == name {
			return p, nil
		}
	}
	ids := make([]string, 0, len(c.Presets))
	for _, p := range c.Presets {
		ids = append(ids, p.ID)
	}
	return Preset{}, fmt.Errorf("%w: preset %q not found (available: %s)",
		component.ErrInvalidSelection, name, strings.Join(ids, ", "))
}
