package sharedconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/always-further/claude-extensions/internal/component"
)

// Top-level keys owned by the installer.
const (
	HooksKey      = "hooks"
	MCPServersKey = "mcpServers"
)

// Document is a decoded JSON object. Numbers decode as json.Number so values
// the installer does not touch are written back unchanged.
type Document map[string]any

// Load reads the JSON object at path. A missing file yields an empty
// Document; invalid JSON or a non-object top level is ErrMalformedConfig.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return nil, component.IOError("reading", path, err)
	}
	return Decode(path, data)
}

// Decode parses data as a JSON object. name is used in error messages.
func Decode(name string, data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", component.ErrMalformedConfig, name, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: %s: unexpected data after top-level object", component.ErrMalformedConfig, name)
	}
	if doc == nil {
		// The literal null.
		return nil, fmt.Errorf("%w: %s: top level must be an object", component.ErrMalformedConfig, name)
	}
	return doc, nil
}

// Save writes doc to path as two-space indented JSON, creating the parent
// directory if needed.
func Save(path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return component.IOError("creating directory for", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return component.IOError("writing", path, err)
	}
	return nil
}

// object returns doc[key] as a map, creating it when absent.
func (d Document) object(name, key string) (map[string]any, error) {
	raw, ok := d[key]
	if !ok || raw == nil {
		m := map[string]any{}
		d[key] = m
		return m, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q must be an object", component.ErrMalformedConfig, name, key)
	}
	return m, nil
}

// Servers returns the fragment's mcpServers entries, or nil when absent.
func (d Document) Servers(name string) (map[string]any, error) {
	raw, ok := d[MCPServersKey]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %q must be an object", component.ErrMalformedConfig, name, MCPServersKey)
	}
	return m, nil
}
