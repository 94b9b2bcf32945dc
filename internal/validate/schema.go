package validate

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/always-further/claude-extensions/internal/sharedconfig"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/mcp-preset.schema.json
var presetSchemaBytes []byte

var (
	presetSchema     *jsonschema.Schema
	presetSchemaOnce sync.Once
	presetSchemaErr  error
)

func getPresetSchema() (*jsonschema.Schema, error) {
	presetSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(presetSchemaBytes))
		if err != nil {
			presetSchemaErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("mcp-preset.schema.json", doc); err != nil {
			presetSchemaErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		presetSchema, presetSchemaErr = c.Compile("mcp-preset.schema.json")
		if presetSchemaErr != nil {
			presetSchemaErr = fmt.Errorf("compiling schema: %w", presetSchemaErr)
		}
	})
	return presetSchema, presetSchemaErr
}

// PresetDocument checks a decoded MCP preset: it must have an mcpServers
// object, and every server must name a command or a url, a url when its
// transport is "http", and a command when its transport is "stdio".
func PresetDocument(name string, doc sharedconfig.Document) []Issue {
	schema, err := getPresetSchema()
	if err != nil {
		return []Issue{errorf(name, "loading preset schema: %v", err)}
	}

	err = schema.Validate(map[string]any(doc))
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []Issue{errorf(name, "%v", err)}
	}

	var issues []Issue
	collectIssues(name, ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, errorf(name, "%s", ve.Error()))
	}
	return dedupe(issues)
}

// collectIssues walks the error tree and keeps leaf errors, which carry the
// specific property that failed.
func collectIssues(name string, ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(name, cause, issues)
		}
		return
	}
	if ve.ErrorKind == nil {
		return
	}

	keyword := ""
	if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
		keyword = kw[len(kw)-1]
	}
	switch keyword {
	case "", "allOf", "anyOf", "oneOf", "$ref", "then", "else":
		return
	}

	msg := ve.ErrorKind.LocalizedString(printer)
	loc := ve.InstanceLocation
	if len(loc) >= 2 && loc[0] == sharedconfig.MCPServersKey {
		msg = fmt.Sprintf("Server '%s': %s", loc[1], msg)
		if len(loc) > 2 {
			msg += " (at /" + strings.Join(loc[2:], "/") + ")"
		}
	}
	*issues = append(*issues, errorf(name, "%s", msg))
}

func dedupe(issues []Issue) []Issue {
	seen := make(map[string]bool, len(issues))
	out := issues[:0]
	for _, i := range issues {
		if !seen[i.Message] {
			seen[i.Message] = true
			out = append(out, i)
		}
	}
	return out
}
