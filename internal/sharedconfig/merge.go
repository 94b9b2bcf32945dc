package sharedconfig

import (
	"fmt"
	"slices"

	"github.com/always-further/claude-extensions/internal/component"
)

// MergeHooks appends each event's handlers from fragment onto dst's list
// for that event. Existing handlers are kept, duplicates included. name
// labels dst in errors.
func MergeHooks(dst, fragment Document, name string) error {
	hooks, err := dst.object(name, HooksKey)
	if err != nil {
		return err
	}

	raw, ok := fragment[HooksKey]
	if !ok || raw == nil {
		return nil
	}
	events, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: hook fragment: %q must be an object", component.ErrMalformedConfig, HooksKey)
	}

	for event, handlers := range events {
		add, ok := handlers.([]any)
		if !ok {
			return fmt.Errorf("%w: hook fragment: handlers for %q must be a list", component.ErrMalformedConfig, event)
		}

		var existing []any
		if cur, ok := hooks[event]; ok && cur != nil {
			existing, ok = cur.([]any)
			if !ok {
				return fmt.Errorf("%w: %s: handlers for %q must be a list", component.ErrMalformedConfig, name, event)
			}
		}
		hooks[event] = append(existing, add...)
	}
	return nil
}

// MergeServers copies every server in fragment into dst's mcpServers,
// replacing entries with the same name. It returns the merged names.
func MergeServers(dst, fragment Document, name string) ([]string, error) {
	servers, err := dst.object(name, MCPServersKey)
	if err != nil {
		return nil, err
	}
	incoming, err := fragment.Servers("mcp preset")
	if err != nil {
		return nil, err
	}

	merged := make([]string, 0, len(incoming))
	for server, desc := range incoming {
		servers[server] = desc
		merged = append(merged, server)
	}
	slices.Sort(merged)
	return merged, nil
}
