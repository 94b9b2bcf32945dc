// Package sharedconfig reads, merges, and writes the JSON files that several
// components contribute to: the settings file (a "hooks" map from event name
// to handler list) and the MCP server registry (an "mcpServers" map from
// server name to descriptor).
//
// The two merges differ on purpose. Hook handlers are appended, so installing
// the same hook twice binds its handlers twice. MCP servers are replaced by
// name, so the last install wins.
package sharedconfig
