// Package validate checks extension components against the rule table each
// kind must satisfy before it is published: SKILL.md frontmatter for skills,
// agent and command frontmatter, hook security disclosures, and MCP server
// descriptors. MCP presets are checked against an embedded JSON Schema that
// the installer also enforces before it writes a server entry.
package validate
