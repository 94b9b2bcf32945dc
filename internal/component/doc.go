// Package component defines the closed set of extension kinds (skill, agent,
// hook, command, MCP preset), the immutable Selection of component ids that a
// single run installs, and the error taxonomy shared by the installer, the
// backup manager, and the orchestrator.
package component
