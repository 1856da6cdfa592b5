// Package render writes the assistant integration files for a resolved
// configuration: .claude/settings.json with hooks and analytics, .mcp.json
// with MCP servers, one .claude/commands/<name>.md per slash command and a
// CLAUDE.md overview. Existing files are only replaced when forced.
package render
