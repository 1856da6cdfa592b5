// Package introspect builds the project context document (GEMINI.md by
// default) that summarizes a project's package.json and file tree for an AI
// assistant. The project root is always passed in explicitly.
package introspect
