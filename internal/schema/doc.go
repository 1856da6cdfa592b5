// Package schema holds the answer catalog: the legal values for every
// configurable dimension of an assistant integration (languages and their
// frameworks, suggested commands, lifecycle hooks, MCP servers) and the
// compatibility rules between them.
//
// The built-in catalog is embedded from catalog.yaml. A user catalog can be
// loaded instead; both are checked against the embedded JSON schemas before
// use. Answers files given to `assistkit init --answers` are validated here
// as well.
package schema
