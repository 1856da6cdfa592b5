// Package setup is the configuration resolution engine behind `assistkit init`.
//
// Flow asks the ordered setup questions (language, framework, commands,
// hooks, MCP servers, analytics, confirmation), skipping any the caller
// already answered, and produces UserAnswers. Resolve validates those
// answers against a schema.AnswerSchema and returns the normalized
// TemplateConfig handed to the renderer. Resolve is pure; Flow only talks to
// its prompt.Driver.
package setup
