package setup

import (
	"fmt"
	"strings"

	"github.com/assistkit/assistkit/internal/schema"
)

// Resolve validates answers against the catalog and returns the normalized
// configuration. Checks run in a fixed order (language, framework, hooks,
// MCP servers, confirmation) and the first failure is returned as a
// *ConfigError; no configuration is returned alongside an error.
//
// Identifiers match case-insensitively and come back in catalog spelling.
// Hooks and MCP servers are deduplicated and ordered as the catalog declares
// them. Commands are copied in the order given. An empty framework resolves
// to schema.FrameworkNone.
func Resolve(s *schema.AnswerSchema, a UserAnswers) (*TemplateConfig, error) {
	lang, ok := s.Language(a.Language)
	if !ok {
		return nil, &ConfigError{
			Kind:   ErrUnknownLanguage,
			Field:  "language",
			Value:  a.Language,
			Detail: "known: " + strings.Join(s.LanguageIDs(), ", "),
		}
	}

	fw, ok := lang.Framework(a.Framework)
	if !ok {
		return nil, &ConfigError{
			Kind:   ErrIncompatibleFramework,
			Field:  "framework",
			Value:  a.Framework,
			Detail: fmt.Sprintf("%s supports %s", lang.ID, strings.Join(lang.FrameworkIDs(), ", ")),
		}
	}

	hookSet := make(map[string]bool, len(a.Hooks))
	for _, id := range a.Hooks {
		h, ok := s.Hook(id)
		if !ok {
			return nil, &ConfigError{Kind: ErrUnknownHook, Field: "hooks", Value: id}
		}
		hookSet[h.ID] = true
	}

	mcpSet := make(map[string]bool, len(a.MCPs))
	for _, id := range a.MCPs {
		m, ok := s.MCP(id)
		if !ok {
			return nil, &ConfigError{Kind: ErrUnknownOrIncompatibleMCP, Field: "mcps", Value: id}
		}
		if !m.Supports(lang.ID, fw.ID) {
			return nil, &ConfigError{
				Kind:   ErrUnknownOrIncompatibleMCP,
				Field:  "mcps",
				Value:  id,
				Detail: fmt.Sprintf("not available for %s/%s", lang.ID, fw.ID),
			}
		}
		mcpSet[m.ID] = true
	}

	if !a.Confirm {
		return nil, &ConfigError{Kind: ErrNotConfirmed, Field: "confirm", Value: "false"}
	}

	cfg := &TemplateConfig{
		Language:      lang.ID,
		Framework:     fw.ID,
		Commands:      append([]string{}, a.Commands...),
		Hooks:         []string{},
		MCPs:          []string{},
		Analytics:     a.Analytics,
		SchemaVersion: s.SchemaVersion,
	}
	for _, h := range s.Hooks {
		if hookSet[h.ID] {
			cfg.Hooks = append(cfg.Hooks, h.ID)
		}
	}
	for _, m := range s.MCPs {
		if mcpSet[m.ID] {
			cfg.MCPs = append(cfg.MCPs, m.ID)
		}
	}
	return cfg, nil
}
