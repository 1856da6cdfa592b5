package schema

import (
	"strings"

	"golang.org/x/text/cases"
)

// FrameworkNone is the framework value meaning "no framework". It is
// compatible with every language.
const FrameworkNone = "none"

// AnswerSchema is the parsed, indexed answer catalog. It is read-only once
// returned by Parse.
type AnswerSchema struct {
	SchemaVersion string      `yaml:"schema_version" json:"schema_version"`
	Requires      string      `yaml:"requires,omitempty" json:"requires,omitempty"`
	Languages     []Language  `yaml:"languages" json:"languages"`
	Hooks         []Hook      `yaml:"hooks" json:"hooks"`
	MCPs          []MCPServer `yaml:"mcps" json:"mcps"`

	langIndex map[string]int
	hookIndex map[string]int
	mcpIndex  map[string]int
}

// Language is a supported project language.
type Language struct {
	ID         string      `yaml:"id" json:"id"`
	Name       string      `yaml:"name" json:"name"`
	Frameworks []Framework `yaml:"frameworks,omitempty" json:"frameworks,omitempty"`
	Commands   []Command   `yaml:"commands,omitempty" json:"commands,omitempty"`
}

// Framework is a framework declared compatible with its parent language.
type Framework struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Command is a suggested slash command for a language.
type Command struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
}

// Hook is a lifecycle point the generated integration can attach to.
type Hook struct {
	ID          string `yaml:"id" json:"id"`
	Event       string `yaml:"event" json:"event"`
	Matcher     string `yaml:"matcher,omitempty" json:"matcher,omitempty"`
	Description string `yaml:"description" json:"description"`
	Command     string `yaml:"command" json:"command"`
}

// MCPServer is an integration server. Empty Languages or Frameworks means
// the server is not restricted along that dimension.
type MCPServer struct {
	ID          string   `yaml:"id" json:"id"`
	Description string   `yaml:"description" json:"description"`
	Command     string   `yaml:"command" json:"command"`
	Args        []string `yaml:"args,omitempty" json:"args,omitempty"`
	Languages   []string `yaml:"languages,omitempty" json:"languages,omitempty"`
	Frameworks  []string `yaml:"frameworks,omitempty" json:"frameworks,omitempty"`
}

// Key returns the comparison key for an identifier: trimmed and case folded.
func Key(id string) string {
	return cases.Fold().String(strings.TrimSpace(id))
}

// Language looks up a language by identifier, ignoring case.
func (s *AnswerSchema) Language(id string) (*Language, bool) {
	i, ok := s.langIndex[Key(id)]
	if !ok {
		return nil, false
	}
	return &s.Languages[i], true
}

// Hook looks up a hook by identifier, ignoring case.
func (s *AnswerSchema) Hook(id string) (*Hook, bool) {
	i, ok := s.hookIndex[Key(id)]
	if !ok {
		return nil, false
	}
	return &s.Hooks[i], true
}

// MCP looks up an MCP server by identifier, ignoring case.
func (s *AnswerSchema) MCP(id string) (*MCPServer, bool) {
	i, ok := s.mcpIndex[Key(id)]
	if !ok {
		return nil, false
	}
	return &s.MCPs[i], true
}

// LanguageIDs returns every language identifier in catalog order.
func (s *AnswerSchema) LanguageIDs() []string {
	ids := make([]string, len(s.Languages))
	for i, l := range s.Languages {
		ids[i] = l.ID
	}
	return ids
}

// HookIDs returns every hook identifier in catalog order.
func (s *AnswerSchema) HookIDs() []string {
	ids := make([]string, len(s.Hooks))
	for i, h := range s.Hooks {
		ids[i] = h.ID
	}
	return ids
}

// MCPsFor returns the MCP servers usable with the given language and
// framework, in catalog order.
func (s *AnswerSchema) MCPsFor(language, framework string) []MCPServer {
	var out []MCPServer
	for _, m := range s.MCPs {
		if m.Supports(language, framework) {
			out = append(out, m)
		}
	}
	return out
}

// Framework looks up a framework of this language, ignoring case.
// FrameworkNone is always found.
func (l *Language) Framework(id string) (*Framework, bool) {
	k := Key(id)
	if k == "" || k == FrameworkNone {
		return &Framework{ID: FrameworkNone, Name: "None"}, true
	}
	for i := range l.Frameworks {
		if Key(l.Frameworks[i].ID) == k {
			return &l.Frameworks[i], true
		}
	}
	return nil, false
}

// FrameworkIDs returns the language's framework identifiers followed by
// FrameworkNone.
func (l *Language) FrameworkIDs() []string {
	ids := make([]string, 0, len(l.Frameworks)+1)
	for _, f := range l.Frameworks {
		ids = append(ids, f.ID)
	}
	return append(ids, FrameworkNone)
}

// CommandIDs returns the language's suggested command identifiers.
func (l *Language) CommandIDs() []string {
	ids := make([]string, len(l.Commands))
	for i, c := range l.Commands {
		ids[i] = c.ID
	}
	return ids
}

// Command looks up a suggested command by identifier, ignoring case.
func (l *Language) Command(id string) (*Command, bool) {
	k := Key(id)
	for i := range l.Commands {
		if Key(l.Commands[i].ID) == k {
			return &l.Commands[i], true
		}
	}
	return nil, false
}

// Supports reports whether the server can be used with the language and
// framework.
func (m *MCPServer) Supports(language, framework string) bool {
	if len(m.Languages) > 0 && !containsKey(m.Languages, language) {
		return false
	}
	if len(m.Frameworks) > 0 && !containsKey(m.Frameworks, framework) {
		return false
	}
	return true
}

func containsKey(list []string, id string) bool {
	k := Key(id)
	for _, v := range list {
		if Key(v) == k {
			return true
		}
	}
	return false
}
