package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var builtinCatalog []byte

var (
	defaultOnce   sync.Once
	defaultSchema *AnswerSchema
	defaultErr    error
)

// Default returns the built-in catalog, parsed once per process.
func Default() (*AnswerSchema, error) {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = Parse(builtinCatalog, "built-in catalog")
	})
	return defaultSchema, defaultErr
}

// Load returns the catalog at path, or the built-in catalog when path is empty.
func Load(path string) (*AnswerSchema, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse validates catalog YAML against the catalog JSON schema, decodes it
// and builds the lookup indexes. source names the data in error messages.
func Parse(data []byte, source string) (*AnswerSchema, error) {
	result, err := Validate(DocumentCatalog, data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", source, err)
	}
	if !result.Valid {
		return nil, &ValidationError{Source: source, Issues: result.Issues}
	}

	var s AnswerSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	if _, err := parseSemver(s.SchemaVersion); err != nil {
		return nil, fmt.Errorf("%s: invalid schema_version %q: %w", source, s.SchemaVersion, err)
	}
	if err := s.index(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return &s, nil
}

// index builds the case-folded lookup maps and checks cross references.
func (s *AnswerSchema) index() error {
	s.langIndex = make(map[string]int, len(s.Languages))
	for i, l := range s.Languages {
		k := Key(l.ID)
		if _, dup := s.langIndex[k]; dup {
			return fmt.Errorf("duplicate language %q", l.ID)
		}
		s.langIndex[k] = i

		seen := make(map[string]bool)
		for _, f := range l.Frameworks {
			fk := Key(f.ID)
			if fk == FrameworkNone {
				return fmt.Errorf("language %q: framework %q is reserved", l.ID, f.ID)
			}
			if seen[fk] {
				return fmt.Errorf("language %q: duplicate framework %q", l.ID, f.ID)
			}
			seen[fk] = true
		}
	}

	s.hookIndex = make(map[string]int, len(s.Hooks))
	for i, h := range s.Hooks {
		k := Key(h.ID)
		if _, dup := s.hookIndex[k]; dup {
			return fmt.Errorf("duplicate hook %q", h.ID)
		}
		s.hookIndex[k] = i
	}

	s.mcpIndex = make(map[string]int, len(s.MCPs))
	for i, m := range s.MCPs {
		k := Key(m.ID)
		if _, dup := s.mcpIndex[k]; dup {
			return fmt.Errorf("duplicate mcp %q", m.ID)
		}
		s.mcpIndex[k] = i

		for _, lang := range m.Languages {
			if _, ok := s.langIndex[Key(lang)]; !ok {
				return fmt.Errorf("mcp %q: unknown language %q", m.ID, lang)
			}
		}
		for _, fw := range m.Frameworks {
			if !s.frameworkDeclared(fw) {
				return fmt.Errorf("mcp %q: unknown framework %q", m.ID, fw)
			}
		}
	}
	return nil
}

func (s *AnswerSchema) frameworkDeclared(id string) bool {
	for i := range s.Languages {
		if _, ok := s.Languages[i].Framework(id); ok {
			return true
		}
	}
	return false
}
