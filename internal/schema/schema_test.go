package schema

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustDefault(t *testing.T) *AnswerSchema {
	t.Helper()
	s, err := Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	return s
}

func TestDefault_Loads(t *testing.T) {
	s := mustDefault(t)

	if s.SchemaVersion == "" {
		t.Error("expected schema_version to be set")
	}
	for _, id := range []string{"common", "javascript-typescript", "python", "elixir"} {
		if _, ok := s.Language(id); !ok {
			t.Errorf("expected language %q in built-in catalog", id)
		}
	}
	for _, id := range []string{"preToolUse", "postToolUse"} {
		if _, ok := s.Hook(id); !ok {
			t.Errorf("expected hook %q in built-in catalog", id)
		}
	}
}

func TestLookups_IgnoreCase(t *testing.T) {
	s := mustDefault(t)

	tests := []struct {
		name string
		find func() (string, bool)
		want string
	}{
		{"language upper", func() (string, bool) {
			l, ok := s.Language("ELIXIR")
			if !ok {
				return "", false
			}
			return l.ID, true
		}, "elixir"},
		{"hook mixed case", func() (string, bool) {
			h, ok := s.Hook(" PreToolUse ")
			if !ok {
				return "", false
			}
			return h.ID, true
		}, "preToolUse"},
		{"mcp upper", func() (string, bool) {
			m, ok := s.MCP("Phoenix-Server")
			if !ok {
				return "", false
			}
			return m.ID, true
		}, "phoenix-server"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.find()
			if !ok {
				t.Fatal("lookup failed")
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLanguage_Framework(t *testing.T) {
	s := mustDefault(t)
	common, _ := s.Language("common")
	elixir, _ := s.Language("elixir")

	if _, ok := common.Framework("none"); !ok {
		t.Error("none must be compatible with every language")
	}
	if _, ok := common.Framework(""); !ok {
		t.Error("empty framework must be compatible with every language")
	}
	if _, ok := common.Framework("phoenix"); ok {
		t.Error("common declares no frameworks; phoenix must be rejected")
	}
	if f, ok := elixir.Framework("Phoenix"); !ok || f.ID != "phoenix" {
		t.Errorf("elixir.Framework(Phoenix) = %v, %v", f, ok)
	}

	if diff := cmp.Diff([]string{"phoenix", "none"}, elixir.FrameworkIDs()); diff != "" {
		t.Errorf("FrameworkIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestMCPsFor(t *testing.T) {
	s := mustDefault(t)

	ids := func(ms []MCPServer) []string {
		out := make([]string, len(ms))
		for i, m := range ms {
			out[i] = m.ID
		}
		return out
	}

	tests := []struct {
		language, framework string
		want                []string
	}{
		{"elixir", "phoenix", []string{"github", "filesystem", "memory", "elixir-ls", "phoenix-server"}},
		{"elixir", "none", []string{"github", "filesystem", "memory", "elixir-ls"}},
		{"common", "none", []string{"github", "filesystem", "memory"}},
		{"javascript-typescript", "nextjs", []string{"github", "filesystem", "memory", "typescript-lsp", "nextjs-devtools"}},
	}

	for _, tt := range tests {
		t.Run(tt.language+"/"+tt.framework, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ids(s.MCPsFor(tt.language, tt.framework))); diff != "" {
				t.Errorf("MCPsFor mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_InvalidCatalog(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing languages", "schema_version: \"1.0.0\"\nhooks: []\nmcps: []\n"},
		{"hook without command", `schema_version: "1.0.0"
languages: [{id: go, name: Go}]
hooks: [{id: stop, event: Stop}]
mcps: []
`},
		{"bad id pattern", `schema_version: "1.0.0"
languages: [{id: "has space", name: X}]
hooks: []
mcps: []
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "test")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if len(verr.Issues) == 0 {
				t.Error("expected at least one issue")
			}
		})
	}
}

func TestParse_CrossReferenceErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"duplicate language", `schema_version: "1.0.0"
languages: [{id: go, name: Go}, {id: GO, name: Go again}]
hooks: []
mcps: []
`, "duplicate language"},
		{"mcp unknown language", `schema_version: "1.0.0"
languages: [{id: go, name: Go}]
hooks: []
mcps: [{id: x, command: x, languages: [cobol]}]
`, "unknown language"},
		{"reserved framework", `schema_version: "1.0.0"
languages: [{id: go, name: Go, frameworks: [{id: none, name: None}]}]
hooks: []
mcps: []
`, "reserved"},
		{"bad schema version", `schema_version: "one"
languages: [{id: go, name: Go}]
hooks: []
mcps: []
`, "invalid schema_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "test")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `schema_version: "2.0.0"
languages:
  - id: zig
    name: Zig
hooks:
  - id: stop
    event: Stop
    command: "true"
mcps: []
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff([]string{"zig"}, s.LanguageIDs()); diff != "" {
		t.Errorf("LanguageIDs mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing catalog file")
	}
}

func TestCheckRequires(t *testing.T) {
	s := &AnswerSchema{SchemaVersion: "1.0.0", Requires: ">= 1.2.0"}

	tests := []struct {
		version string
		wantErr bool
	}{
		{"1.2.0", false},
		{"v1.3.1", false},
		{"1.1.9", true},
		{"dev", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := s.CheckRequires(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckRequires(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Answers(t *testing.T) {
	valid := "language: elixir\nframework: phoenix\nhooks: [preToolUse]\nconfirm: true\n"
	res, err := Validate(DocumentAnswers, []byte(valid))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected valid answers, got issues: %v", res.Issues)
	}

	invalid := "framework: phoenix\nhooks: preToolUse\nbogus: 1\n"
	res, err = Validate(DocumentAnswers, []byte(invalid))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Valid {
		t.Fatal("expected invalid answers")
	}
	if len(res.Issues) < 2 {
		t.Errorf("expected several issues, got %v", res.Issues)
	}
}

func TestValidate_JSONInput(t *testing.T) {
	res, err := Validate(DocumentAnswers, []byte(`{"language": "go", "analytics": true}`))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected JSON answers to validate, got %v", res.Issues)
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		loc  []string
		want string
	}{
		{nil, ""},
		{[]string{"language"}, "language"},
		{[]string{"hooks", "0"}, "hooks[0]"},
		{[]string{"languages", "2", "frameworks", "0", "id"}, "languages[2].frameworks[0].id"},
	}
	for _, tt := range tests {
		if got := fieldPath(tt.loc); got != tt.want {
			t.Errorf("fieldPath(%q) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}

func TestValidate_IssuePaths(t *testing.T) {
	res, err := Validate(DocumentAnswers, []byte("hooks: [1]\n"))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Valid {
		t.Fatal("expected invalid answers")
	}
	found := false
	for _, issue := range res.Issues {
		if issue.Path == "hooks[0]" {
			found = true
		}
	}
	if !found {
		t.Errorf("no issue reported at hooks[0]: %v", res.Issues)
	}
}
