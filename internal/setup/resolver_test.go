package setup

import (
	"errors"
	"testing"

	"github.com/assistkit/assistkit/internal/schema"
	"github.com/google/go-cmp/cmp"
)

func testSchema(t *testing.T) *schema.AnswerSchema {
	t.Helper()
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("loading built-in catalog: %v", err)
	}
	return s
}

func elixirAnswers() UserAnswers {
	return UserAnswers{
		Language:  "elixir",
		Framework: "phoenix",
		Commands:  []string{},
		Hooks:     []string{"preToolUse", "postToolUse"},
		MCPs:      []string{"elixir-ls", "phoenix-server"},
		Analytics: false,
		Confirm:   true,
	}
}

func TestResolve_ElixirPhoenix(t *testing.T) {
	s := testSchema(t)

	cfg, err := Resolve(s, elixirAnswers())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := &TemplateConfig{
		Language:      "elixir",
		Framework:     "phoenix",
		Commands:      []string{},
		Hooks:         []string{"preToolUse", "postToolUse"},
		MCPs:          []string{"elixir-ls", "phoenix-server"},
		Analytics:     false,
		SchemaVersion: s.SchemaVersion,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("TemplateConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_NotConfirmed(t *testing.T) {
	a := elixirAnswers()
	a.Confirm = false

	cfg, err := Resolve(testSchema(t), a)
	if cfg != nil {
		t.Errorf("expected no config, got %+v", cfg)
	}
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("ConfigError must match ErrInvalidConfig")
	}
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*UserAnswers)
		wantKind  error
		wantField string
		wantValue string
	}{
		{
			name:      "unknown language",
			mutate:    func(a *UserAnswers) { a.Language = "cobol" },
			wantKind:  ErrUnknownLanguage,
			wantField: "language",
			wantValue: "cobol",
		},
		{
			name:      "empty language",
			mutate:    func(a *UserAnswers) { a.Language = "" },
			wantKind:  ErrUnknownLanguage,
			wantField: "language",
			wantValue: "",
		},
		{
			name:      "framework of another language",
			mutate:    func(a *UserAnswers) { a.Framework = "django" },
			wantKind:  ErrIncompatibleFramework,
			wantField: "framework",
			wantValue: "django",
		},
		{
			name: "framework on language without frameworks",
			mutate: func(a *UserAnswers) {
				a.Language = "common"
				a.Framework = "phoenix"
				a.MCPs = nil
			},
			wantKind:  ErrIncompatibleFramework,
			wantField: "framework",
			wantValue: "phoenix",
		},
		{
			name:      "unknown hook",
			mutate:    func(a *UserAnswers) { a.Hooks = []string{"preToolUse", "onDeploy"} },
			wantKind:  ErrUnknownHook,
			wantField: "hooks",
			wantValue: "onDeploy",
		},
		{
			name: "unknown hook wins over later failures",
			mutate: func(a *UserAnswers) {
				a.Hooks = []string{"bogus"}
				a.MCPs = []string{"nope"}
				a.Confirm = false
			},
			wantKind:  ErrUnknownHook,
			wantField: "hooks",
			wantValue: "bogus",
		},
		{
			name:      "unknown mcp",
			mutate:    func(a *UserAnswers) { a.MCPs = []string{"kubernetes"} },
			wantKind:  ErrUnknownOrIncompatibleMCP,
			wantField: "mcps",
			wantValue: "kubernetes",
		},
		{
			name:      "mcp for another language",
			mutate:    func(a *UserAnswers) { a.MCPs = []string{"gopls"} },
			wantKind:  ErrUnknownOrIncompatibleMCP,
			wantField: "mcps",
			wantValue: "gopls",
		},
		{
			name: "mcp for another framework",
			mutate: func(a *UserAnswers) {
				a.Framework = "none"
				a.MCPs = []string{"phoenix-server"}
			},
			wantKind:  ErrUnknownOrIncompatibleMCP,
			wantField: "mcps",
			wantValue: "phoenix-server",
		},
	}

	s := testSchema(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := elixirAnswers()
			tt.mutate(&a)

			cfg, err := Resolve(s, a)
			if cfg != nil {
				t.Errorf("expected no config on error, got %+v", cfg)
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("kind = %v, want %v", cerr.Kind, tt.wantKind)
			}
			if cerr.Field != tt.wantField || cerr.Value != tt.wantValue {
				t.Errorf("field/value = %s/%q, want %s/%q", cerr.Field, cerr.Value, tt.wantField, tt.wantValue)
			}
		})
	}
}

func TestResolve_Normalizes(t *testing.T) {
	a := UserAnswers{
		Language:  "Elixir",
		Framework: "PHOENIX",
		Commands:  []string{"test", "format", "test"},
		Hooks:     []string{"postToolUse", "PRETOOLUSE", "postToolUse"},
		MCPs:      []string{"Phoenix-Server", "github", "GitHub"},
		Analytics: true,
		Confirm:   true,
	}

	cfg, err := Resolve(testSchema(t), a)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if cfg.Language != "elixir" || cfg.Framework != "phoenix" {
		t.Errorf("language/framework = %s/%s, want elixir/phoenix", cfg.Language, cfg.Framework)
	}
	if diff := cmp.Diff([]string{"test", "format", "test"}, cfg.Commands); diff != "" {
		t.Errorf("commands must keep given order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"preToolUse", "postToolUse"}, cfg.Hooks); diff != "" {
		t.Errorf("hooks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"github", "phoenix-server"}, cfg.MCPs); diff != "" {
		t.Errorf("mcps mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Analytics {
		t.Error("analytics lost")
	}
}

func TestResolve_PartialAnswers(t *testing.T) {
	cfg, err := Resolve(testSchema(t), UserAnswers{Language: "go", Confirm: true})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := &TemplateConfig{
		Language:      "go",
		Framework:     "none",
		Commands:      []string{},
		Hooks:         []string{},
		MCPs:          []string{},
		SchemaVersion: cfg.SchemaVersion,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("TemplateConfig mismatch (-want +got):\n%s", diff)
	}

	// Confirm defaults to false.
	if _, err := Resolve(testSchema(t), UserAnswers{Language: "go"}); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("expected ErrNotConfirmed for omitted confirm, got %v", err)
	}
}

func TestResolve_NoneFrameworkAlwaysCompatible(t *testing.T) {
	s := testSchema(t)
	for _, lang := range s.LanguageIDs() {
		t.Run(lang, func(t *testing.T) {
			cfg, err := Resolve(s, UserAnswers{Language: lang, Framework: "none", Confirm: true})
			if err != nil {
				t.Fatalf("Resolve(%s/none): %v", lang, err)
			}
			if cfg.Framework != schema.FrameworkNone {
				t.Errorf("framework = %q", cfg.Framework)
			}
		})
	}
}

func TestResolve_DoesNotAliasInput(t *testing.T) {
	a := elixirAnswers()
	a.Commands = []string{"test"}

	cfg, err := Resolve(testSchema(t), a)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	a.Commands[0] = "changed"
	if cfg.Commands[0] != "test" {
		t.Error("TemplateConfig shares the caller's commands slice")
	}
}
