package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/assistkit/assistkit/internal/schema"
	"github.com/assistkit/assistkit/internal/setup"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  setup.ProjectInfo
	}{
		{
			name:  "empty directory",
			files: nil,
			want:  setup.ProjectInfo{DetectedLanguage: "common", DetectedFramework: "none"},
		},
		{
			name: "phoenix",
			files: map[string]string{
				"mix.exs": "defp deps do\n  [\n    {:phoenix, \"~> 1.7\"},\n    {:ecto_sql, \"~> 3.10\"}\n  ]\nend\n",
			},
			want: setup.ProjectInfo{DetectedLanguage: "elixir", DetectedFramework: "phoenix"},
		},
		{
			name:  "plain elixir",
			files: map[string]string{"mix.exs": "defp deps do\n  [{:jason, \"~> 1.4\"}]\nend\n"},
			want:  setup.ProjectInfo{DetectedLanguage: "elixir", DetectedFramework: "none"},
		},
		{
			name: "gin",
			files: map[string]string{
				"go.mod": "module example.com/api\n\ngo 1.22\n\nrequire github.com/gin-gonic/gin v1.10.0\n",
			},
			want: setup.ProjectInfo{DetectedLanguage: "go", DetectedFramework: "gin"},
		},
		{
			name: "echo v4",
			files: map[string]string{
				"go.mod": "module example.com/api\n\nrequire github.com/labstack/echo/v4 v4.11.0\n",
			},
			want: setup.ProjectInfo{DetectedLanguage: "go", DetectedFramework: "echo"},
		},
		{
			name:  "axum",
			files: map[string]string{"Cargo.toml": "[dependencies]\naxum = \"0.7\"\ntokio = { version = \"1\" }\n"},
			want:  setup.ProjectInfo{DetectedLanguage: "rust", DetectedFramework: "axum"},
		},
		{
			name:  "actix",
			files: map[string]string{"Cargo.toml": "[dependencies]\nactix-web = \"4\"\n"},
			want:  setup.ProjectInfo{DetectedLanguage: "rust", DetectedFramework: "actix"},
		},
		{
			name:  "rails",
			files: map[string]string{"Gemfile": "source \"https://rubygems.org\"\ngem \"rails\", \"~> 7.1\"\n"},
			want:  setup.ProjectInfo{DetectedLanguage: "ruby", DetectedFramework: "rails"},
		},
		{
			name:  "sinatra with single quotes",
			files: map[string]string{"Gemfile": "gem 'sinatra'\n"},
			want:  setup.ProjectInfo{DetectedLanguage: "ruby", DetectedFramework: "sinatra"},
		},
		{
			name:  "django requirements",
			files: map[string]string{"requirements.txt": "Django==5.0\npsycopg2\n"},
			want:  setup.ProjectInfo{DetectedLanguage: "python", DetectedFramework: "django"},
		},
		{
			name: "fastapi pyproject",
			files: map[string]string{
				"pyproject.toml": "[project]\ndependencies = [\"fastapi>=0.110\", \"uvicorn\"]\n",
			},
			want: setup.ProjectInfo{DetectedLanguage: "python", DetectedFramework: "fastapi"},
		},
		{
			name:  "nextjs wins over react",
			files: map[string]string{"package.json": `{"dependencies":{"react":"18","next":"14"}}`},
			want:  setup.ProjectInfo{DetectedLanguage: "javascript-typescript", DetectedFramework: "nextjs"},
		},
		{
			name:  "angular",
			files: map[string]string{"package.json": `{"dependencies":{"@angular/core":"17"}}`},
			want:  setup.ProjectInfo{DetectedLanguage: "javascript-typescript", DetectedFramework: "angular"},
		},
		{
			name:  "express dev dependency",
			files: map[string]string{"package.json": `{"devDependencies":{"express":"4"}}`},
			want:  setup.ProjectInfo{DetectedLanguage: "javascript-typescript", DetectedFramework: "node"},
		},
		{
			name:  "invalid package.json",
			files: map[string]string{"package.json": `{"dependencies":`},
			want:  setup.ProjectInfo{DetectedLanguage: "javascript-typescript", DetectedFramework: "none"},
		},
		{
			name:  "tsconfig only",
			files: map[string]string{"tsconfig.json": `{}`},
			want:  setup.ProjectInfo{DetectedLanguage: "javascript-typescript", DetectedFramework: "none"},
		},
		{
			name: "language marker beats package.json",
			files: map[string]string{
				"Gemfile":      "gem \"rails\"\n",
				"package.json": `{"dependencies":{"react":"18"}}`,
			},
			want: setup.ProjectInfo{DetectedLanguage: "ruby", DetectedFramework: "rails"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got := Detect(root)
			if got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// Every id Detect can report must exist in the built-in catalog.
func TestDetectIDsExistInCatalog(t *testing.T) {
	s, err := schema.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	check := func(lang, fw string) {
		t.Helper()
		l, ok := s.Language(lang)
		if !ok {
			t.Errorf("language %q not in catalog", lang)
			return
		}
		if _, ok := l.Framework(fw); !ok {
			t.Errorf("framework %q not in catalog for %q", fw, lang)
		}
	}

	check(Generic, NoFramework)
	for _, m := range markers {
		check(m.language, NoFramework)
		for _, h := range m.hints {
			check(m.language, h.framework)
		}
	}
	for _, h := range packageHints {
		check("javascript-typescript", h.framework)
	}
}
