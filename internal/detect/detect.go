// Package detect guesses a project's language and framework from the marker
// files in its root directory.
package detect

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/assistkit/assistkit/internal/setup"
	"github.com/tidwall/gjson"
)

const (
	// Generic is reported when no marker file is recognized.
	Generic = "common"
	// NoFramework is reported when a language is found but no framework hint is.
	NoFramework = "none"
)

// hint maps a framework id to the pattern that reveals it in a marker file.
type hint struct {
	framework string
	pattern   *regexp.Regexp
}

// marker is a file whose presence identifies a language.
type marker struct {
	language string
	files    []string
	hints    []hint
}

// Markers are checked in order; the first language with a marker file wins.
// package.json comes last since many non-JavaScript projects carry one for
// front-end tooling.
var markers = []marker{
	{
		language: "elixir",
		files:    []string{"mix.exs"},
		hints: []hint{
			{"phoenix", regexp.MustCompile(`\{\s*:phoenix\s*,`)},
		},
	},
	{
		language: "go",
		files:    []string{"go.mod"},
		hints: []hint{
			{"gin", regexp.MustCompile(`github\.com/gin-gonic/gin\b`)},
			{"echo", regexp.MustCompile(`github\.com/labstack/echo\b`)},
			{"fiber", regexp.MustCompile(`github\.com/gofiber/fiber\b`)},
		},
	},
	{
		language: "rust",
		files:    []string{"Cargo.toml"},
		hints: []hint{
			{"axum", regexp.MustCompile(`(?m)^\s*axum\s*=`)},
			{"actix", regexp.MustCompile(`(?m)^\s*actix-web\s*=`)},
		},
	},
	{
		language: "ruby",
		files:    []string{"Gemfile"},
		hints: []hint{
			{"rails", regexp.MustCompile(`(?m)^\s*gem\s+["']rails["']`)},
			{"sinatra", regexp.MustCompile(`(?m)^\s*gem\s+["']sinatra["']`)},
		},
	},
	{
		language: "python",
		files:    []string{"pyproject.toml", "requirements.txt", "setup.py", "Pipfile"},
		hints: []hint{
			{"django", regexp.MustCompile(`(?i)\bdjango\b`)},
			{"fastapi", regexp.MustCompile(`(?i)\bfastapi\b`)},
			{"flask", regexp.MustCompile(`(?i)\bflask\b`)},
		},
	},
}

// packageHints maps package.json dependency names to frameworks, most
// specific first: a Next.js app also depends on react.
var packageHints = []struct {
	dependency string
	framework  string
}{
	{"next", "nextjs"},
	{"@angular/core", "angular"},
	{"vue", "vue"},
	{"react", "react"},
	{"express", "node"},
	{"fastify", "node"},
	{"koa", "node"},
}

// Detect inspects root and reports the language and framework its marker
// files suggest. Unreadable files count as absent; when nothing is
// recognized the generic language is reported.
func Detect(root string) setup.ProjectInfo {
	for _, m := range markers {
		content, found := readMarkers(root, m.files)
		if !found {
			continue
		}
		return setup.ProjectInfo{
			DetectedLanguage:  m.language,
			DetectedFramework: matchHints(content, m.hints),
		}
	}

	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		return setup.ProjectInfo{
			DetectedLanguage:  "javascript-typescript",
			DetectedFramework: packageFramework(data),
		}
	}
	if hasAny(root, "tsconfig.json", "deno.json") {
		return setup.ProjectInfo{DetectedLanguage: "javascript-typescript", DetectedFramework: NoFramework}
	}

	return setup.ProjectInfo{DetectedLanguage: Generic, DetectedFramework: NoFramework}
}

// readMarkers concatenates the content of every marker file present in root.
func readMarkers(root string, files []string) (string, bool) {
	var b strings.Builder
	found := false
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		found = true
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String(), found
}

func matchHints(content string, hints []hint) string {
	for _, h := range hints {
		if h.pattern.MatchString(content) {
			return h.framework
		}
	}
	return NoFramework
}

func packageFramework(data []byte) string {
	if !gjson.ValidBytes(data) {
		return NoFramework
	}
	doc := gjson.ParseBytes(data)

	deps := map[string]bool{}
	for _, section := range []string{"dependencies", "devDependencies", "peerDependencies"} {
		doc.Get(section).ForEach(func(key, _ gjson.Result) bool {
			deps[key.String()] = true
			return true
		})
	}
	for _, h := range packageHints {
		if deps[h.dependency] {
			return h.framework
		}
	}
	return NoFramework
}

func hasAny(root string, names ...string) bool {
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}
