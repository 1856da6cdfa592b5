package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/assistkit/assistkit/internal/branding"
	"github.com/assistkit/assistkit/internal/schema"
	"github.com/assistkit/assistkit/internal/setup"
	"github.com/rs/zerolog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	SettingsFile = ".claude/settings.json"
	MCPFile      = ".mcp.json"
	CommandsDir  = ".claude/commands"
	OverviewFile = "CLAUDE.md"

	// TelemetryEnv is set in settings.json when analytics is enabled.
	TelemetryEnv = "CLAUDE_CODE_ENABLE_TELEMETRY"
)

// ErrExists is returned when a planned file already exists and Force is off.
var ErrExists = errors.New("files already exist")

var commandName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Options controls how files are written.
type Options struct {
	Force  bool // replace existing files
	DryRun bool // plan only, write nothing
	Logger *zerolog.Logger
}

// File is one planned output file. Path is slash-separated and relative to
// the project root.
type File struct {
	Path    string
	Content []byte
}

// Result holds the outcome of a render.
type Result struct {
	Root     string
	Files    []string // created or replaced
	Updated  []string // existing files amended, e.g. .gitignore
	Warnings []string
	DryRun   bool
}

type templateData struct {
	ProjectName   string
	Tool          string
	SchemaVersion string
	LanguageName  string
	FrameworkName string
	HasFramework  bool
	Description   string
	Commands      []schema.Command
	Hooks         []schema.Hook
	MCPs          []schema.MCPServer
	Analytics     bool
	TelemetryEnv  string
}

type hookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

type hookGroup struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []hookCommand `json:"hooks"`
}

type settingsDoc struct {
	Hooks map[string][]hookGroup `json:"hooks,omitempty"`
	Env   map[string]string      `json:"env,omitempty"`
}

type mcpServer struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

type mcpDoc struct {
	MCPServers map[string]mcpServer `json:"mcpServers"`
}

// Plan computes the files for cfg without touching the filesystem. The
// returned warnings describe commands rendered without a catalog
// description or dropped as duplicates.
func Plan(s *schema.AnswerSchema, cfg *setup.TemplateConfig, projectName string) ([]File, []string, error) {
	lang, ok := s.Language(cfg.Language)
	if !ok {
		return nil, nil, fmt.Errorf("language %q is not in the catalog", cfg.Language)
	}
	fw, ok := lang.Framework(cfg.Framework)
	if !ok {
		return nil, nil, fmt.Errorf("framework %q is not in the catalog for %s", cfg.Framework, lang.ID)
	}

	data := templateData{
		ProjectName:   projectName,
		Tool:          branding.DisplayName(),
		SchemaVersion: cfg.SchemaVersion,
		LanguageName:  lang.Name,
		FrameworkName: fw.Name,
		HasFramework:  fw.ID != schema.FrameworkNone,
		Analytics:     cfg.Analytics,
		TelemetryEnv:  TelemetryEnv,
	}

	var warnings []string
	seen := map[string]bool{}
	for _, name := range cfg.Commands {
		if !commandName.MatchString(name) {
			return nil, nil, fmt.Errorf("invalid command name %q: use letters, digits, '.', '_' or '-'", name)
		}
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("command %q listed more than once; rendered once", name))
			continue
		}
		seen[name] = true

		cmd := schema.Command{ID: name}
		if c, ok := lang.Command(name); ok {
			cmd.Description = c.Description
		} else {
			cmd.Description = fmt.Sprintf("Run the %s task for this project.", name)
			warnings = append(warnings, fmt.Sprintf("command %q is not a suggested %s command; using a generic description", name, lang.ID))
		}
		data.Commands = append(data.Commands, cmd)
	}
	for _, id := range cfg.Hooks {
		h, ok := s.Hook(id)
		if !ok {
			return nil, nil, fmt.Errorf("hook %q is not in the catalog", id)
		}
		data.Hooks = append(data.Hooks, *h)
	}
	for _, id := range cfg.MCPs {
		m, ok := s.MCP(id)
		if !ok {
			return nil, nil, fmt.Errorf("MCP server %q is not in the catalog", id)
		}
		data.MCPs = append(data.MCPs, *m)
	}

	var files []File

	if len(data.Hooks) > 0 || data.Analytics {
		content, err := encodeJSON(buildSettings(data))
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s: %w", SettingsFile, err)
		}
		files = append(files, File{Path: SettingsFile, Content: content})
	}

	if len(data.MCPs) > 0 {
		doc := mcpDoc{MCPServers: make(map[string]mcpServer, len(data.MCPs))}
		for _, m := range data.MCPs {
			doc.MCPServers[m.ID] = mcpServer{Command: m.Command, Args: m.Args}
		}
		content, err := encodeJSON(doc)
		if err != nil {
			return nil, nil, fmt.Errorf("encoding %s: %w", MCPFile, err)
		}
		files = append(files, File{Path: MCPFile, Content: content})
	}

	for _, cmd := range data.Commands {
		d := data
		d.Description = cmd.Description
		content, err := execute("command.md.tmpl", d)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, File{Path: path.Join(CommandsDir, cmd.ID+".md"), Content: content})
	}

	content, err := execute("CLAUDE.md.tmpl", data)
	if err != nil {
		return nil, nil, err
	}
	files = append(files, File{Path: OverviewFile, Content: content})

	return files, warnings, nil
}

// Render writes the files for cfg under root. Without opts.Force it fails
// with ErrExists before writing anything if any planned file exists. With
// opts.DryRun it reports the planned files and writes nothing.
func Render(s *schema.AnswerSchema, cfg *setup.TemplateConfig, root string, opts Options) (*Result, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	files, warnings, err := Plan(s, cfg, filepath.Base(abs))
	if err != nil {
		return nil, err
	}

	result := &Result{Root: abs, Warnings: warnings, DryRun: opts.DryRun}

	var existing []string
	for _, f := range files {
		result.Files = append(result.Files, f.Path)
		if _, err := os.Stat(filepath.Join(abs, filepath.FromSlash(f.Path))); err == nil {
			existing = append(existing, f.Path)
		}
	}

	ignoreLog := false
	if len(cfg.Hooks) > 0 && isGitProject(abs) {
		has, err := gitignoreHas(abs, HookLog)
		if err != nil {
			return nil, err
		}
		if !has {
			ignoreLog = true
			result.Updated = append(result.Updated, ".gitignore")
		}
	}

	if opts.DryRun {
		for _, p := range existing {
			if opts.Force {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s exists and would be overwritten", p))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%s exists; rerun with --force to overwrite", p))
			}
		}
		return result, nil
	}

	if len(existing) > 0 && !opts.Force {
		return nil, fmt.Errorf("%w in %s: %s (use --force to overwrite)", ErrExists, abs, strings.Join(existing, ", "))
	}

	for _, f := range files {
		outPath := filepath.Join(abs, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(outPath, f.Content, 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		log.Debug().Str("file", f.Path).Int("bytes", len(f.Content)).Msg("wrote file")
	}

	if ignoreLog {
		if err := addToGitignore(abs, HookLog); err != nil {
			return nil, err
		}
		log.Debug().Str("entry", HookLog).Msg("updated .gitignore")
	}

	return result, nil
}

func buildSettings(data templateData) settingsDoc {
	var doc settingsDoc
	if len(data.Hooks) > 0 {
		doc.Hooks = map[string][]hookGroup{}
	}
	for _, h := range data.Hooks {
		groups := doc.Hooks[h.Event]
		idx := -1
		for i := range groups {
			if groups[i].Matcher == h.Matcher {
				idx = i
				break
			}
		}
		if idx < 0 {
			groups = append(groups, hookGroup{Matcher: h.Matcher})
			idx = len(groups) - 1
		}
		groups[idx].Hooks = append(groups[idx].Hooks, hookCommand{Type: "command", Command: h.Command})
		doc.Hooks[h.Event] = groups
	}
	if data.Analytics {
		doc.Env = map[string]string{TelemetryEnv: "1"}
	}
	return doc
}

// encodeJSON indents with two spaces and leaves shell characters such as
// '>' and '&' unescaped.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func execute(name string, data templateData) ([]byte, error) {
	tmplBytes, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tmpl, err := template.New(name).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
