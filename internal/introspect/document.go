package introspect

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultAssistant is the assistant the document targets when none is given.
const DefaultAssistant = "gemini"

var assistantName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// CheckAssistant reports whether a can be used in the document file name.
// Blank selects DefaultAssistant.
func CheckAssistant(a string) error {
	a = strings.TrimSpace(a)
	if a == "" || assistantName.MatchString(a) {
		return nil
	}
	return fmt.Errorf("invalid assistant %q: use letters, digits, '-' or '_'", a)
}

// OutputName returns the document file name for an assistant, e.g. GEMINI.md.
func OutputName(assistant string) string {
	return strings.ToUpper(assistantOrDefault(assistant)) + ".md"
}

// BuildDocument renders the context document. m may be nil when no manifest
// could be read.
func BuildDocument(assistant string, m *Manifest, files []string) string {
	title := cases.Title(language.English).String(assistantOrDefault(assistant))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Configuration\n\nThis file contains the configuration for %s.\n\n", title, title)
	b.WriteString("## Project Structure\n\nThis project appears to be a ")

	if m != nil && m.Name != "" {
		fmt.Fprintf(&b, "**%s** project.\n\n", m.Name)
	} else {
		b.WriteString("project.\n\n")
	}

	if m != nil {
		writeSection(&b, "Dependencies", m.Dependencies, func(e Entry) string {
			return "- " + e.Name
		})
		writeSection(&b, "Dev Dependencies", m.DevDependencies, func(e Entry) string {
			return "- " + e.Name
		})
		writeSection(&b, "Scripts", m.Scripts, func(e Entry) string {
			return fmt.Sprintf("- **%s**: `%s`", e.Name, e.Value)
		})
	}

	b.WriteString("## Files\n\n")
	lines := make([]string, len(files))
	for i, f := range files {
		lines[i] = "- `" + f + "`"
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func writeSection(b *strings.Builder, heading string, entries []Entry, line func(Entry) string) {
	if entries == nil {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = line(e)
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
}

func assistantOrDefault(a string) string {
	a = strings.TrimSpace(a)
	if a == "" {
		return DefaultAssistant
	}
	return a
}
