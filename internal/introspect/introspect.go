package introspect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Options configures Run.
type Options struct {
	Assistant string   // document target, e.g. "gemini"; selects title and file name
	Exclude   []string // directory globs skipped in addition to DefaultExclude
	Logger    *zerolog.Logger
}

// DefaultExclude are the directories every scan skips.
var DefaultExclude = []string{".git", "node_modules"}

// Result describes a written document.
type Result struct {
	Path      string
	Files     int
	Manifest  bool
	Assistant string
}

// Run scans root, reads its manifest and writes the context document to
// root/<ASSISTANT>.md, replacing any existing file. Scan and write failures
// are returned; a missing or invalid manifest is not an error. Cancelling ctx
// stops the scan and nothing is written.
func Run(ctx context.Context, root string, opts Options) (*Result, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if err := CheckAssistant(opts.Assistant); err != nil {
		return nil, err
	}

	files, err := ScanFiles(ctx, root, ExcludeList(opts.Exclude...))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("root", root).Int("files", len(files)).Msg("scanned project")

	m, ok := ReadManifest(root)
	if !ok {
		log.Debug().Str("manifest", ManifestFile).Msg("manifest missing or unreadable, using generic description")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content := BuildDocument(opts.Assistant, m, files)
	out := filepath.Join(root, OutputName(opts.Assistant))
	if err := writeAtomic(out, []byte(content)); err != nil {
		return nil, err
	}

	return &Result{
		Path:      out,
		Files:     len(files),
		Manifest:  ok,
		Assistant: assistantOrDefault(opts.Assistant),
	}, nil
}

// ExcludeList returns DefaultExclude followed by extra, without duplicates.
func ExcludeList(extra ...string) []string {
	out := make([]string, 0, len(DefaultExclude)+len(extra))
	seen := make(map[string]bool)
	for _, p := range append(append([]string{}, DefaultExclude...), extra...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// writeAtomic writes data to a temp file next to path and renames it into
// place, so path holds either the old content or the complete new content.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions on %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
