package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HookLog is the file the catalog hooks append to. It is added to the
// project's .gitignore when hooks are rendered into a git project.
const HookLog = ".claude/hooks.log"

// isGitProject reports whether root has a .git entry or a .gitignore.
func isGitProject(root string) bool {
	for _, name := range []string{".git", ".gitignore"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}

// gitignoreHas reports whether .gitignore in root already lists line.
func gitignoreHas(root, line string) (bool, error) {
	content, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading .gitignore: %w", err)
	}
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == line {
			return true, nil
		}
	}
	return false, nil
}

// addToGitignore appends line to .gitignore in root, creating the file if
// needed. If the line already exists, this is a no-op.
func addToGitignore(root, line string) error {
	gitignorePath := filepath.Join(root, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}
	for _, l := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(l) == line {
			return nil
		}
	}

	suffix := line + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return fmt.Errorf("writing to .gitignore: %w", err)
	}
	return nil
}
