package introspect

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar"
)

// ScanFiles returns every regular file under root as a slash-separated path
// relative to root, in lexical order. Directories whose base name or relative
// path matches one of the exclude globs are not entered. A symlinked root is
// resolved first; symlinks below it are listed but not followed. The walk
// stops with ctx's error once ctx is done.
func ScanFiles(ctx context.Context, root string, exclude []string) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	var files []string
	err = filepath.WalkDir(resolved, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(resolved, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			skip, err := excluded(rel, exclude)
			if err != nil {
				return err
			}
			if skip {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}

func excluded(rel string, patterns []string) (bool, error) {
	base := path.Base(rel)
	for _, p := range patterns {
		for _, name := range []string{rel, base} {
			ok, err := doublestar.Match(p, name)
			if err != nil {
				return false, fmt.Errorf("exclude pattern %q: %w", p, err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}
