package app

import (
	"io/fs"
	"log/slog"
	"modfather/internal/core/errors"
	"modfather/internal/engine/parser"
	"modfather/internal/shared/util"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Discover expands paths into the PHP files to analyze. Directories are walked
// in lexical order without following symlinks; explicit files are taken as
// given. A path that does not exist is fatal, unreadable entries below a root
// are skipped. Duplicates keep their first position.
func (a *App) Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.CodeValidationError, "at least one path is required")
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		key := filepath.Clean(path)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.AddContext(
				errors.Wrap(err, errors.CodeNotFound, "path does not exist"),
				errors.CtxPath, root,
			)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				slog.Warn("skipping unreadable path", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			base := d.Name()
			if d.IsDir() {
				if path != root && matchesAny(a.excludeDirs, base) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !parser.Supports(path) {
				return nil
			}
			if matchesAny(a.excludeFiles, base) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeIO, "walk directory"), errors.CtxPath, root)
		}
	}

	slog.Debug("discovered files", "count", len(files))
	return files, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// displayPath is the path recorded in graph metadata and warnings.
func displayPath(path string) string {
	return util.DisplayPath(path)
}
