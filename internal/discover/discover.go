// Package discover expands command-line paths into the list of source files
// to lint, filtered by extension and ignore globs.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Options controls expansion.
type Options struct {
	// Extensions lists accepted file extensions including the dot.
	Extensions []string
	// IgnorePatterns are doublestar globs matched against slash paths.
	IgnorePatterns []string
	// Recursive descends into subdirectories of directory arguments.
	Recursive bool
	Logger    *slog.Logger
}

// Files expands paths into a sorted, de-duplicated list of files.
// Directories yield their matching files; explicit files with another
// extension, or matching an ignore pattern, are skipped.
func Files(paths []string, opts Options) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths given")
	}
	for _, p := range opts.IgnorePatterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", root, err)
		}

		if !info.IsDir() {
			switch {
			case !opts.hasExtension(root):
				logger.Debug("skipping file with unsupported extension", slog.String("path", root))
			case opts.ignored(root, ""):
				logger.Debug("skipping ignored file", slog.String("path", root))
			default:
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if !opts.Recursive || strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !opts.hasExtension(path) {
				return nil
			}
			if opts.ignored(path, root) {
				logger.Debug("skipping ignored file", slog.String("path", path))
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

func (o Options) hasExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range o.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// ignored matches path, and its form relative to root, against every pattern.
func (o Options) ignored(path, root string) bool {
	abs := filepath.ToSlash(filepath.Clean(path))
	candidates := []string{abs, strings.TrimPrefix(abs, "/")}
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, pattern := range o.IgnorePatterns {
		pattern = filepath.ToSlash(pattern)
		for _, c := range candidates {
			if ok, _ := doublestar.Match(pattern, c); ok {
				return true
			}
		}
	}
	return false
}
