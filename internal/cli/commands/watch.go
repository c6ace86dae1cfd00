package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/pinelint/internal/engine"
)

// watchDebounce is how long the watcher waits for writes to settle.
const watchDebounce = 150 * time.Millisecond

// watchScope is the set of paths a watch session covers.
type watchScope struct {
	dirs  []string        // directories added to the watcher
	files map[string]bool // explicit file arguments
	trees map[string]bool // directories whose files are all in scope
}

// newWatchScope resolves path arguments into watched directories.
// Hidden subdirectories are not descended into.
func newWatchScope(paths []string, recursive bool) (*watchScope, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	s := &watchScope{files: map[string]bool{}, trees: map[string]bool{}}
	seen := map[string]bool{}
	addDir := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			s.dirs = append(s.dirs, dir)
		}
	}

	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot watch %s: %w", p, err)
		}
		if !info.IsDir() {
			s.files[p] = true
			addDir(filepath.Dir(p))
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != p && (!recursive || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			s.trees[path] = true
			addDir(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot watch %s: %w", p, err)
		}
	}
	return s, nil
}

// contains reports whether a changed path belongs to the session.
func (s *watchScope) contains(path string) bool {
	path = filepath.Clean(path)
	return s.files[path] || s.trees[filepath.Dir(path)]
}

// fileWatcher batches file system events and hands settled changes to
// onChange. onChange runs on the watch loop goroutine.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	scope    *watchScope
	debounce time.Duration
	logger   *slog.Logger
	onChange func(paths []string)
}

func newFileWatcher(scope *watchScope, logger *slog.Logger, onChange func([]string)) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range scope.dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return &fileWatcher{
		watcher:  watcher,
		scope:    scope,
		debounce: watchDebounce,
		logger:   logger,
		onChange: onChange,
	}, nil
}

// run handles events until ctx is done or the watcher is closed.
func (w *fileWatcher) run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.scope.contains(event.Name) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			w.onChange(changed)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

// watchLint lints files once, then re-lints changed files until ctx is
// cancelled.
func watchLint(ctx context.Context, cc *CommandContext, eng *engine.Engine, paths, files []string, recursive bool) error {
	scope, err := newWatchScope(paths, recursive)
	if err != nil {
		return err
	}

	if _, err := lintFiles(ctx, cc, eng, files); err != nil {
		return err
	}

	w, err := newFileWatcher(scope, cc.Logger, func(changed []string) {
		var targets []string
		for _, p := range changed {
			found, err := discoverFiles(cc, []string{p}, false)
			if err != nil {
				cc.Logger.Debug("skipping changed path", slog.String("path", p), slog.String("error", err.Error()))
				continue
			}
			targets = append(targets, found...)
		}
		if len(targets) == 0 {
			return
		}
		cc.Renderer.Muted(fmt.Sprintf("Change detected: %s", strings.Join(targets, ", ")))
		if _, err := lintFiles(ctx, cc, eng, targets); err != nil {
			cc.Renderer.Error(err.Error())
		}
	})
	if err != nil {
		return err
	}

	cc.Renderer.Muted("Watching for changes (Ctrl+C to stop)")
	w.run(ctx)
	return nil
}
