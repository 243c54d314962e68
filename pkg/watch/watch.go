// Package watch feeds filesystem changes under a project's library roots
// into pkg/project.Project using fsnotify: recursive directory registration,
// a debounce timer, and an ignore filter, all narrowed to Modelica's single
// ".mo" extension and pkg/project's add/update/remove document API.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/modelicals/pkg/project"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher recursively watches a set of library roots and applies changed
// ".mo" files to a Project as they land on disk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	proj     *project.Project
	roots    []string
	debounce time.Duration
}

// New creates a Watcher over proj, recursively registering every directory
// under each of roots. debounce <= 0 uses the default of 250ms.
func New(proj *project.Project, roots []string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	w := &Watcher{fsw: fsw, proj: proj, debounce: debounce}
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: %w", err)
		}
		abs = filepath.Clean(abs)
		if err := addWatchRecursive(fsw, abs); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch: %s: %w", abs, err)
		}
		w.roots = append(w.roots, abs)
	}
	return w, nil
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run drains filesystem events until ctx is canceled or the watcher's
// channels close, applying each debounced batch of changed paths to the
// Project. It blocks; callers typically run it in its own goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	pending := false
	pendingPaths := map[string]bool{}

	resetDebounce := func(path string) {
		pendingPaths[path] = true
		if pending {
			stopTimer(timer)
		}
		timer.Reset(w.debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if shouldIgnore(path) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					if err := addWatchRecursive(w.fsw, path); err != nil {
						slog.Warn("watch: failed to register new directory", "path", path, "err", err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.HasSuffix(path, ".mo") {
				continue
			}
			resetDebounce(path)

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			changed := make([]string, 0, len(pendingPaths))
			for path := range pendingPaths {
				changed = append(changed, path)
			}
			pendingPaths = map[string]bool{}
			sort.Strings(changed)
			w.applyChanges(changed)
		}
	}
}

// applyChanges reconciles one debounced batch: a path that still exists on
// disk is (re)loaded with its current contents; a path that no longer
// exists is removed from whichever library holds it.
func (w *Watcher) applyChanges(paths []string) {
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				w.proj.RemoveDocument(path)
			} else {
				slog.Warn("watch: failed to read changed file", "path", path, "err", err)
			}
			continue
		}
		if _, ok, _ := w.proj.GetDocument(path, false); ok {
			if _, err := w.proj.UpdateDocument(path, text); err != nil {
				slog.Warn("watch: failed to update document", "path", path, "err", err)
			}
			continue
		}
		if _, _, err := w.proj.AddDocument(path); err != nil {
			slog.Warn("watch: failed to add document", "path", path, "err", err)
		}
	}
}

func addWatchRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if shouldSkipDir(root, path, entry.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

func shouldSkipDir(root, path, name string) bool {
	if path == root {
		return false
	}
	if name == ".git" || name == ".hg" || name == ".svn" {
		return true
	}
	return strings.HasPrefix(name, ".")
}

func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	return base == ".DS_Store" || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") || strings.HasPrefix(base, ".#")
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
