package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aliasync/aliasync/internal/logger"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// Op is the kind of directory change.
type Op int

const (
	DirAdded Op = iota
	DirRemoved
)

func (o Op) String() string {
	if o == DirRemoved {
		return "removed"
	}
	return "added"
}

// Event is a directory change below the watched root.
type Event struct {
	Op   Op
	Path string
}

// Watcher watches a directory tree for directory additions and removals.
// Dot directories and directories matching an exclude pattern are skipped.
type Watcher struct {
	fs      *fsnotify.Watcher
	root    string
	exclude []string
	log     *logger.Logger

	mu      sync.Mutex
	watched map[string]bool
}

// New watches root and every non-excluded directory below it.
func New(root string, exclude []string, log *logger.Logger) (*Watcher, error) {
	if log == nil {
		log = logger.Discard()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fs:      fsw,
		root:    filepath.Clean(root),
		exclude: exclude,
		log:     log,
		watched: make(map[string]bool),
	}
	if err := w.addRecursively(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to add watchers: %w", err)
	}
	return w, nil
}

// Run delivers events to onChange until ctx is done.
func (w *Watcher) Run(ctx context.Context, onChange func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if w.shouldExclude(event.Name) {
				continue
			}
			w.log.Debug("File event: %s %s", event.Op, event.Name)

			if ev, ok := w.handle(event); ok {
				onChange(ev)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) (Event, bool) {
	switch {
	case event.Has(fsnotify.Create):
		stat, err := os.Stat(event.Name)
		if err != nil || !stat.IsDir() {
			return Event{}, false
		}
		w.log.Debug("Adding watcher for new directory: %s", event.Name)
		if err := w.addRecursively(event.Name); err != nil {
			w.log.Warn("Watching %s: %v", event.Name, err)
		}
		return Event{Op: DirAdded, Path: event.Name}, true

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if !w.forget(event.Name) {
			return Event{}, false
		}
		return Event{Op: DirRemoved, Path: event.Name}, true
	}
	return Event{}, false
}

// Watched returns the number of directories being watched.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}

// forget drops path and its descendants from the watch set and reports
// whether path was a watched directory.
func (w *Watcher) forget(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watched[path] {
		return false
	}
	prefix := path + string(filepath.Separator)
	for dir := range w.watched {
		if dir == path || strings.HasPrefix(dir, prefix) {
			delete(w.watched, dir)
		}
	}
	return true
}

func (w *Watcher) shouldExclude(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
		for _, pattern := range w.exclude {
			if ok, _ := doublestar.Match(pattern, seg); ok {
				return true
			}
		}
	}
	return false
}

func (w *Watcher) addRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.shouldExclude(path) {
			w.log.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		w.mu.Lock()
		w.watched[path] = true
		w.mu.Unlock()
		return nil
	})
}
