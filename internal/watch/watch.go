// Package watch re-runs work when a schema file or its data documents change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	sfvfs "github.com/andyballingall/schemaform/internal/fs"
)

const debounceDuration = 100 * time.Millisecond

// Event describes a relevant file change.
type Event struct {
	Path   string // The changed file
	Schema bool   // True if Path is the schema file
}

type eventWatcher interface {
	Add(name string) error
	Close() error
	Events() chan fsnotify.Event
	Errors() chan error
}

type fsnotifyWatcher struct {
	w *fsnotify.Watcher
}

func (f fsnotifyWatcher) Add(name string) error       { return f.w.Add(name) }
func (f fsnotifyWatcher) Close() error                { return f.w.Close() }
func (f fsnotifyWatcher) Events() chan fsnotify.Event { return f.w.Events }
func (f fsnotifyWatcher) Errors() chan error          { return f.w.Errors }

func newFSNotifyWatcher() (eventWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return fsnotifyWatcher{w: w}, nil
}

// Watcher monitors a schema file and a set of data files and directories.
type Watcher struct {
	schemaPath string
	files      map[string]bool
	dirs       []string
	logger     *slog.Logger
	Ready      chan struct{}

	newWatcher func() (eventWatcher, error)
}

// New creates a Watcher. dataPaths may name files or directories; directories
// are watched recursively for JSON and YAML files.
func New(schemaPath string, dataPaths []string, logger *slog.Logger) (*Watcher, error) {
	w := &Watcher{
		files:      make(map[string]bool),
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: newFSNotifyWatcher,
	}

	var err error
	if w.schemaPath, err = filepath.Abs(schemaPath); err != nil {
		return nil, err
	}
	for _, p := range dataPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			w.dirs = append(w.dirs, abs)
		} else {
			w.files[abs] = true
		}
	}
	return w, nil
}

// Watch calls callback after each burst of relevant changes. Calls never
// overlap: changes arriving while callback runs cause one further call.
// It blocks until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(Event)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Files are watched through their directories so that editors which
	// replace files on save are still seen.
	parents := map[string]bool{filepath.Dir(w.schemaPath): true}
	for f := range w.files {
		parents[filepath.Dir(f)] = true
	}
	for p := range parents {
		if err := watcher.Add(p); err != nil {
			return err
		}
	}
	for _, d := range w.dirs {
		if err := w.addRecursive(watcher, d); err != nil {
			return err
		}
	}

	w.logger.Info("Watching for changes", "schema", w.schemaPath)
	if w.Ready != nil {
		close(w.Ready)
	}

	var (
		mu      sync.Mutex
		pending Event
		timer   *time.Timer
		trigger = make(chan struct{}, 1)
		wg      sync.WaitGroup
	)
	defer wg.Wait()
	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-trigger:
				mu.Lock()
				ev := pending
				mu.Unlock()
				callback(ev)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case err := <-watcher.Errors():
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			ev := w.handleEvent(watcher, event)
			if ev == nil {
				continue
			}
			mu.Lock()
			pending = *ev
			mu.Unlock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})
		}
	}
}

// handleEvent adds new directories to the watcher and maps relevant file
// changes to an Event.
func (w *Watcher) handleEvent(watcher eventWatcher, event fsnotify.Event) *Event {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return nil
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if w.inDataDir(event.Name) {
				if err := w.addRecursive(watcher, event.Name); err != nil {
					w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
				}
			}
			return nil
		}
	}

	return w.mapToEvent(event.Name)
}

// mapToEvent returns nil if path is not one of the watched documents.
func (w *Watcher) mapToEvent(path string) *Event {
	path = filepath.Clean(path)
	switch {
	case path == w.schemaPath:
		return &Event{Path: path, Schema: true}
	case w.files[path]:
		return &Event{Path: path}
	case sfvfs.IsDocument(path) && w.inDataDir(path):
		return &Event{Path: path}
	}
	return nil
}

func (w *Watcher) inDataDir(path string) bool {
	for _, d := range w.dirs {
		if path == d || strings.HasPrefix(path, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// addRecursive adds root and its subdirectories, skipping hidden ones.
func (w *Watcher) addRecursive(watcher eventWatcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
