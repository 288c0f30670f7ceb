package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/propsmith/propsmith/pkg/config"
)

// WatchOptions controls the library watcher.
type WatchOptions struct {
	// Scan selects which files regenerate on change.
	Scan ScanOptions
	// DebounceMs groups rapid changes to one regeneration. Zero uses 200ms.
	DebounceMs int
}

// DefaultWatchOptions returns watch options with the default scan patterns.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{Scan: DefaultScanOptions(), DebounceMs: 200}
}

// Watcher watches a component source tree and regenerates configs when
// files change. Rapid successive writes to the same file debounce into one
// regeneration.
type Watcher struct {
	watcher  *fsnotify.Watcher
	importer *Importer
	logger   *slog.Logger
	options  WatchOptions
	root     string

	// OnUpdate is called with the regenerated config after a file changes.
	OnUpdate func(path string, cfg *config.ComponentConfig)
	// OnRemove is called when a watched file is deleted or renamed away.
	OnRemove func(path string)

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a library watcher.
func NewWatcher(importer *Importer, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	return &Watcher{
		watcher:        w,
		importer:       importer,
		logger:         logger,
		options:        options,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootPath and its subdirectories. Runs the event loop
// in a background goroutine.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.root = rootPath
	w.mu.Unlock()

	if err := w.watcher.Add(rootPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", rootPath, err)
	}

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Continue on error
		}
		if info.IsDir() {
			if w.shouldIgnore(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger.Info("library watcher started", "root", rootPath)
	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("library watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.shouldIgnore(path) || !w.matchesScan(path) {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create:
		w.debounceRegenerate(path)

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		w.importer.cache.Invalidate(path)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}
	}
}

// debounceRegenerate schedules a regeneration after the debounce delay.
// Later events for the same file reset the timer.
func (w *Watcher) debounceRegenerate(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.regenerate(path)
			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

func (w *Watcher) regenerate(path string) {
	w.logger.Debug("regenerating component config", "file", path)

	// The cached mapping is stale after a write.
	w.importer.cache.Invalidate(path)

	cfg, err := w.importer.importFile(path)
	if err != nil {
		w.logger.Warn("failed to regenerate config", "file", path, "error", err)
		return
	}
	if w.OnUpdate != nil {
		w.OnUpdate(path, cfg)
	}
	w.logger.Debug("component config regenerated",
		"file", path,
		"elements", len(cfg.EditableElements))
}

// matchesScan checks the path against the include patterns.
func (w *Watcher) matchesScan(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	if len(w.options.Scan.Include) == 0 {
		return true
	}
	for _, pattern := range w.options.Scan.Include {
		if m, _ := doublestar.PathMatch(pattern, rel); m {
			return true
		}
	}
	return false
}

// shouldIgnore checks exclusion patterns plus common build directories.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range w.options.Scan.Exclude {
		if m, _ := doublestar.PathMatch(pattern, rel); m {
			return true
		}
	}

	switch filepath.Base(path) {
	case "node_modules", ".git", "dist", "build", ".next":
		return true
	}
	return false
}

// Stats contains watcher statistics.
type Stats struct {
	PendingRegenerations int
	IsRunning            bool
}

// GetStats returns watcher statistics.
func (w *Watcher) GetStats() Stats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	running := !w.stopped
	w.mu.Unlock()

	return Stats{PendingRegenerations: pending, IsRunning: running}
}
