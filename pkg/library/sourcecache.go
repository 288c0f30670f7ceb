package library

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// SourceCache provides read access to component source files via
// memory-mapped regions, loaded lazily on first access. Files that fail to
// map fall back to os.ReadFile transparently.
//
// Thread-safe: reads share an RLock; loads take the write lock with a
// double-check.
type SourceCache struct {
	mu       sync.RWMutex
	mapped   map[string]mmap.MMap
	fallback map[string][]byte
	files    map[string]*os.File

	logger *slog.Logger
}

// NewSourceCache creates a source cache. A nil logger falls back to
// slog.Default().
func NewSourceCache(logger *slog.Logger) *SourceCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceCache{
		mapped:   make(map[string]mmap.MMap),
		fallback: make(map[string][]byte),
		files:    make(map[string]*os.File),
		logger:   logger,
	}
}

// Get returns the file's content, mapping it on first access. The returned
// slice is backed by the mapping and must not be modified or retained past
// Close.
func (sc *SourceCache) Get(path string) ([]byte, error) {
	sc.mu.RLock()
	if data, ok := sc.mapped[path]; ok {
		sc.mu.RUnlock()
		return data, nil
	}
	if data, ok := sc.fallback[path]; ok {
		sc.mu.RUnlock()
		return data, nil
	}
	sc.mu.RUnlock()

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if data, ok := sc.mapped[path]; ok {
		return data, nil
	}
	if data, ok := sc.fallback[path]; ok {
		return data, nil
	}
	return sc.loadLocked(path)
}

// Invalidate drops the cached mapping for a path, so the next Get re-reads
// the file. Used by the watcher when a source changes on disk.
func (sc *SourceCache) Invalidate(path string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if data, ok := sc.mapped[path]; ok {
		if err := data.Unmap(); err != nil {
			sc.logger.Warn("failed to unmap file", "path", path, "error", err)
		}
		delete(sc.mapped, path)
	}
	if f, ok := sc.files[path]; ok {
		f.Close()
		delete(sc.files, path)
	}
	delete(sc.fallback, path)
}

// Size returns the number of currently cached files.
func (sc *SourceCache) Size() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.mapped) + len(sc.fallback)
}

// Close unmaps all files and releases their descriptors.
func (sc *SourceCache) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var errs []error
	for path, data := range sc.mapped {
		if err := data.Unmap(); err != nil {
			sc.logger.Warn("failed to unmap file", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("unmap %q: %w", path, err))
		}
	}
	for path, f := range sc.files {
		if err := f.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", path, err))
		}
	}

	sc.mapped = make(map[string]mmap.MMap)
	sc.fallback = make(map[string][]byte)
	sc.files = make(map[string]*os.File)

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// loadLocked opens and maps a file. Must be called holding mu.
func (sc *SourceCache) loadLocked(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	// Zero bytes cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		sc.fallback[path] = []byte{}
		return sc.fallback[path], nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		sc.logger.Warn("mmap failed, using fallback",
			"file", path,
			"size", stat.Size(),
			"error", err)
		file.Close()

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("mmap and fallback both failed for %q: mmap error: %v, read error: %w",
				path, err, readErr)
		}
		sc.fallback[path] = raw
		return raw, nil
	}

	sc.mapped[path] = data
	sc.files[path] = file
	return data, nil
}
