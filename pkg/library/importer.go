package library

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/generator"
	"github.com/propsmith/propsmith/pkg/util"
)

// ProgressCallback reports per-file import progress.
type ProgressCallback func(done, total int, file string)

// ImportStats summarizes one directory import.
type ImportStats struct {
	FilesDiscovered int
	FilesImported   int
	FilesFailed     int
	Errors          []FileError
	ElapsedMs       int64
	WorkerCount     int
}

// FileError records one file that failed to import.
type FileError struct {
	Path  string
	Error string
}

// Importer builds a library from a directory of component sources.
//
// Pipeline: discover files (doublestar patterns), read each through the
// mmap source cache, fan out generation across a worker pool, and collect
// the configs into a Library.
type Importer struct {
	gen    *generator.Generator
	cache  *SourceCache
	logger *slog.Logger

	// Workers overrides the pool size; 0 uses the CPU-derived default.
	Workers int
}

// NewImporter creates a directory importer. A nil cache gets a fresh
// SourceCache; a nil logger falls back to slog.Default().
func NewImporter(gen *generator.Generator, cache *SourceCache, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	if cache == nil {
		cache = NewSourceCache(logger)
	}
	return &Importer{gen: gen, cache: cache, logger: logger}
}

// ImportDirectory scans root for component sources and generates a config
// for each, returning the assembled library. Per-file failures are recorded
// in the stats and do not abort the import; ctx cancellation does.
func (imp *Importer) ImportDirectory(ctx context.Context, root, libraryName string, options ScanOptions, progress ProgressCallback) (*Library, *ImportStats, error) {
	start := time.Now()
	stats := &ImportStats{WorkerCount: util.PoolSizeWithOverride(imp.Workers)}

	files, err := DiscoverFiles(root, options)
	if err != nil {
		return nil, nil, fmt.Errorf("file discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)

	imp.logger.Info("component import started",
		"root", root,
		"files", len(files),
		"workers", stats.WorkerCount)

	type result struct {
		index int
		cfg   *config.ComponentConfig
		err   error
		path  string
	}

	jobs := make(chan int)
	results := make(chan result)

	var wg sync.WaitGroup
	for w := 0; w < stats.WorkerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				path := files[i]
				cfg, err := imp.importFile(path)
				select {
				case results <- result{index: i, cfg: cfg, err: err, path: path}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Configs keep discovery order regardless of completion order.
	configs := make([]*config.ComponentConfig, len(files))
	done := 0
	for res := range results {
		done++
		if res.err != nil {
			stats.FilesFailed++
			stats.Errors = append(stats.Errors, FileError{Path: res.path, Error: res.err.Error()})
			imp.logger.Warn("component import failed", "file", res.path, "error", res.err)
		} else {
			configs[res.index] = res.cfg
			stats.FilesImported++
		}
		if progress != nil {
			progress(done, len(files), res.path)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, fmt.Errorf("import cancelled: %w", err)
	}

	lib := &Library{Name: libraryName, Version: "1.0.0", Source: root}
	for _, cfg := range configs {
		if cfg != nil {
			lib.Upsert(*cfg)
		}
	}

	stats.ElapsedMs = time.Since(start).Milliseconds()
	imp.logger.Info("component import complete",
		"imported", stats.FilesImported,
		"failed", stats.FilesFailed,
		"duration_ms", stats.ElapsedMs)
	return lib, stats, nil
}

// importFile generates a config for one source file.
func (imp *Importer) importFile(path string) (*config.ComponentConfig, error) {
	source, err := imp.cache.Get(path)
	if err != nil {
		return nil, err
	}

	name := componentNameFromPath(path)
	cfg := imp.gen.FromCode(string(source), config.Metadata{
		Name:        name,
		Description: fmt.Sprintf("Imported from %s", filepath.Base(path)),
	}, generator.Options{ComponentName: name, IncludeCommonStyles: true})
	return cfg, nil
}

// componentNameFromPath derives a component name from a file path
// ("src/nav-menu.tsx" -> "NavMenu").
func componentNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
