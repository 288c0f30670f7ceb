// Package parser wraps tree-sitter with pooled, thread-safe parsers for the
// grammars component source can arrive in (TSX, TS, JS).
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/propsmith/propsmith/pkg/util"
)

// Manager owns per-language parser pools with lazy initialization.
//
// Callers own returned Tree instances and must call tree.Close() after use.
// The manager itself must be closed via Close() when no longer needed.
//
//	pm := parser.NewManager(logger)
//	defer pm.Close()
//
//	tree, err := pm.ParseComponent([]byte(code))
//	if err != nil { ... }
//	defer tree.Close()
type Manager struct {
	pools map[Language]*pool
	mu    sync.RWMutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewManager creates a parser manager. A nil logger falls back to
// slog.Default().
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[Language]*pool),
		logger: logger,
	}
}

// Parse parses source with the given language grammar.
//
// The returned tree MUST be closed by the caller. Parse errors do not fail
// the call: tree-sitter produces partial trees, and callers inspect
// RootNode().HasError() when they need to distinguish degraded input.
func (m *Manager) Parse(source []byte, lang Language) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mu.Lock()
	m.stats.parsesCalled++
	m.mu.Unlock()

	p, err := m.getOrCreatePool(lang)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := p.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	p.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}
	return tree, nil
}

// ParseComponent parses pasted or stored component code with the TSX grammar,
// which accepts the JS/JSX/TS forms the marketplace stores.
func (m *Manager) ParseComponent(source []byte) (*ts.Tree, error) {
	return m.Parse(source, LanguageTSX)
}

// ParseFile parses a file's content, detecting the grammar from its path.
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang)
}

// Close releases all parser pool resources. The manager cannot be used after
// Close.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for lang, p := range m.pools {
		if p != nil {
			p.close()
			m.logger.Debug("closed parser pool", "language", lang.String())
		}
	}
	m.pools = make(map[Language]*pool)
	return nil
}

// Stats contains parser usage counters.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// GetStats returns parser usage statistics.
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, p := range m.pools {
		total += p.createdCount()
	}
	return Stats{ParsersCreated: total, ParsesCalled: m.stats.parsesCalled}
}

// getOrCreatePool returns an existing pool or creates one, using
// double-checked locking.
func (m *Manager) getOrCreatePool(lang Language) (*pool, error) {
	m.mu.RLock()
	p, exists := m.pools[lang]
	m.mu.RUnlock()
	if exists {
		return p, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, exists = m.pools[lang]; exists {
		return p, nil
	}

	langPtr, err := languagePointer(lang)
	if err != nil {
		return nil, err
	}
	p = newPool(lang, langPtr, util.OptimalPoolSize(), m.logger)
	m.pools[lang] = p

	m.logger.Debug("created parser pool",
		"language", lang.String(),
		"maxSize", p.maxSize)
	return p, nil
}

// languagePointer returns the tree-sitter grammar pointer for a language.
func languagePointer(lang Language) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTSX:
		return ts_typescript.LanguageTSX(), nil
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}
