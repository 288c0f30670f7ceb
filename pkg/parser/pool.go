package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// pool manages tree-sitter parsers for one grammar. Acquire/release go
// through a buffered channel so multiple goroutines can parse concurrently;
// parsers are created lazily up to maxSize.
type pool struct {
	parsers chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	maxSize int

	mu      sync.Mutex
	created int

	logger *slog.Logger
}

func newPool(lang Language, langPtr unsafe.Pointer, maxSize int, logger *slog.Logger) *pool {
	return &pool{
		parsers: make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		maxSize: maxSize,
		logger:  logger,
	}
}

// acquire returns a parser from the pool, creating one if the pool is empty
// and under capacity. Blocks when all parsers are in use at capacity.
func (p *pool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.parsers:
		return parser, nil
	default:
		return p.createOrWait()
	}
}

func (p *pool) createOrWait() (*ts.Parser, error) {
	p.mu.Lock()
	if p.created < p.maxSize {
		parser := ts.NewParser()
		if parser == nil {
			p.mu.Unlock()
			return nil, fmt.Errorf("failed to create parser")
		}
		if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
			parser.Close()
			p.mu.Unlock()
			return nil, fmt.Errorf("failed to set language: %w", err)
		}
		p.created++
		p.logger.Debug("created parser",
			"language", p.lang.String(),
			"pool_size", p.created)
		p.mu.Unlock()
		return parser, nil
	}
	p.mu.Unlock()

	return <-p.parsers, nil
}

// release returns a parser to the pool for reuse.
func (p *pool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.parsers <- parser:
	default:
		// Pool full; close the excess parser rather than leak it.
		parser.Close()
		p.logger.Warn("parser pool full, closing excess parser",
			"language", p.lang.String())
	}
}

// close drains the pool and closes every parked parser.
func (p *pool) close() {
	close(p.parsers)
	for parser := range p.parsers {
		if parser != nil {
			parser.Close()
		}
	}
}

func (p *pool) createdCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
