package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/propsmith/propsmith/pkg/config"
)

// DefaultCacheSize bounds the memoization cache.
const DefaultCacheSize = 256

// Cache memoizes FromCode results keyed on a hash of the source and the
// generation inputs. Generation is a pure function of its inputs, so
// identical calls return the cached config.
//
// Cached configs are shared: callers must treat them as read-only.
type Cache struct {
	gen *Generator
	lru *lru.Cache[string, *config.ComponentConfig]
}

// NewCache wraps a generator with an LRU memoization layer. size <= 0 uses
// DefaultCacheSize.
func NewCache(gen *Generator, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *config.ComponentConfig](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation cache: %w", err)
	}
	return &Cache{gen: gen, lru: c}, nil
}

// FromCode returns the cached config for identical inputs, generating and
// storing it on a miss.
func (c *Cache) FromCode(code string, meta config.Metadata, opts Options) *config.ComponentConfig {
	key := cacheKey(code, meta, opts)
	if cfg, ok := c.lru.Get(key); ok {
		return cfg
	}
	cfg := c.gen.FromCode(code, meta, opts)
	c.lru.Add(key, cfg)
	return cfg
}

// Len reports the number of cached configs.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Purge drops all cached configs.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func cacheKey(code string, meta config.Metadata, opts Options) string {
	h := sha256.New()
	h.Write([]byte(code))
	fmt.Fprintf(h, "|%s|%s|%s|%s|%t",
		meta.Name, meta.Description, meta.Category, opts.ComponentName,
		opts.IncludeCommonStyles)

	// Custom properties participate in the key in deterministic order.
	ids := make([]string, 0, len(opts.CustomProperties))
	for id := range opts.CustomProperties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		names := make([]string, 0, len(opts.CustomProperties[id]))
		for _, p := range opts.CustomProperties[id] {
			names = append(names, p.Name+"="+p.DefaultValue)
		}
		fmt.Fprintf(h, "|%s:%s", id, strings.Join(names, ","))
	}
	return hex.EncodeToString(h.Sum(nil))
}
