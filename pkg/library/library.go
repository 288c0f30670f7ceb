// Package library stores collections of component configs as a JSON
// document, with indexed lookups, read-only queries, directory import, and
// file watching for regeneration on change.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/propsmith/propsmith/pkg/config"
)

// Library holds a full component collection.
type Library struct {
	Name       string                   `json:"name"`
	Version    string                   `json:"version"`
	Source     string                   `json:"source,omitempty"`
	Components []config.ComponentConfig `json:"components"`
	Categories []string                 `json:"categories,omitempty"`
}

// Index provides O(1) lookups into the library.
// Built during LoadFromFile after validation passes.
type Index struct {
	// ComponentByName maps component name -> *ComponentConfig.
	ComponentByName map[string]*config.ComponentConfig

	// ComponentsByCategory maps category name -> []*ComponentConfig.
	ComponentsByCategory map[string][]*config.ComponentConfig
}

// Validate checks the library for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (l *Library) Validate() []error {
	var errs []error

	if l.Name == "" {
		errs = append(errs, fmt.Errorf("library name is required"))
	}
	if l.Version == "" {
		errs = append(errs, fmt.Errorf("library version is required"))
	}

	categories := make(map[string]bool, len(l.Categories))
	for i, cat := range l.Categories {
		if cat == "" {
			errs = append(errs, fmt.Errorf("categories[%d]: name is required", i))
			continue
		}
		if categories[cat] {
			errs = append(errs, fmt.Errorf("categories[%d]: duplicate category %q", i, cat))
			continue
		}
		categories[cat] = true
	}

	names := make(map[string]bool, len(l.Components))
	for i := range l.Components {
		comp := &l.Components[i]
		name := comp.Metadata.Name
		if name == "" {
			errs = append(errs, fmt.Errorf("components[%d]: metadata name is required", i))
			continue
		}
		if names[name] {
			errs = append(errs, fmt.Errorf("component %q: duplicate component name", name))
			continue
		}
		names[name] = true

		if comp.Code == "" {
			errs = append(errs, fmt.Errorf("component %q: code is required", name))
		}
		if comp.Metadata.Category != "" && len(l.Categories) > 0 && !categories[comp.Metadata.Category] {
			errs = append(errs, fmt.Errorf("component %q: references unknown category %q", name, comp.Metadata.Category))
		}

		elementIDs := make(map[string]bool, len(comp.EditableElements))
		for _, el := range comp.EditableElements {
			if elementIDs[el.ID] {
				errs = append(errs, fmt.Errorf("component %q: duplicate element id %q", name, el.ID))
				continue
			}
			elementIDs[el.ID] = true
		}
	}

	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (l *Library) BuildIndex() *Index {
	idx := &Index{
		ComponentByName:      make(map[string]*config.ComponentConfig, len(l.Components)),
		ComponentsByCategory: make(map[string][]*config.ComponentConfig),
	}
	for i := range l.Components {
		comp := &l.Components[i]
		idx.ComponentByName[comp.Metadata.Name] = comp
		idx.ComponentsByCategory[comp.Metadata.Category] = append(
			idx.ComponentsByCategory[comp.Metadata.Category], comp)
	}
	return idx
}

// Upsert replaces the component with the same name or appends a new one.
// The index must be rebuilt afterwards.
func (l *Library) Upsert(cfg config.ComponentConfig) {
	for i := range l.Components {
		if l.Components[i].Metadata.Name == cfg.Metadata.Name {
			l.Components[i] = cfg
			return
		}
	}
	l.Components = append(l.Components, cfg)
}

// LoadFromFile loads a library from a JSON file, validates it, and builds the
// index.
func LoadFromFile(path string) (*Library, *Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read library file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a library from raw JSON bytes, validates it, and
// builds the index.
func LoadFromBytes(data []byte) (*Library, *Index, error) {
	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, nil, fmt.Errorf("failed to parse library JSON: %w", err)
	}

	if errs := lib.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("library validation failed: %w", errors.Join(errs...))
	}

	return &lib, lib.BuildIndex(), nil
}

// SaveToFile writes the library as indented JSON.
func (l *Library) SaveToFile(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize library: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write library file: %w", err)
	}
	return nil
}
