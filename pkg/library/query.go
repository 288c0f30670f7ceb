package library

import (
	"strings"

	"github.com/propsmith/propsmith/pkg/config"
)

// SearchResult holds a component match with the reason it matched.
type SearchResult struct {
	Component   *config.ComponentConfig
	MatchReason string
}

// QueryService provides read-only query methods over a loaded library.
type QueryService struct {
	Library *Library
	Index   *Index
}

// NewQueryService creates a QueryService from a validated library and its
// index.
func NewQueryService(lib *Library, idx *Index) *QueryService {
	return &QueryService{Library: lib, Index: idx}
}

// LoadAndQuery loads a library from file and returns a ready-to-use
// QueryService.
func LoadAndQuery(path string) (*QueryService, error) {
	lib, idx, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return NewQueryService(lib, idx), nil
}

// ListCategories returns the library's categories.
func (q *QueryService) ListCategories() []string {
	return q.Library.Categories
}

// ListComponents returns components filtered by category and/or keyword.
// Both filters are optional (pass "" to skip); combined filters use AND
// logic. The keyword matches case-insensitively against name and description.
func (q *QueryService) ListComponents(category, keyword string) []config.ComponentConfig {
	var candidates []*config.ComponentConfig
	if category != "" {
		candidates = q.Index.ComponentsByCategory[category]
	} else {
		candidates = make([]*config.ComponentConfig, 0, len(q.Library.Components))
		for i := range q.Library.Components {
			candidates = append(candidates, &q.Library.Components[i])
		}
	}

	keyword = strings.ToLower(keyword)
	result := make([]config.ComponentConfig, 0)
	for _, comp := range candidates {
		if keyword != "" {
			name := strings.ToLower(comp.Metadata.Name)
			desc := strings.ToLower(comp.Metadata.Description)
			if !strings.Contains(name, keyword) && !strings.Contains(desc, keyword) {
				continue
			}
		}
		result = append(result, *comp)
	}
	return result
}

// GetComponent looks up a component by name.
// The bool indicates whether the component was found.
func (q *QueryService) GetComponent(name string) (*config.ComponentConfig, bool) {
	comp, ok := q.Index.ComponentByName[name]
	return comp, ok
}

// SearchComponents performs a case-insensitive search across component
// names, descriptions, element tags, and property names.
// Returns matching components with the reason for the match.
func (q *QueryService) SearchComponents(query string) []SearchResult {
	query = strings.ToLower(query)
	if query == "" {
		return nil
	}

	var results []SearchResult
	for i := range q.Library.Components {
		comp := &q.Library.Components[i]

		if strings.Contains(strings.ToLower(comp.Metadata.Name), query) {
			results = append(results, SearchResult{Component: comp, MatchReason: "name"})
			continue
		}
		if strings.Contains(strings.ToLower(comp.Metadata.Description), query) {
			results = append(results, SearchResult{Component: comp, MatchReason: "description"})
			continue
		}

		if reason := matchElements(comp, query); reason != "" {
			results = append(results, SearchResult{Component: comp, MatchReason: reason})
		}
	}
	return results
}

func matchElements(comp *config.ComponentConfig, query string) string {
	for _, el := range comp.EditableElements {
		if strings.Contains(strings.ToLower(el.Tag), query) {
			return "element:" + el.ID
		}
		for _, prop := range el.Properties {
			if strings.Contains(strings.ToLower(prop.Name), query) {
				return "property:" + prop.Name
			}
		}
	}
	return ""
}
