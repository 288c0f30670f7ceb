package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/generator"
	"github.com/propsmith/propsmith/pkg/parser"
)

// --- helpers ---

var manager = parser.NewManager(nil)

func sampleLibrary() *Library {
	return &Library{
		Name:       "test-components",
		Version:    "1.0.0",
		Categories: []string{"button", "card"},
		Components: []config.ComponentConfig{
			{
				Metadata: config.Metadata{
					Name: "PrimaryButton", Description: "The main call to action",
					Category: "button",
				},
				Code: `export const PrimaryButton = () => <button className="bg-blue-500">Go</button>;`,
				EditableElements: []config.EditableElement{
					{
						ID: "button-0", Tag: "button", Name: "Button 1",
						Properties: []config.PropertyDefinition{
							{Name: "backgroundColor", Type: config.PropertyColor, Apply: config.ApplyClass, ClassGroup: "bg"},
						},
					},
				},
			},
			{
				Metadata: config.Metadata{
					Name: "InfoCard", Description: "A card with a header",
					Category: "card",
				},
				Code: `export const InfoCard = () => <div className="rounded-lg p-4">info</div>;`,
			},
		},
	}
}

// --- Validate ---

func TestLibraryValidate_Valid(t *testing.T) {
	assert.Empty(t, sampleLibrary().Validate())
}

func TestLibraryValidate_Errors(t *testing.T) {
	lib := sampleLibrary()
	lib.Name = ""
	lib.Version = ""
	lib.Categories = append(lib.Categories, "button")
	lib.Components[1].Metadata.Name = "PrimaryButton"
	lib.Components[1].Code = ""
	lib.Components[0].Metadata.Category = "unknown"

	errs := lib.Validate()
	require.NotEmpty(t, errs)

	var messages []string
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	assert.Contains(t, messages, "library name is required")
	assert.Contains(t, messages, "library version is required")
	assert.Contains(t, messages, `categories[2]: duplicate category "button"`)
	assert.Contains(t, messages, `component "PrimaryButton": duplicate component name`)
	assert.Contains(t, messages, `component "PrimaryButton": references unknown category "unknown"`)
}

func TestLibraryValidate_DuplicateElementIDs(t *testing.T) {
	lib := sampleLibrary()
	comp := &lib.Components[0]
	comp.EditableElements = append(comp.EditableElements, comp.EditableElements[0])

	var messages []string
	for _, err := range lib.Validate() {
		messages = append(messages, err.Error())
	}
	assert.Contains(t, messages, `component "PrimaryButton": duplicate element id "button-0"`)
}

// --- Index and Upsert ---

func TestBuildIndex(t *testing.T) {
	lib := sampleLibrary()
	idx := lib.BuildIndex()

	require.NotNil(t, idx.ComponentByName["PrimaryButton"])
	assert.Equal(t, "button", idx.ComponentByName["PrimaryButton"].Metadata.Category)
	assert.Len(t, idx.ComponentsByCategory["button"], 1)
	assert.Len(t, idx.ComponentsByCategory["card"], 1)
	assert.Nil(t, idx.ComponentByName["Missing"])
}

func TestUpsert(t *testing.T) {
	lib := sampleLibrary()

	replacement := lib.Components[0]
	replacement.Metadata.Description = "updated"
	lib.Upsert(replacement)
	assert.Len(t, lib.Components, 2)
	assert.Equal(t, "updated", lib.Components[0].Metadata.Description)

	lib.Upsert(config.ComponentConfig{
		Metadata: config.Metadata{Name: "Badge"},
		Code:     `export const Badge = () => <span>new</span>;`,
	})
	assert.Len(t, lib.Components, 3)
}

// --- load and save ---

func TestLibraryFileRoundTrip(t *testing.T) {
	lib := sampleLibrary()
	path := filepath.Join(t.TempDir(), "library.json")

	require.NoError(t, lib.SaveToFile(path))

	loaded, idx, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, lib.Name, loaded.Name)
	assert.Len(t, loaded.Components, 2)
	assert.NotNil(t, idx.ComponentByName["InfoCard"])
}

func TestLoadFromBytes_RejectsInvalid(t *testing.T) {
	_, _, err := LoadFromBytes([]byte(`{"name": "", "version": "", "components": []}`))
	assert.Error(t, err)

	_, _, err = LoadFromBytes([]byte(`{broken`))
	assert.Error(t, err)
}

// --- queries ---

func testQuery(t *testing.T) *QueryService {
	t.Helper()
	lib := sampleLibrary()
	require.Empty(t, lib.Validate())
	return NewQueryService(lib, lib.BuildIndex())
}

func TestListComponents(t *testing.T) {
	q := testQuery(t)

	assert.Len(t, q.ListComponents("", ""), 2)
	assert.Len(t, q.ListComponents("button", ""), 1)
	assert.Len(t, q.ListComponents("", "card"), 1)
	// Category and keyword combine with AND.
	assert.Empty(t, q.ListComponents("button", "card"))
	assert.Empty(t, q.ListComponents("missing", ""))
}

func TestGetComponent(t *testing.T) {
	q := testQuery(t)

	comp, ok := q.GetComponent("InfoCard")
	require.True(t, ok)
	assert.Equal(t, "InfoCard", comp.Metadata.Name)

	_, ok = q.GetComponent("Missing")
	assert.False(t, ok)
}

func TestSearchComponents(t *testing.T) {
	q := testQuery(t)

	results := q.SearchComponents("primary")
	require.Len(t, results, 1)
	assert.Equal(t, "name", results[0].MatchReason)

	results = q.SearchComponents("call to action")
	require.Len(t, results, 1)
	assert.Equal(t, "description", results[0].MatchReason)

	results = q.SearchComponents("button")
	require.Len(t, results, 1)
	assert.Equal(t, "name", results[0].MatchReason)

	results = q.SearchComponents("backgroundcolor")
	require.Len(t, results, 1)
	assert.Equal(t, "property:backgroundColor", results[0].MatchReason)

	assert.Empty(t, q.SearchComponents("nonexistent"))
	assert.Nil(t, q.SearchComponents(""))
}

func TestListCategories(t *testing.T) {
	assert.Equal(t, []string{"button", "card"}, testQuery(t).ListCategories())
}

// --- discovery ---

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscoverFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "button.tsx", "export const B = () => <button>Go</button>;")
	writeFile(t, root, "ui/card.jsx", "export const C = () => <div>card</div>;")
	writeFile(t, root, "button.test.tsx", "test code")
	writeFile(t, root, "types.d.ts", "declare module x;")
	writeFile(t, root, "node_modules/pkg/index.tsx", "dep code")
	writeFile(t, root, "README.md", "docs")

	files, err := DiscoverFiles(root, DefaultScanOptions())
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"button.tsx", "ui/card.jsx"}, rels)
}

func TestDiscoverFiles_InvalidPattern(t *testing.T) {
	opts := ScanOptions{Include: []string{"[bad"}}
	_, err := DiscoverFiles(t.TempDir(), opts)
	assert.Error(t, err)
}

// --- source cache ---

func TestSourceCache(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "button.tsx")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	cache := NewSourceCache(nil)
	defer cache.Close()

	data, err := cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
	assert.Equal(t, 1, cache.Size())

	// Cached content survives the file changing until invalidated.
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0o644))
	cache.Invalidate(path)
	data, err = cache.Get(path)
	require.NoError(t, err)
	assert.Equal(t, "changed", string(data))

	_, err = cache.Get(filepath.Join(root, "missing.tsx"))
	assert.Error(t, err)
}

func TestSourceCache_EmptyFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "empty.tsx")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cache := NewSourceCache(nil)
	defer cache.Close()

	data, err := cache.Get(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

// --- importer ---

func TestImportDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "primary-button.tsx",
		`export const PrimaryButton = () => <button className="bg-blue-500">Go</button>;`)
	writeFile(t, root, "ui/info_card.tsx",
		`export const InfoCard = () => <div className="rounded-lg p-4">info</div>;`)
	writeFile(t, root, "skipped.test.tsx", "test code")

	imp := NewImporter(generator.New(manager, nil), nil, nil)

	var progressCalls int
	lib, stats, err := imp.ImportDirectory(context.Background(), root, "my-lib",
		DefaultScanOptions(), func(done, total int, file string) {
			progressCalls++
			assert.Equal(t, 2, total)
		})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesImported)
	assert.Equal(t, 0, stats.FilesFailed)
	assert.Equal(t, 2, progressCalls)
	assert.Positive(t, stats.WorkerCount)

	assert.Equal(t, "my-lib", lib.Name)
	assert.Equal(t, "1.0.0", lib.Version)
	require.Len(t, lib.Components, 2)

	idx := lib.BuildIndex()
	button := idx.ComponentByName["PrimaryButton"]
	require.NotNil(t, button)
	assert.Equal(t, "Imported from primary-button.tsx", button.Metadata.Description)
	require.NotEmpty(t, button.EditableElements)
	assert.Equal(t, "button-0", button.EditableElements[0].ID)

	assert.NotNil(t, idx.ComponentByName["InfoCard"])
}

func TestImportDirectory_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	imp := NewImporter(generator.New(manager, nil), nil, nil)
	root := t.TempDir()
	writeFile(t, root, "a.tsx", "export const A = () => <div>a</div>;")

	_, _, err := imp.ImportDirectory(ctx, root, "lib", DefaultScanOptions(), nil)
	assert.Error(t, err)
}

func TestComponentNameFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"nav-menu.tsx", "NavMenu"},
		{"src/ui/info_card.tsx", "InfoCard"},
		{"Button.tsx", "Button"},
		{"badge.jsx", "Badge"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, componentNameFromPath(tt.path))
		})
	}
}
