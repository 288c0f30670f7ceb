package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- DetectLanguage ---

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"button.tsx", LanguageTSX},
		{"src/ui/Card.TSX", LanguageTSX},
		{"types.ts", LanguageTypeScript},
		{"util.mts", LanguageTypeScript},
		{"legacy.js", LanguageJavaScript},
		{"nav.jsx", LanguageJavaScript},
		{"mod.mjs", LanguageJavaScript},
		{"styles.css", LanguageUnknown},
		{"README", LanguageUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.path))
		})
	}
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "tsx", LanguageTSX.String())
	assert.Equal(t, "typescript", LanguageTypeScript.String())
	assert.Equal(t, "javascript", LanguageJavaScript.String())
	assert.Equal(t, "unknown", LanguageUnknown.String())
}

func TestSupportedLanguages(t *testing.T) {
	assert.Len(t, SupportedLanguages(), 3)
}

// --- Manager ---

func TestManagerParseComponent(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.ParseComponent([]byte(`export const B = () => <button className="bg-blue-500">Go</button>;`))
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.False(t, root.HasError())
	assert.Equal(t, "program", root.Kind())
}

func TestManagerParse_PartialTreeOnBrokenSource(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	// Broken source still yields a tree; the error surfaces on the root node.
	tree, err := m.Parse([]byte(`export function Broken( { return <div`), LanguageTSX)
	require.NoError(t, err)
	defer tree.Close()
	assert.True(t, tree.RootNode().HasError())
}

func TestManagerParse_UnknownLanguage(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	_, err := m.Parse([]byte("let x = 1;"), LanguageUnknown)
	assert.Error(t, err)
}

func TestManagerParseFile(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	tree, err := m.ParseFile([]byte("const x: number = 1;"), "types.ts")
	require.NoError(t, err)
	tree.Close()

	tree, err = m.ParseFile([]byte("const y = <div>a</div>;"), "nav.jsx")
	require.NoError(t, err)
	tree.Close()

	_, err = m.ParseFile([]byte("body { color: red; }"), "styles.css")
	assert.Error(t, err)
}

func TestManagerStats(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	assert.Equal(t, 0, m.GetStats().ParsesCalled)

	tree, err := m.ParseComponent([]byte("const x = 1;"))
	require.NoError(t, err)
	tree.Close()

	stats := m.GetStats()
	assert.Equal(t, 1, stats.ParsesCalled)
	assert.GreaterOrEqual(t, stats.ParsersCreated, 1)
}

func TestManagerConcurrentParsing(t *testing.T) {
	m := NewManager(nil)
	defer m.Close()

	const goroutines = 16
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tree, err := m.ParseComponent([]byte(`const x = <div className="p-4">a</div>;`))
			if err != nil {
				errs <- err
				return
			}
			tree.Close()
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent parse failed: %v", err)
	}
	assert.Equal(t, goroutines, m.GetStats().ParsesCalled)
}

func TestManagerClose(t *testing.T) {
	m := NewManager(nil)

	tree, err := m.ParseComponent([]byte("const x = 1;"))
	require.NoError(t, err)
	tree.Close()

	require.NoError(t, m.Close())
	assert.Equal(t, 0, m.GetStats().ParsersCreated)
}
