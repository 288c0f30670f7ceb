package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() *ComponentConfig {
	return &ComponentConfig{
		Metadata: Metadata{Name: "Button", Description: "A button", Category: "button"},
		Code:     `export const Button = () => <button className="bg-blue-500">Go</button>;`,
		EditableElements: []EditableElement{
			{
				ID: "button-0", Tag: "button", Type: "button", Name: "button 1",
				ApplyStrategy: StrategyClassName,
				Properties: []PropertyDefinition{
					{
						Name: "backgroundColor", Label: "Background Color",
						Type: PropertyColor, DefaultValue: "bg-blue-500",
						Apply: ApplyClass, ClassGroup: "bg", ClassPrefix: "bg-",
					},
				},
				Tailwind: &TailwindConfig{
					EditableGroups: []string{"bg"},
					ReplaceGroups:  []string{"bg", "text"},
				},
			},
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	cfg := sampleConfig()

	data, err := cfg.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"editableElements"`)
	assert.Contains(t, string(data), `"tailwindConfig"`)
	assert.Contains(t, string(data), `"classPrefix"`)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestFromJSON_Invalid(t *testing.T) {
	_, err := FromJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	cfg := sampleConfig()
	path := filepath.Join(t.TempDir(), "button.json")

	require.NoError(t, cfg.SaveToFile(path))
	back, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestElementAndPropertyLookup(t *testing.T) {
	cfg := sampleConfig()

	el := cfg.Element("button-0")
	require.NotNil(t, el)
	assert.NotNil(t, el.Property("backgroundColor"))
	assert.Nil(t, el.Property("fontSize"))
	assert.Nil(t, cfg.Element("div-3"))
}
