package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

// --- ParseValue ---

func TestParseValue_Number(t *testing.T) {
	prop := PropertyDefinition{
		Name: "padding", Type: PropertyNumber,
		Min: floatPtr(0), Max: floatPtr(16),
	}

	v, err := ParseValue(prop, "8")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind)
	assert.Equal(t, 8.0, v.Num)
	assert.Equal(t, "8", v.Raw())

	v, err = ParseValue(prop, "2.5")
	require.NoError(t, err)
	assert.Equal(t, "2.5", v.Raw())

	_, err = ParseValue(prop, "-1")
	assert.Error(t, err)

	_, err = ParseValue(prop, "17")
	assert.Error(t, err)

	_, err = ParseValue(prop, "lots")
	assert.Error(t, err)

	_, err = ParseValue(prop, "")
	assert.Error(t, err)
}

func TestParseValue_Slider(t *testing.T) {
	prop := PropertyDefinition{
		Name: "opacity", Type: PropertySlider,
		Min: floatPtr(0), Max: floatPtr(100), Step: floatPtr(5),
	}

	v, err := ParseValue(prop, "55")
	require.NoError(t, err)
	assert.Equal(t, KindNumber, v.Kind)

	_, err = ParseValue(prop, "101")
	assert.Error(t, err)
}

func TestParseValue_Boolean(t *testing.T) {
	prop := PropertyDefinition{Name: "disabled", Type: PropertyBoolean}

	v, err := ParseValue(prop, "true")
	require.NoError(t, err)
	assert.True(t, v.Bool)
	assert.Equal(t, "true", v.Raw())

	v, err = ParseValue(prop, " 0 ")
	require.NoError(t, err)
	assert.False(t, v.Bool)

	_, err = ParseValue(prop, "yes")
	assert.Error(t, err)
}

func TestParseValue_Select(t *testing.T) {
	prop := PropertyDefinition{
		Name: "fontSize", Type: PropertySelect,
		Options: []string{"text-sm", "text-base", "text-lg"},
	}

	v, err := ParseValue(prop, "text-lg")
	require.NoError(t, err)
	assert.Equal(t, "text-lg", v.Raw())

	// Empty select values pass through as removal.
	v, err = ParseValue(prop, "")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())

	_, err = ParseValue(prop, "text-9xl")
	assert.Error(t, err)
}

func TestParseValue_ColorAndString(t *testing.T) {
	color := PropertyDefinition{Name: "backgroundColor", Type: PropertyColor}
	v, err := ParseValue(color, " bg-red-500 ")
	require.NoError(t, err)
	assert.Equal(t, KindColor, v.Kind)
	assert.Equal(t, "bg-red-500", v.Raw())

	str := PropertyDefinition{Name: "label", Type: PropertyString}
	v, err = ParseValue(str, "Click me")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind)
	assert.Equal(t, "Click me", v.Raw())

	// Textarea and unknown types behave as strings.
	area := PropertyDefinition{Name: "body", Type: PropertyTextarea}
	v, err = ParseValue(area, "line one\nline two")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", v.Raw())
}

// --- EffectiveApply ---

func TestEffectiveApply(t *testing.T) {
	el := &EditableElement{ApplyStrategy: StrategyClassName}

	assert.Equal(t, ApplyClass, el.EffectiveApply(&PropertyDefinition{}))
	assert.Equal(t, ApplyContent, el.EffectiveApply(&PropertyDefinition{Apply: ApplyContent}))

	el.ApplyStrategy = StrategyAttribute
	assert.Equal(t, ApplyAttribute, el.EffectiveApply(&PropertyDefinition{}))

	el.ApplyStrategy = StrategyStyle
	assert.Equal(t, ApplyAttribute, el.EffectiveApply(&PropertyDefinition{}))

	el.ApplyStrategy = StrategyCSSVariable
	assert.Equal(t, ApplyAttribute, el.EffectiveApply(&PropertyDefinition{}))
}
