package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/parser"
)

// --- helpers ---

var manager = parser.NewManager(nil)

func testValidator() *Validator {
	return New(manager, nil)
}

func validConfig() *config.ComponentConfig {
	return &config.ComponentConfig{
		Metadata: config.Metadata{Name: "Button", Description: "A clickable button"},
		Code:     `export const Button = () => <button className="bg-blue-500">Go</button>;`,
		EditableElements: []config.EditableElement{
			{
				ID: "button-0", Tag: "button", Name: "Button 1",
				ApplyStrategy: config.StrategyClassName,
				Properties: []config.PropertyDefinition{
					{
						Name: "backgroundColor", Type: config.PropertyColor,
						Apply: config.ApplyClass, ClassGroup: "bg", ClassPrefix: "bg-",
					},
				},
				Tailwind: &config.TailwindConfig{
					EditableGroups: []string{"bg"},
					ReplaceGroups:  []string{"bg", "text"},
				},
			},
		},
	}
}

// --- errors ---

func TestValidateConfig_Valid(t *testing.T) {
	res := testValidator().ValidateConfig(validConfig())

	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.NoError(t, res.Err())
}

func TestValidateConfig_NilConfig(t *testing.T) {
	res := testValidator().ValidateConfig(nil)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "config is nil")
	assert.Error(t, res.Err())
}

func TestValidateConfig_MissingNameAndCode(t *testing.T) {
	res := testValidator().ValidateConfig(&config.ComponentConfig{})

	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "metadata name is required")
	assert.Contains(t, res.Errors, "component code is required")
}

func TestValidateConfig_DuplicateElementIDs(t *testing.T) {
	cfg := validConfig()
	cfg.EditableElements = append(cfg.EditableElements, cfg.EditableElements[0])

	res := testValidator().ValidateConfig(cfg)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, `duplicate element id "button-0"`)
}

func TestValidateConfig_DuplicateProperties(t *testing.T) {
	cfg := validConfig()
	el := &cfg.EditableElements[0]
	el.Properties = append(el.Properties, el.Properties[0])

	res := testValidator().ValidateConfig(cfg)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, `element "button-0" has duplicate property "backgroundColor"`)
}

func TestValidateConfig_ClassPropertyWithoutGroup(t *testing.T) {
	cfg := validConfig()
	cfg.EditableElements[0].Properties[0].ClassGroup = ""

	res := testValidator().ValidateConfig(cfg)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "class-applied but has no class group")
}

func TestValidateConfig_BrokenCode(t *testing.T) {
	cfg := validConfig()
	cfg.Code = `export function Broken( { return <div`

	res := testValidator().ValidateConfig(cfg)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "code is not syntactically valid")
}

// --- warnings ---

func TestValidateConfig_SelectorDriftWarns(t *testing.T) {
	cfg := validConfig()
	cfg.EditableElements[0].ID = "button-3"

	res := testValidator().ValidateConfig(cfg)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, `element "button-3" can no longer be located in the code`)
}

func TestValidateConfig_SyntheticRootSkipsDriftCheck(t *testing.T) {
	cfg := validConfig()
	cfg.EditableElements[0] = config.EditableElement{
		ID: "root", Tag: "div", Name: "Root",
		Properties: []config.PropertyDefinition{
			{
				Name: "backgroundColor", Type: config.PropertyColor,
				Apply: config.ApplyClass, ClassGroup: "bg",
			},
		},
	}

	res := testValidator().ValidateConfig(cfg)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Warnings)
}

func TestValidateConfig_EmptyDescriptionWarns(t *testing.T) {
	cfg := validConfig()
	cfg.Metadata.Description = ""

	res := testValidator().ValidateConfig(cfg)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, "metadata description is empty")
}

func TestValidateConfig_NoPropertiesWarns(t *testing.T) {
	cfg := validConfig()
	cfg.EditableElements[0].Properties = nil

	res := testValidator().ValidateConfig(cfg)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, `element "button-0" has no properties`)
}

func TestValidateConfig_GroupOutsideEditableWarns(t *testing.T) {
	cfg := validConfig()
	cfg.EditableElements[0].Properties[0].ClassGroup = "rounded"

	res := testValidator().ValidateConfig(cfg)
	assert.True(t, res.Valid)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], `uses group "rounded" outside the editable groups`)
}
