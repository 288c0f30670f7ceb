// Package config defines the component configuration document: the editable
// elements and typed properties derived from component source, the Tailwind
// group policy per element, and the variant metadata extracted from cva()
// definitions. Documents serialize as camelCase JSON and round-trip with the
// property-panel frontend.
package config

// PropertyType is the closed set of property editor types.
type PropertyType string

const (
	PropertyString   PropertyType = "string"
	PropertyNumber   PropertyType = "number"
	PropertyBoolean  PropertyType = "boolean"
	PropertyColor    PropertyType = "color"
	PropertySelect   PropertyType = "select"
	PropertySlider   PropertyType = "slider"
	PropertyTextarea PropertyType = "textarea"
)

// ApplyMode says how a single property edit is written back into the source.
type ApplyMode string

const (
	ApplyClass     ApplyMode = "class"
	ApplyContent   ApplyMode = "content"
	ApplyAttribute ApplyMode = "attribute"
)

// ApplyStrategy is the element-level default write-back mechanism, used when
// a property does not carry its own ApplyMode.
type ApplyStrategy string

const (
	StrategyClassName   ApplyStrategy = "className"
	StrategyStyle       ApplyStrategy = "style"
	StrategyAttribute   ApplyStrategy = "attribute"
	StrategyCSSVariable ApplyStrategy = "cssVariable"
)

// PropertyDefinition is one editable facet of an element.
type PropertyDefinition struct {
	// Name is unique within the owning element.
	Name         string       `json:"name"`
	Label        string       `json:"label"`
	Type         PropertyType `json:"type"`
	DefaultValue string       `json:"defaultValue,omitempty"`

	// Options holds the allowed values for select properties.
	Options []string `json:"options,omitempty"`
	// Min/Max/Step bound slider and number properties.
	Min  *float64 `json:"min,omitempty"`
	Max  *float64 `json:"max,omitempty"`
	Step *float64 `json:"step,omitempty"`

	// Apply overrides the element-level strategy for this property.
	Apply ApplyMode `json:"apply,omitempty"`

	// ClassGroup and ClassPrefix back class-applied properties: the group the
	// new value replaces or merges into, and the literal prefix prepended to a
	// bare value ("bg-" + "blue-500" -> "bg-blue-500").
	ClassGroup  string `json:"classGroup,omitempty"`
	ClassPrefix string `json:"classPrefix,omitempty"`

	// AttributeName backs attribute-applied properties.
	AttributeName string `json:"attributeName,omitempty"`
}

// TailwindConfig describes which utility-class groups an element exposes and
// how edits within each group combine with existing classes.
type TailwindConfig struct {
	// EditableGroups lists every group discovered on the element.
	EditableGroups []string `json:"editableGroups,omitempty"`
	// ReplaceGroups hold at most one class at a time (bg, text).
	ReplaceGroups []string `json:"replaceGroups,omitempty"`
	// MergeGroups coexist with other classes (p, rounded, border, ...).
	MergeGroups []string `json:"mergeGroups,omitempty"`
}

// EditableElement is one JSX element occurrence the user may customize.
type EditableElement struct {
	// ID is lowercase(tag) + "-" + occurrence index, assigned in depth-first
	// source order. IDs are unique within one generation pass.
	ID string `json:"id"`
	// Tag is the literal JSX tag name as written in the source.
	Tag string `json:"tag"`
	// Type is the canonical component type ("button", "navigation-menu").
	Type string `json:"type,omitempty"`
	// Name is the human display label ("Button 2").
	Name string `json:"name"`

	Properties []PropertyDefinition `json:"properties"`

	ApplyStrategy ApplyStrategy   `json:"applyStrategy,omitempty"`
	Tailwind      *TailwindConfig `json:"tailwindConfig,omitempty"`
}

// Property returns the named property definition, or nil.
func (e *EditableElement) Property(name string) *PropertyDefinition {
	for i := range e.Properties {
		if e.Properties[i].Name == name {
			return &e.Properties[i]
		}
	}
	return nil
}

// EffectiveApply resolves a property's write-back mode, falling back to the
// element's strategy when the property does not specify one.
func (e *EditableElement) EffectiveApply(prop *PropertyDefinition) ApplyMode {
	if prop != nil && prop.Apply != "" {
		return prop.Apply
	}
	switch e.ApplyStrategy {
	case StrategyAttribute:
		return ApplyAttribute
	case StrategyStyle, StrategyCSSVariable:
		// Style and CSS-variable strategies write through the style attribute.
		return ApplyAttribute
	default:
		return ApplyClass
	}
}

// Metadata identifies and describes a stored component.
type Metadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Author      string   `json:"author,omitempty"`
	Version     string   `json:"version,omitempty"`
}

// VariantOption is one named option of a cva variant axis, with the concrete
// classes applying it implies.
type VariantOption struct {
	Name    string   `json:"name"`
	Classes []string `json:"classes"`
}

// VariantAxis is one top-level cva variant dimension ("variant", "size").
type VariantAxis struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
	Default string          `json:"default,omitempty"`
}

// PropSection is a property-panel grouping derived from a variant axis,
// letting the UI offer "apply the outline variant" as a one-click action.
type PropSection struct {
	Title   string   `json:"title"`
	Axis    string   `json:"axis"`
	Options []string `json:"options"`
	Default string   `json:"default,omitempty"`
}

// ComponentConfig is the unit of storage and exchange. Code is the single
// source of truth: all elements and properties are derived from it, and every
// edit replaces it wholesale with the modifier's output.
type ComponentConfig struct {
	Metadata Metadata `json:"metadata"`
	Code     string   `json:"code"`

	EditableElements []EditableElement `json:"editableElements"`

	// Properties is the deprecated flat list, a legacy fallback consulted only
	// when EditableElements is absent.
	Properties []PropertyDefinition `json:"properties,omitempty"`

	Variants     []VariantAxis `json:"variants,omitempty"`
	PropSections []PropSection `json:"propSections,omitempty"`

	// Warnings carries non-fatal analysis diagnostics ("could not analyze
	// component code").
	Warnings []string `json:"warnings,omitempty"`
}

// Element returns the editable element with the given ID, or nil.
func (c *ComponentConfig) Element(id string) *EditableElement {
	for i := range c.EditableElements {
		if c.EditableElements[i].ID == id {
			return &c.EditableElements[i]
		}
	}
	return nil
}
