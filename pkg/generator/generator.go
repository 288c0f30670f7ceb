// Package generator derives component configurations from source code: it
// parses TSX/JSX, discovers editable elements and their occurrence identity,
// infers typed properties from Tailwind classes, and extracts cva variant
// axes. Generation is a pure function of (code, metadata, options); it never
// mutates the source.
package generator

import (
	"fmt"
	"log/slog"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/jsx"
	"github.com/propsmith/propsmith/pkg/parser"
)

// analysisWarning is the user-facing diagnostic attached to degraded configs.
const analysisWarning = "could not analyze component code"

// Options controls config generation.
type Options struct {
	// ComponentName seeds display names when metadata has no name.
	ComponentName string
	// IncludeCommonStyles synthesizes baseline background/text-color
	// properties on elements that did not declare them.
	IncludeCommonStyles bool
	// CustomProperties are caller-supplied extra properties keyed by element
	// ID, appended after inferred ones (duplicates by name suppressed).
	CustomProperties map[string][]config.PropertyDefinition
}

// DefaultOptions returns generation options with common styles enabled.
func DefaultOptions() Options {
	return Options{IncludeCommonStyles: true}
}

// Generator turns component source into component configs.
type Generator struct {
	parsers *parser.Manager
	logger  *slog.Logger
}

// New creates a generator. A nil logger falls back to slog.Default().
func New(parsers *parser.Manager, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{parsers: parsers, logger: logger}
}

// FromCode analyzes a source string and returns its component config.
//
// Parse failures never surface as errors: the returned config carries empty
// editable elements and an analysis warning, so the enclosing save/import
// flow degrades instead of failing.
func (g *Generator) FromCode(code string, meta config.Metadata, opts Options) *config.ComponentConfig {
	if meta.Name == "" {
		meta.Name = opts.ComponentName
	}
	cfg := &config.ComponentConfig{
		Metadata:         meta,
		Code:             code,
		EditableElements: []config.EditableElement{},
	}

	source := []byte(code)
	tree, err := g.parsers.ParseComponent(source)
	if err != nil {
		g.logger.Warn("component parse failed", "component", meta.Name, "error", err)
		cfg.Warnings = append(cfg.Warnings, analysisWarning)
		return cfg
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		g.logger.Warn("component source has syntax errors", "component", meta.Name)
		cfg.Warnings = append(cfg.Warnings, analysisWarning)
		return cfg
	}

	for _, el := range jsx.Collect(root, source) {
		cfg.EditableElements = append(cfg.EditableElements, g.buildElement(el, source, opts))
	}

	if len(cfg.EditableElements) == 0 {
		cfg.EditableElements = append(cfg.EditableElements, syntheticRoot())
	}

	cfg.Variants = extractVariants(root, source)
	cfg.PropSections = propSections(cfg.Variants)
	return cfg
}

func (g *Generator) buildElement(el jsx.Element, source []byte, opts Options) config.EditableElement {
	var tokens []string
	if attr := jsx.Attribute(el, source, "className"); attr != nil {
		if value := jsx.AttributeValue(attr); value != nil {
			tokens = jsx.ExtractClassTokens(value, source)
		}
	}

	props := inferProperties(tokens)
	id := el.ID()

	for _, custom := range opts.CustomProperties[id] {
		duplicate := false
		for _, p := range props {
			if p.Name == custom.Name {
				duplicate = true
				break
			}
		}
		if !duplicate {
			props = append(props, custom)
		}
	}

	if opts.IncludeCommonStyles {
		props = append(props, commonStyleProperties(props)...)
	}

	return config.EditableElement{
		ID:            id,
		Tag:           el.Tag,
		Type:          componentType(el.Tag),
		Name:          fmt.Sprintf("%s %d", el.Tag, el.Index+1),
		Properties:    props,
		ApplyStrategy: config.StrategyClassName,
		Tailwind:      buildTailwindConfig(tokens, props),
	}
}

// syntheticRoot is the element emitted when the source contains no JSX at
// all, so the property panel is never empty.
func syntheticRoot() config.EditableElement {
	props := []config.PropertyDefinition{
		{
			Name: "backgroundColor", Label: "Background Color",
			Type: config.PropertyColor, DefaultValue: "bg-white",
			Apply: config.ApplyClass, ClassGroup: "bg", ClassPrefix: "bg-",
		},
		{
			Name: "color", Label: "Text Color",
			Type: config.PropertyColor, DefaultValue: "text-slate-900",
			Apply: config.ApplyClass, ClassGroup: "text", ClassPrefix: "text-",
		},
		{
			Name: "padding", Label: "Padding",
			Type: config.PropertyString, DefaultValue: "p-4",
			Apply: config.ApplyClass, ClassGroup: "p", ClassPrefix: "p-",
		},
		{
			Name: "borderRadius", Label: "Border Radius",
			Type: config.PropertyString, DefaultValue: "rounded-lg",
			Apply: config.ApplyClass, ClassGroup: "rounded", ClassPrefix: "rounded-",
		},
	}
	return config.EditableElement{
		ID:            "root",
		Tag:           "div",
		Type:          "div",
		Name:          "Root",
		Properties:    props,
		ApplyStrategy: config.StrategyClassName,
		Tailwind:      buildTailwindConfig(nil, props),
	}
}
