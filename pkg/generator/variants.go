package generator

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/propsmith/propsmith/pkg/config"
	"github.com/propsmith/propsmith/pkg/jsx"
	"github.com/propsmith/propsmith/pkg/tailwind"
)

// extractVariants scans the tree for cva(base, {variants: {...}}) calls and
// returns the variant axes with each named option's concrete class list.
func extractVariants(root *ts.Node, source []byte) []config.VariantAxis {
	var axes []config.VariantAxis
	walkCalls(root, source, &axes)
	return axes
}

func walkCalls(node *ts.Node, source []byte, out *[]config.VariantAxis) {
	if node == nil {
		return
	}
	if node.Kind() == "call_expression" {
		fn := node.ChildByFieldName("function")
		if fn != nil && fn.Utf8Text(source) == "cva" {
			*out = append(*out, variantsFromCall(node, source)...)
		}
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		walkCalls(node.Child(i), source, out)
	}
}

func variantsFromCall(call *ts.Node, source []byte) []config.VariantAxis {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}

	// Second argument is the options object carrying variants/defaultVariants.
	var opts *ts.Node
	seen := 0
	for i := uint(0); i < uint(args.ChildCount()); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",", "comment":
			continue
		}
		seen++
		if seen == 2 {
			opts = child
		}
	}
	if opts == nil || opts.Kind() != "object" {
		return nil
	}

	variantsObj := objectValue(opts, source, "variants")
	if variantsObj == nil || variantsObj.Kind() != "object" {
		return nil
	}
	defaults := objectValue(opts, source, "defaultVariants")

	var axes []config.VariantAxis
	forEachPair(variantsObj, source, func(axisName string, axisValue *ts.Node) {
		if axisValue == nil || axisValue.Kind() != "object" {
			return
		}
		axis := config.VariantAxis{Name: axisName}
		forEachPair(axisValue, source, func(optName string, optValue *ts.Node) {
			axis.Options = append(axis.Options, config.VariantOption{
				Name:    optName,
				Classes: classListFromValue(optValue, source),
			})
		})
		if defaults != nil {
			if dv := objectValue(defaults, source, axisName); dv != nil {
				axis.Default = literalText(dv, source)
			}
		}
		if len(axis.Options) > 0 {
			axes = append(axes, axis)
		}
	})
	return axes
}

// classListFromValue extracts class tokens from a variant option value:
// a string, template string, "+"-concatenation, or an array of those.
func classListFromValue(node *ts.Node, source []byte) []string {
	if node == nil {
		return nil
	}
	if node.Kind() == "array" {
		var classes []string
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Kind() {
			case "[", "]", ",", "comment":
				continue
			}
			classes = append(classes, classListFromValue(child, source)...)
		}
		return classes
	}

	var classes []string
	for _, span := range jsx.StringSpans(node) {
		classes = append(classes, tailwind.Split(string(source[span.Start:span.End]))...)
	}
	return classes
}

// forEachPair iterates an object node's key/value pairs in source order.
func forEachPair(obj *ts.Node, source []byte, fn func(key string, value *ts.Node)) {
	for i := uint(0); i < uint(obj.ChildCount()); i++ {
		child := obj.Child(i)
		if child.Kind() != "pair" {
			continue
		}
		key := child.ChildByFieldName("key")
		if key == nil {
			continue
		}
		fn(literalText(key, source), child.ChildByFieldName("value"))
	}
}

// objectValue returns the value node for a named key in an object, or nil.
func objectValue(obj *ts.Node, source []byte, key string) *ts.Node {
	var found *ts.Node
	forEachPair(obj, source, func(k string, v *ts.Node) {
		if found == nil && k == key {
			found = v
		}
	})
	return found
}

// literalText renders an identifier, property name, or string literal as its
// bare text with quotes stripped.
func literalText(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}
	text := node.Utf8Text(source)
	if node.Kind() == "string" {
		text = strings.Trim(text, `"'`)
	}
	return text
}

// propSections projects variant axes into property-panel sections.
func propSections(axes []config.VariantAxis) []config.PropSection {
	sections := make([]config.PropSection, 0, len(axes))
	for _, axis := range axes {
		section := config.PropSection{
			Title:   humanize(axis.Name),
			Axis:    axis.Name,
			Default: axis.Default,
		}
		for _, opt := range axis.Options {
			section.Options = append(section.Options, opt.Name)
		}
		sections = append(sections, section)
	}
	return sections
}
