// Package jsx provides the shared JSX element traversal used by both config
// generation and code modification. Both sides resolve "the Nth occurrence of
// tag X" through the same depth-first walk of the same grammar, so occurrence
// numbering assigned at generation time always matches the element a later
// edit resolves to.
package jsx

import (
	"strconv"
	"strings"
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Element is one JSX element occurrence in source order.
type Element struct {
	// Tag is the literal tag name as written ("Button", "div").
	Tag string
	// Index is the 0-based occurrence index among elements with the same
	// literal tag spelling, in depth-first source order.
	Index int
	// Node is the jsx_element or jsx_self_closing_element node.
	Node *ts.Node
	// Opening is the jsx_opening_element node, or Node itself when
	// self-closing. Its byte span covers "<Tag ...>" exactly.
	Opening *ts.Node
	// SelfClosing reports whether the element has no content span.
	SelfClosing bool
}

// ID returns the stable element identity: lowercase(tag) + "-" + index.
func (e Element) ID() string {
	return ElementID(e.Tag, e.Index)
}

// ElementID builds the stable identity for a tag occurrence.
func ElementID(tag string, index int) string {
	return strings.ToLower(tag) + "-" + strconv.Itoa(index)
}

// OccurrenceFromID parses the trailing numeric segment of an element ID
// (after the last '-') as the occurrence index. Non-numeric IDs resolve to 0.
func OccurrenceFromID(id string) int {
	i := strings.LastIndex(id, "-")
	if i < 0 || i+1 >= len(id) {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Collect walks the tree depth-first in source order and returns every JSX
// element (fragments excluded) with its per-tag occurrence index assigned.
func Collect(root *ts.Node, source []byte) []Element {
	var elements []Element
	counters := make(map[string]int)
	collect(root, source, counters, &elements)
	return elements
}

func collect(node *ts.Node, source []byte, counters map[string]int, out *[]Element) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "jsx_element":
		opening := findChildByKind(node, "jsx_opening_element")
		if opening != nil {
			if tag := tagName(opening, source); tag != "" {
				idx := counters[tag]
				counters[tag]++
				*out = append(*out, Element{
					Tag:     tag,
					Index:   idx,
					Node:    node,
					Opening: opening,
				})
			}
		}
	case "jsx_self_closing_element":
		if tag := tagName(node, source); tag != "" {
			idx := counters[tag]
			counters[tag]++
			*out = append(*out, Element{
				Tag:         tag,
				Index:       idx,
				Node:        node,
				Opening:     node,
				SelfClosing: true,
			})
		}
	}

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		k := child.Kind()
		// The opening/closing tags were already consumed above; attribute
		// expressions inside them can still contain JSX, so recurse into the
		// opening tag of jsx_element via its own subtree.
		if k == "jsx_closing_element" {
			continue
		}
		collect(child, source, counters, out)
	}
}

// tagName extracts the tag from an opening or self-closing element node.
func tagName(node *ts.Node, source []byte) string {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "identifier", "member_expression", "nested_identifier":
			return child.Utf8Text(source)
		}
	}
	return ""
}

// Find resolves the Nth occurrence of a tag against a collected element list.
//
// The tag is tried in candidate order (literal spelling, lowercase, then
// capitalized) to tolerate case drift between generation and edit time.
// Occurrence counting is per candidate spelling, matching the counters
// Collect assigned. Returns nil when no candidate yields a hit.
func Find(elements []Element, tag string, occurrence int) *Element {
	if occurrence < 0 {
		return nil
	}
	for _, candidate := range TagCandidates(tag) {
		for i := range elements {
			if elements[i].Tag == candidate && elements[i].Index == occurrence {
				return &elements[i]
			}
		}
	}
	return nil
}

// TagCandidates returns the tag spellings tried when locating an element:
// the literal tag, its lowercase form, and its capitalized form, deduplicated.
func TagCandidates(tag string) []string {
	candidates := []string{tag}
	lower := strings.ToLower(tag)
	if lower != tag {
		candidates = append(candidates, lower)
	}
	if tag != "" {
		capitalized := string(unicode.ToUpper(rune(tag[0]))) + tag[1:]
		if capitalized != tag && capitalized != lower {
			candidates = append(candidates, capitalized)
		}
	}
	return candidates
}

// Attribute returns the jsx_attribute node with the given name on an
// element's opening tag, or nil.
func Attribute(el Element, source []byte, name string) *ts.Node {
	opening := el.Opening
	if opening == nil {
		return nil
	}
	for i := uint(0); i < uint(opening.ChildCount()); i++ {
		child := opening.Child(i)
		if child.Kind() != "jsx_attribute" {
			continue
		}
		if AttributeName(child, source) == name {
			return child
		}
	}
	return nil
}

// AttributeName returns the name of a jsx_attribute node.
func AttributeName(attr *ts.Node, source []byte) string {
	for i := uint(0); i < uint(attr.ChildCount()); i++ {
		child := attr.Child(i)
		if child.Kind() == "property_identifier" {
			return child.Utf8Text(source)
		}
	}
	return ""
}

// AttributeValue returns the value node of a jsx_attribute (a string node or
// a jsx_expression node), or nil for bare boolean attributes.
func AttributeValue(attr *ts.Node) *ts.Node {
	for i := uint(0); i < uint(attr.ChildCount()); i++ {
		child := attr.Child(i)
		switch child.Kind() {
		case "string", "jsx_expression":
			return child
		}
	}
	return nil
}

// ContentSpan returns the byte span strictly between the opening tag's end
// and the closing tag's start. ok is false for self-closing elements and for
// elements whose closing tag is missing.
func ContentSpan(el Element) (start, end uint, ok bool) {
	if el.SelfClosing || el.Opening == nil {
		return 0, 0, false
	}
	closing := findChildByKind(el.Node, "jsx_closing_element")
	if closing == nil {
		return 0, 0, false
	}
	return uint(el.Opening.EndByte()), uint(closing.StartByte()), true
}

func findChildByKind(node *ts.Node, kind string) *ts.Node {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
