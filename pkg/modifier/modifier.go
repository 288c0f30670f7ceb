// Package modifier applies property edits back into component source via
// byte-range splices on the original string. The source is parsed for
// analysis only; the tree is never re-serialized, so formatting, comments,
// and unrelated code survive every edit byte for byte.
//
// Each entry point re-parses the current code and resolves the target
// element through the same traversal config generation uses, so occurrence
// numbering always lines up between the two sides.
package modifier

import (
	"errors"
	"log/slog"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/propsmith/propsmith/pkg/jsx"
	"github.com/propsmith/propsmith/pkg/parser"
	"github.com/propsmith/propsmith/pkg/tailwind"
)

// ErrElementNotFound reports that the requested tag occurrence (or its
// content span) could not be located in the current code. Callers treat this
// as "keep the prior code", never as a hard failure.
var ErrElementNotFound = errors.New("element not found in source")

// Modifier performs text-splice edits on component source.
type Modifier struct {
	parsers *parser.Manager
	logger  *slog.Logger
}

// New creates a modifier. A nil logger falls back to slog.Default().
func New(parsers *parser.Manager, logger *slog.Logger) *Modifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Modifier{parsers: parsers, logger: logger}
}

// ClassUpdate merges or replaces Tailwind classes on one element.
type ClassUpdate struct {
	Code      string
	Tag       string
	ElementID string
	// NextClass is the raw value; NormalizeValue turns it into concrete
	// tokens using ClassPrefix. Empty means "remove the group entirely".
	NextClass   string
	ClassGroup  string
	ClassPrefix string
}

// AttributeUpdate sets, replaces, or removes one JSX attribute.
type AttributeUpdate struct {
	Code      string
	Tag       string
	ElementID string
	Attribute string
	// Value empty removes the attribute.
	Value string
}

// ContentUpdate replaces the text between an element's opening and closing
// tags.
type ContentUpdate struct {
	Code      string
	Tag       string
	ElementID string
	Value     string
}

// ApplyClassUpdate rewrites the className attribute of the Nth occurrence of
// a tag under the replace-within-group policy.
//
// Static string content (plain, braced, template quasis, "+"-concatenated
// literals) is spliced in place, preserving brace style and quote character.
// A missing className attribute is synthesized when the normalized value is
// non-empty. A fully dynamic className degrades to append-only: new classes
// are concatenated onto the expression, and group removal is a no-op.
func (m *Modifier) ApplyClassUpdate(u ClassUpdate) (string, error) {
	next := tailwind.NormalizeValue(u.NextClass, u.ClassPrefix)

	source := []byte(u.Code)
	tree, err := m.parsers.ParseComponent(source)
	if err != nil {
		return "", ErrElementNotFound
	}
	defer tree.Close()

	el := jsx.Find(jsx.Collect(tree.RootNode(), source), u.Tag, jsx.OccurrenceFromID(u.ElementID))
	if el == nil {
		return "", ErrElementNotFound
	}

	attr := jsx.Attribute(*el, source, "className")
	if attr == nil {
		if len(next) == 0 {
			return u.Code, nil
		}
		return insertAttribute(u.Code, el, "className", strings.Join(next, " ")), nil
	}

	value := jsx.AttributeValue(attr)
	if value == nil {
		// Bare className with no value; rewrite the whole attribute.
		if len(next) == 0 {
			return removeAttributeSpan(u.Code, attr), nil
		}
		return spliceString(u.Code, uint(attr.StartByte()), uint(attr.EndByte()),
			`className="`+strings.Join(next, " ")+`"`), nil
	}

	spans := jsx.StringSpans(value)
	if len(spans) == 0 {
		// Dynamic-only expression.
		if len(next) == 0 || value.Kind() != "jsx_expression" {
			return u.Code, nil
		}
		appendix := ` + " ` + strings.Join(next, " ") + `"`
		return spliceString(u.Code, uint(value.EndByte())-1, uint(value.EndByte())-1, appendix), nil
	}

	drop := make(map[string]bool)
	if u.ClassGroup != "" {
		drop[u.ClassGroup] = true
	}
	for _, c := range next {
		if g := tailwind.Group(c); g != "" {
			drop[g] = true
		}
	}

	// Splice right to left so earlier spans keep their offsets. New classes
	// land on the last static span.
	code := u.Code
	for i := len(spans) - 1; i >= 0; i-- {
		span := spans[i]
		tokens := tailwind.Split(code[span.Start:span.End])
		kept := tokens[:0:0]
		for _, t := range tokens {
			if !drop[tailwind.Group(t)] {
				kept = append(kept, t)
			}
		}
		if i == len(spans)-1 {
			kept = append(kept, next...)
		}
		code = spliceString(code, span.Start, span.End,
			rebuildSpan(code[span.Start:span.End], kept))
	}
	return code, nil
}

// ApplyAttributeUpdate rewrites one attribute of the Nth occurrence of a tag.
// An existing attribute gets its value replaced in place (quote character
// preserved) or is removed entirely when the new value is empty; a missing
// attribute is inserted before the closing bracket when the value is
// non-empty.
func (m *Modifier) ApplyAttributeUpdate(u AttributeUpdate) (string, error) {
	source := []byte(u.Code)
	tree, err := m.parsers.ParseComponent(source)
	if err != nil {
		return "", ErrElementNotFound
	}
	defer tree.Close()

	el := jsx.Find(jsx.Collect(tree.RootNode(), source), u.Tag, jsx.OccurrenceFromID(u.ElementID))
	if el == nil {
		return "", ErrElementNotFound
	}

	attr := jsx.Attribute(*el, source, u.Attribute)
	if attr == nil {
		if u.Value == "" {
			return u.Code, nil
		}
		return insertAttribute(u.Code, el, u.Attribute, u.Value), nil
	}

	if u.Value == "" {
		return removeAttributeSpan(u.Code, attr), nil
	}

	value := jsx.AttributeValue(attr)
	if value == nil {
		// Bare boolean attribute gaining a value.
		return spliceString(u.Code, uint(attr.EndByte()), uint(attr.EndByte()),
			`="`+u.Value+`"`), nil
	}

	switch value.Kind() {
	case "string":
		// Replace inside the existing quotes, whatever character they use.
		return spliceString(u.Code, uint(value.StartByte())+1, uint(value.EndByte())-1, u.Value), nil
	case "jsx_expression":
		inner := jsx.InnerExpression(value)
		if inner != nil && inner.Kind() == "string" {
			return spliceString(u.Code, uint(inner.StartByte())+1, uint(inner.EndByte())-1, u.Value), nil
		}
		// Non-string expression: the raw value replaces the expression body.
		return spliceString(u.Code, uint(value.StartByte())+1, uint(value.EndByte())-1, u.Value), nil
	default:
		return spliceString(u.Code, uint(value.StartByte()), uint(value.EndByte()),
			`"`+u.Value+`"`), nil
	}
}

// ApplyContentUpdate replaces everything strictly between the opening tag's
// end and the closing tag's start. The closing tag comes from the parse, so
// nested same-tag elements resolve correctly. Self-closing tags have no
// content span and miss.
func (m *Modifier) ApplyContentUpdate(u ContentUpdate) (string, error) {
	source := []byte(u.Code)
	tree, err := m.parsers.ParseComponent(source)
	if err != nil {
		return "", ErrElementNotFound
	}
	defer tree.Close()

	el := jsx.Find(jsx.Collect(tree.RootNode(), source), u.Tag, jsx.OccurrenceFromID(u.ElementID))
	if el == nil {
		return "", ErrElementNotFound
	}

	start, end, ok := jsx.ContentSpan(*el)
	if !ok {
		return "", ErrElementNotFound
	}
	return spliceString(u.Code, start, end, u.Value), nil
}

// spliceString is the single mutation primitive: before + replacement + after.
func spliceString(code string, start, end uint, replacement string) string {
	return code[:start] + replacement + code[end:]
}

// insertAttribute synthesizes name="value" immediately before the opening
// tag's closing bracket, normalizing spacing around a self-closing slash.
func insertAttribute(code string, el *jsx.Element, name, value string) string {
	end := uint(el.Opening.EndByte())
	pos := end - 1
	if el.SelfClosing {
		pos = end - 2
	}

	text := name + `="` + value + `"`
	if pos > 0 && isSpace(code[pos-1]) {
		return spliceString(code, pos, pos, text+" ")
	}
	return spliceString(code, pos, pos, " "+text)
}

// removeAttributeSpan deletes an attribute along with the whitespace run
// preceding it.
func removeAttributeSpan(code string, attr *ts.Node) string {
	start := uint(attr.StartByte())
	end := uint(attr.EndByte())
	for start > 0 && isSpace(code[start-1]) {
		start--
	}
	return spliceString(code, start, end, "")
}

// rebuildSpan re-renders a static class span with updated tokens, keeping the
// span's original leading and trailing whitespace.
func rebuildSpan(original string, tokens []string) string {
	trimmedLeft := strings.TrimLeft(original, " \t\n")
	prefix := original[:len(original)-len(trimmedLeft)]
	trimmedRight := strings.TrimRight(original, " \t\n")
	suffix := original[len(trimmedRight):]
	return prefix + strings.Join(tokens, " ") + suffix
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
