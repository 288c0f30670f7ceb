package jsx

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/propsmith/propsmith/pkg/tailwind"
)

// Span is a half-open byte range in the source.
type Span struct {
	Start uint
	End   uint
}

// ExtractClassTokens statically analyzes a className attribute value and
// returns its class tokens. Supported forms are plain string literals, braced
// string literals, template literals (static quasis only, embedded
// expressions ignored), and "+"-concatenated string expressions. Any other
// expression form contributes zero tokens, which degrades class editing for
// that element to append-only.
func ExtractClassTokens(valueNode *ts.Node, source []byte) []string {
	var tokens []string
	for _, span := range StringSpans(valueNode) {
		tokens = append(tokens, tailwind.Split(string(source[span.Start:span.End]))...)
	}
	return tokens
}

// StringSpans returns, in source order, the byte spans of the static string
// content (inside the quotes or backticks) of a className value node. The
// modifier splices class edits only inside these spans, leaving dynamic
// subexpressions untouched.
func StringSpans(valueNode *ts.Node) []Span {
	var spans []Span
	stringSpans(valueNode, &spans)
	return spans
}

func stringSpans(node *ts.Node, out *[]Span) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "string":
		fragments := 0
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Kind() == "string_fragment" {
				*out = append(*out, Span{uint(child.StartByte()), uint(child.EndByte())})
				fragments++
			}
		}
		if fragments == 0 {
			// Empty literal: the span sits between the quotes.
			*out = append(*out, Span{uint(node.StartByte()) + 1, uint(node.EndByte()) - 1})
		}

	case "template_string":
		fragments := 0
		for i := uint(0); i < uint(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Kind() == "string_fragment" {
				*out = append(*out, Span{uint(child.StartByte()), uint(child.EndByte())})
				fragments++
			}
		}
		if fragments == 0 && !hasChildOfKind(node, "template_substitution") {
			*out = append(*out, Span{uint(node.StartByte()) + 1, uint(node.EndByte()) - 1})
		}

	case "jsx_expression", "parenthesized_expression":
		stringSpans(InnerExpression(node), out)

	case "binary_expression":
		op := node.ChildByFieldName("operator")
		if op == nil || op.Kind() != "+" {
			return
		}
		stringSpans(node.ChildByFieldName("left"), out)
		stringSpans(node.ChildByFieldName("right"), out)
	}
}

// InnerExpression unwraps a jsx_expression or parenthesized_expression to the
// expression node it contains.
func InnerExpression(node *ts.Node) *ts.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "{", "}", "(", ")", "comment":
			continue
		}
		return child
	}
	return nil
}

func hasChildOfKind(node *ts.Node, kind string) bool {
	return findChildByKind(node, kind) != nil
}
