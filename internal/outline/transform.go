package outline

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// idTransformer stamps every heading node with an id attribute so the
// rendered HTML anchors line up with the Section ids from Parse.
type idTransformer struct{}

func headingIDTransformer() util.PrioritizedValue {
	return util.Prioritized(idTransformer{}, 100)
}

func (idTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			h.SetAttributeString("id", []byte(Slug(headingText(h, reader.Source()))))
		}
		return ast.WalkContinue, nil
	})
}

// headingText collects the literal text of a heading, descending through
// inline markup like emphasis or code spans.
func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
