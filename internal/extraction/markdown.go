package extraction

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor renders a Markdown document as plain lines: headings on
// their own line, list items as "- item" and blocks separated by blank lines.
type MarkdownExtractor struct{}

type mdBlock struct {
	text     string
	listItem bool
}

func (m *MarkdownExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(data))

	var blocks []mdBlock
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			blocks = append(blocks, mdBlock{text: inlineText(n, data)})
			return ast.WalkSkipChildren, nil

		case ast.KindParagraph, ast.KindTextBlock:
			t := inlineText(n, data)
			inList := n.Parent() != nil && n.Parent().Kind() == ast.KindListItem
			if inList && n.PreviousSibling() == nil {
				t = "- " + t
			}
			blocks = append(blocks, mdBlock{text: t, listItem: inList})
			return ast.WalkSkipChildren, nil

		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			blocks = append(blocks, mdBlock{text: blockLines(n, data)})
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", &ExtractionError{Kind: KindMarkdown, Message: "failed to walk document", Cause: err}
	}
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Kind: KindMarkdown, Message: "extraction cancelled", Cause: err}
	}

	var buf strings.Builder
	for i, b := range blocks {
		if i > 0 {
			if b.listItem && blocks[i-1].listItem {
				buf.WriteString("\n")
			} else {
				buf.WriteString("\n\n")
			}
		}
		buf.WriteString(b.text)
	}
	return buf.String(), nil
}

// inlineText concatenates the text leaves under n, keeping soft and hard breaks
// as newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.Label(src))
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

func blockLines(n ast.Node, src []byte) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}
