package extraction

import (
	"bytes"
	"context"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXExtractor writes one line per paragraph of a Word document.
type DOCXExtractor struct{}

func (d *DOCXExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: KindDOCX, Message: "failed to parse DOCX", Cause: err}
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		lines = append(lines, paragraphText(para))
	}
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Kind: KindDOCX, Message: "extraction cancelled", Cause: err}
	}
	return strings.Join(lines, "\n"), nil
}

// paragraphText keeps empty paragraphs as empty lines; they separate entries.
func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
