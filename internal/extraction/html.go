package extraction

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const htmlBlocks = "h1, h2, h3, h4, h5, h6, p, li, pre, dt, dd, td, th, blockquote"

// HTMLExtractor pulls readable text out of an HTML résumé, one line per block
// element, with a blank line ahead of each heading.
type HTMLExtractor struct{}

func (h *HTMLExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Kind: KindHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")

	var lines []string
	doc.Find(htmlBlocks).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are covered by their outermost ancestor.
		if s.ParentsFiltered(htmlBlocks).Length() > 0 {
			return
		}

		tag := goquery.NodeName(s)
		t := cleanLines(s.Text(), tag == "pre")
		if t == "" {
			return
		}
		switch {
		case len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6':
			if len(lines) > 0 {
				lines = append(lines, "")
			}
		case tag == "li":
			t = "- " + t
		}
		lines = append(lines, t)
	})
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Kind: KindHTML, Message: "extraction cancelled", Cause: err}
	}

	if len(lines) == 0 {
		return cleanLines(doc.Find("body").Text(), false), nil
	}
	return strings.Join(lines, "\n"), nil
}

// cleanLines trims every line and drops empty ones. Unless keepSpacing is set,
// runs of whitespace inside a line collapse to one space.
func cleanLines(s string, keepSpacing bool) string {
	var cleaned []string
	for _, line := range strings.Split(s, "\n") {
		if !keepSpacing {
			line = strings.Join(strings.Fields(line), " ")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
