package extraction

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor reads the text layer of a PDF page by page.
type PDFExtractor struct{}

// Extract joins page texts with newlines so a header at the top of a page
// still starts a line.
func (p *PDFExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", &ExtractionError{Kind: KindPDF, Message: "malformed PDF", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: KindPDF, Message: "failed to open PDF", Cause: err}
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", &ExtractionError{Kind: KindPDF, Message: "extraction cancelled", Cause: err}
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := pageLines(page)
		if err != nil {
			return "", &ExtractionError{Kind: KindPDF, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n"), nil
}

// pageLines rebuilds the lines of a page from glyph positions. GetPlainText
// only breaks lines on BT, T*, ' and ", so text placed with Td or Tm runs
// together; it is used only when the positioned read fails or finds nothing.
func pageLines(page pdflib.Page) (string, error) {
	if text, ok := positionedText(page); ok {
		return text, nil
	}
	return page.GetPlainText(nil)
}

func positionedText(page pdflib.Page) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()
	glyphs := page.Content().Text
	if len(glyphs) == 0 {
		return "", false
	}
	text = joinGlyphs(glyphs)
	return text, strings.TrimSpace(text) != ""
}

// joinGlyphs keeps content stream order and starts a new line whenever the
// baseline moves by more than half the font size. A horizontal gap wider than
// a quarter of the font size between glyphs on one line becomes a space.
func joinGlyphs(glyphs []pdflib.Text) string {
	var (
		b       strings.Builder
		started bool
		lineY   float64
		prev    pdflib.Text
	)
	for _, g := range glyphs {
		if !printable(g.S) {
			continue
		}
		size := math.Max(math.Abs(g.FontSize), 2)
		switch {
		case !started:
			started = true
			lineY = g.Y
		case math.Abs(g.Y-lineY) > size/2:
			b.WriteByte('\n')
			lineY = g.Y
		case prev.W > 0 && g.X-(prev.X+prev.W) > size/4 && !strings.HasSuffix(prev.S, " ") && g.S != " ":
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		prev = g
	}
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, "\n")
}

func printable(s string) bool {
	for _, r := range s {
		if r != unicode.ReplacementChar && !unicode.IsControl(r) {
			return true
		}
	}
	return false
}
