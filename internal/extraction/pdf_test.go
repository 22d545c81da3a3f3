package extraction

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/jonathan/cv-coach/internal/sections"
	pdflib "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a one-page PDF whose page content is the given text operators.
func buildPDF(t *testing.T, content string) []byte {
	t.Helper()

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content)+1, content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestPDFExtractor_LinePositioning(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "next line operator",
			content: "BT /F1 12 Tf 14 TL 72 720 Td (EXPERIENCE) Tj T* (Role A at X) Tj T* (EDUCATION) Tj T* (BSc) Tj ET",
		},
		{
			name:    "relative moves",
			content: "BT /F1 12 Tf 72 720 Td (EXPERIENCE) Tj 0 -14 Td (Role A at X) Tj 0 -14 Td (EDUCATION) Tj 0 -14 Td (BSc) Tj ET",
		},
		{
			name:    "text matrix",
			content: "BT /F1 12 Tf 1 0 0 1 72 720 Tm (EXPERIENCE) Tj 1 0 0 1 72 706 Tm (Role A at X) Tj 1 0 0 1 72 692 Tm (EDUCATION) Tj 1 0 0 1 72 678 Tm (BSc) Tj ET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(context.Background(), KindPDF, buildPDF(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "EXPERIENCE\nRole A at X\nEDUCATION\nBSc", got)

			result := sections.Parse(got)
			assert.Equal(t, []sections.Entry{{Title: "Role A at X", Text: "Role A at X"}}, result[sections.Experience])
			assert.Equal(t, []sections.Entry{{Title: "BSc", Text: "BSc"}}, result[sections.Education])
		})
	}
}

func TestExtractText_PDF(t *testing.T) {
	data := buildPDF(t, "BT /F1 12 Tf 72 720 Td (Skills) Tj 0 -14 Td (Go, SQL) Tj ET")

	text, kind, err := ExtractText(context.Background(), "", "cv.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, KindPDF, kind)
	assert.Equal(t, "Skills\nGo, SQL", text)
}

func TestJoinGlyphs(t *testing.T) {
	glyphs := []pdflib.Text{
		{S: "Role", X: 72, Y: 700, W: 24, FontSize: 12},
		{S: "at", X: 110, Y: 700, W: 10, FontSize: 12},
		{S: "Acme", X: 125, Y: 700.5, W: 26, FontSize: 12},
		{S: "\n", X: 148, Y: 700, FontSize: 12},
		{S: "Built ", X: 72, Y: 686, W: 30, FontSize: 12},
		{S: "APIs", X: 102, Y: 686, W: 24, FontSize: 12},
	}
	assert.Equal(t, "Role at Acme\nBuilt APIs", joinGlyphs(glyphs))
}
