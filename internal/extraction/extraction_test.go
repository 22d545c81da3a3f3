package extraction

import (
	"bytes"
	"context"
	"testing"

	"github.com/fumiama/go-docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		data        []byte
		want        Kind
	}{
		{"declared pdf", "application/pdf", "cv.bin", nil, KindPDF},
		{"declared with params", "text/html; charset=utf-8", "", nil, KindHTML},
		{"declared docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "", nil, KindDOCX},
		{"extension when declared unknown", "application/x-whatever", "cv.md", nil, KindMarkdown},
		{"extension when octet-stream", "application/octet-stream", "CV.PDF", nil, KindPDF},
		{"sniffed pdf", "", "upload", []byte("%PDF-1.7\n%âãÏÓ\n1 0 obj\n"), KindPDF},
		{"sniffed html", "application/octet-stream", "", []byte("<!DOCTYPE html><html><body><p>x</p></body></html>"), KindHTML},
		{"sniffed text", "", "", []byte("EXPERIENCE\nEngineer at Acme\n"), KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.contentType, tt.filename, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetect_Unsupported(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		data        []byte
	}{
		{"declared image", "image/png", "photo.png", []byte("\x89PNG\r\n\x1a\n")},
		{"declared unknown, no sniffing", "application/zip", "", []byte("EXPERIENCE\n")},
		{"sniffed binary", "", "", []byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Detect(tt.contentType, tt.filename, tt.data)
			var unsupported *UnsupportedInputError
			assert.ErrorAs(t, err, &unsupported)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf-8", []byte("SKILLS\nGo"), "SKILLS\nGo"},
		{"utf-8 bom", []byte("\xef\xbb\xbfSKILLS\nGo"), "SKILLS\nGo"},
		{"utf-16le bom", []byte{0xff, 0xfe, 'G', 0, 'o', 0}, "Go"},
		{"utf-16be bom", []byte{0xfe, 0xff, 0, 'G', 0, 'o'}, "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(context.Background(), KindText, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_Markdown(t *testing.T) {
	src := "# Jane Doe\n\n## Experience\n\n**Engineer** | Acme\nBuilt the *parser*.\n\n" +
		"Analyst at Initech\n\n## Skills\n\n- Go\n- SQL\n\n```\nmake build\n```\n"

	got, err := Extract(context.Background(), KindMarkdown, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nExperience\n\nEngineer | Acme\nBuilt the parser.\n\n"+
		"Analyst at Initech\n\nSkills\n\n- Go\n- SQL\n\nmake build", got)
}

func TestExtract_HTML(t *testing.T) {
	src := `<html><head><title>CV</title><style>p{}</style></head><body>
<h1>Jane   Doe</h1>
<h2>Projects</h2>
<div><h3>Search Engine | Go</h3><p>Built an<br>inverted index.</p></div>
<h2>Skills</h2>
<ul><li><p>Go</p></li><li>SQL</li></ul>
<script>alert(1)</script>
</body></html>`

	got, err := Extract(context.Background(), KindHTML, []byte(src))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\n\nProjects\n\nSearch Engine | Go\nBuilt an\ninverted index.\n\nSkills\n- Go\n- SQL", got)
}

func TestExtract_HTMLWithoutBlocks(t *testing.T) {
	got, err := Extract(context.Background(), KindHTML, []byte("<body>EDUCATION\n  <span>MIT</span></body>"))
	require.NoError(t, err)
	assert.Equal(t, "EDUCATION\nMIT", got)
}

func TestExtract_DOCX(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("EXPERIENCE")
	w.AddParagraph().AddText("Engineer at Acme")
	w.AddParagraph()
	w.AddParagraph().AddText("Analyst at Initech")

	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)

	got, err := Extract(context.Background(), KindDOCX, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "EXPERIENCE\nEngineer at Acme\n\nAnalyst at Initech", got)
}

func TestExtract_Errors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		_, err := Extract(context.Background(), KindText, []byte(" \n\t "))
		var extErr *ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.True(t, extErr.Empty)
	})

	t.Run("corrupt pdf", func(t *testing.T) {
		_, err := Extract(context.Background(), KindPDF, []byte("not a pdf"))
		var extErr *ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.False(t, extErr.Empty)
		assert.Equal(t, KindPDF, extErr.Kind)
	})

	t.Run("corrupt docx", func(t *testing.T) {
		_, err := Extract(context.Background(), KindDOCX, []byte("PK not really"))
		var extErr *ExtractionError
		assert.ErrorAs(t, err, &extErr)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Extract(context.Background(), Kind("rtf"), []byte("x"))
		var unsupported *UnsupportedInputError
		assert.ErrorAs(t, err, &unsupported)
	})
}

func TestExtractText(t *testing.T) {
	text, kind, err := ExtractText(context.Background(), "text/plain", "cv.txt", []byte("SKILLS\nGo"))
	require.NoError(t, err)
	assert.Equal(t, KindText, kind)
	assert.Equal(t, "SKILLS\nGo", text)
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds([]string{"PDF", " markdown "})
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindPDF, KindMarkdown}, kinds)

	_, err = ParseKinds([]string{"rtf"})
	assert.Error(t, err)
}

func TestForKind(t *testing.T) {
	for _, kind := range AllKinds {
		assert.NotNil(t, ForKind(kind), kind)
	}
	assert.Nil(t, ForKind("rtf"))
}
