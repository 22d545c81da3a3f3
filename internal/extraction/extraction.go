// Package extraction turns uploaded CV documents (PDF, DOCX, Markdown, HTML and
// plain text) into a single text blob for section parsing.
package extraction

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind identifies a supported document format.
type Kind string

const (
	KindPDF      Kind = "pdf"
	KindDOCX     Kind = "docx"
	KindMarkdown Kind = "markdown"
	KindHTML     Kind = "html"
	KindText     Kind = "text"
)

// AllKinds lists every supported format.
var AllKinds = []Kind{KindPDF, KindDOCX, KindMarkdown, KindHTML, KindText}

// Extractor converts document bytes of one Kind into text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

const octetStream = "application/octet-stream"

var mediaKinds = map[string]Kind{
	"application/pdf":       KindPDF,
	"application/x-pdf":     KindPDF,
	"text/markdown":         KindMarkdown,
	"text/x-markdown":       KindMarkdown,
	"text/html":             KindHTML,
	"application/xhtml+xml": KindHTML,
	"text/plain":            KindText,

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDOCX,
}

var extensionKinds = map[string]Kind{
	".pdf":      KindPDF,
	".docx":     KindDOCX,
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".html":     KindHTML,
	".htm":      KindHTML,
	".txt":      KindText,
	".text":     KindText,
}

// Detect works out the Kind of an upload. The declared media type wins, then
// the file extension. Content is sniffed only when nothing usable was declared.
func Detect(contentType, filename string, data []byte) (Kind, error) {
	declared := baseMediaType(contentType)
	if declared != "" && declared != octetStream {
		if kind, ok := mediaKinds[declared]; ok {
			return kind, nil
		}
	}

	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(filename))]; ok {
		return kind, nil
	}

	if declared == "" || declared == octetStream {
		for m := mimetype.Detect(data); m != nil; m = m.Parent() {
			if kind, ok := mediaKinds[baseMediaType(m.String())]; ok {
				return kind, nil
			}
		}
	}

	return "", &UnsupportedInputError{
		ContentType: contentType,
		Filename:    filename,
		Message:     "unrecognized document type",
	}
}

func baseMediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

// ForKind returns the extractor for kind, or nil if kind is unknown.
func ForKind(kind Kind) Extractor {
	switch kind {
	case KindPDF:
		return &PDFExtractor{}
	case KindDOCX:
		return &DOCXExtractor{}
	case KindMarkdown:
		return &MarkdownExtractor{}
	case KindHTML:
		return &HTMLExtractor{}
	case KindText:
		return &TextExtractor{}
	default:
		return nil
	}
}

// Extract runs the extractor for kind and rejects whitespace-only output.
func Extract(ctx context.Context, kind Kind, data []byte) (string, error) {
	ex := ForKind(kind)
	if ex == nil {
		return "", &UnsupportedInputError{ContentType: string(kind), Message: "no extractor for kind"}
	}

	text, err := ex.Extract(ctx, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Kind: kind, Message: "extracted text is empty", Empty: true}
	}
	return text, nil
}

// ExtractText detects the document kind and extracts its text.
func ExtractText(ctx context.Context, contentType, filename string, data []byte) (string, Kind, error) {
	kind, err := Detect(contentType, filename, data)
	if err != nil {
		return "", "", err
	}
	text, err := Extract(ctx, kind, data)
	return text, kind, err
}

// ParseKinds converts names such as "pdf" or "markdown" into Kinds.
func ParseKinds(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		kind := Kind(strings.ToLower(strings.TrimSpace(name)))
		if ForKind(kind) == nil {
			return nil, fmt.Errorf("unknown document kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
