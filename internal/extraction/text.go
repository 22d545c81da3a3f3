package extraction

import (
	"context"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// TextExtractor decodes plain text. A UTF-8 or UTF-16 byte order mark selects
// the encoding; without one the input is read as UTF-8.
type TextExtractor struct{}

func (t *TextExtractor) Extract(_ context.Context, data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", &ExtractionError{Kind: KindText, Message: "failed to decode text", Cause: err}
	}
	return string(out), nil
}
