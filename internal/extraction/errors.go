package extraction

import "fmt"

// UnsupportedInputError reports a document whose type cannot be determined or
// is not accepted.
type UnsupportedInputError struct {
	ContentType string
	Filename    string
	Message     string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input %q (%s): %s", e.Filename, e.ContentType, e.Message)
}

// ExtractionError reports a document that could not be turned into text. Empty
// is set when extraction worked but produced only whitespace.
type ExtractionError struct {
	Kind    Kind
	Message string
	Cause   error
	Empty   bool
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction error: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction error: %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
