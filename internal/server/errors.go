package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cv-coach/internal/extraction"
	"github.com/jonathan/cv-coach/internal/interview"
)

// ValidationError indicates a malformed or incomplete request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// UploadTooLargeError indicates an upload over the configured size limit.
type UploadTooLargeError struct {
	Limit int64
}

func (e *UploadTooLargeError) Error() string {
	return fmt.Sprintf("file exceeds max size (%d bytes)", e.Limit)
}

// EmptyResultError indicates a document in which no section had any entries.
type EmptyResultError struct{}

func (e *EmptyResultError) Error() string {
	return "no recognizable sections found in document"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ValidationError
		tooLarge    *UploadTooLargeError
		unsupported *extraction.UnsupportedInputError
		extractErr  *extraction.ExtractionError
		emptyResult *EmptyResultError
		upstream    *interview.UpstreamServiceError
		configErr   *interview.ConfigError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr):
		if extractErr.Empty {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	case errors.As(err, &emptyResult):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.As(err, &configErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to return to clients. Unknown errors
// are not echoed.
func publicMessage(err error) string {
	var (
		unsupported *extraction.UnsupportedInputError
		extErr      *extraction.ExtractionError
		upstream    *interview.UpstreamServiceError
		configErr   *interview.ConfigError
	)

	switch {
	case errors.As(err, &unsupported):
		return fmt.Sprintf("unsupported document type: %s", unsupported.Message)
	case errors.As(err, &extErr):
		if extErr.Empty {
			return "extracted text from document is empty"
		}
		return fmt.Sprintf("error processing %s document", extErr.Kind)
	case errors.As(err, &upstream):
		return upstream.Message
	case errors.As(err, &configErr):
		return configErr.Message
	}

	if HTTPStatus(err) < http.StatusInternalServerError {
		return err.Error()
	}
	return "internal server error"
}
