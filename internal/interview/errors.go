// Package interview runs mock interviews and quick reviews over parsed CV
// entries by delegating to the conversational AI client.
package interview

import "fmt"

// ConfigError reports that the service cannot reach the AI, usually because no
// API key was configured.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("interview config error: %s", e.Message)
}

// UpstreamServiceError reports an AI call that failed or whose output could not
// be understood.
type UpstreamServiceError struct {
	Message string
	Cause   error
}

func (e *UpstreamServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream service error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream service error: %s", e.Message)
}

func (e *UpstreamServiceError) Unwrap() error {
	return e.Cause
}
