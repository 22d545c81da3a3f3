// Package types defines the JSON request and response bodies of the cv-coach API.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/jonathan/cv-coach/internal/interview"
	"github.com/jonathan/cv-coach/internal/sections"
)

// validator caches struct metadata and is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// SectionPayload is one parsed CV entry sent back by the client.
type SectionPayload struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"`
}

// Entry converts the payload into a sections.Entry.
func (p SectionPayload) Entry() sections.Entry {
	return sections.Entry{Title: p.Title, Text: p.Text}
}

// HistoryTurn is one prior question and answer of a mock interview.
type HistoryTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback,omitempty"`
}

// InterviewRequest is the body of POST /mock-interview.
type InterviewRequest struct {
	Section SectionPayload `json:"section" validate:"required"`
	History []HistoryTurn  `json:"history" validate:"max=50"`
}

// Turns converts the history into interview turns.
func (r *InterviewRequest) Turns() []interview.Turn {
	turns := make([]interview.Turn, len(r.History))
	for i, h := range r.History {
		turns[i] = interview.Turn{Question: h.Question, Answer: h.Answer, Feedback: h.Feedback}
	}
	return turns
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	return validate.Struct(r)
}

// ReviewRequest is the body of POST /quick-review.
type ReviewRequest = SectionPayload

// ValidateSection validates a ReviewRequest or any other section payload.
func ValidateSection(p *SectionPayload) error {
	return validate.Struct(p)
}

// ReviewResponse is the body returned by POST /quick-review.
type ReviewResponse struct {
	Points []string `json:"points"`
}

// StatusResponse is the body returned by the health endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}
