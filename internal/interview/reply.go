package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/cv-coach/internal/llm"
	"github.com/xeipuuv/gojsonschema"
)

// Turn is one completed exchange of an interview.
type Turn struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

// Reply is the interviewer's response to the latest answer.
type Reply struct {
	Feedback     string `json:"feedback,omitempty"`
	NextQuestion string `json:"next_question"`
}

const replySchemaJSON = `{
  "type": "object",
  "required": ["next_question"],
  "properties": {
    "next_question": {"type": "string", "minLength": 1, "pattern": "\\S"},
    "feedback": {"type": ["string", "null"]}
  }
}`

var replySchema = mustSchema(replySchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid reply schema: %v", err))
	}
	return schema
}

// ParseReply decodes an interviewer reply, trying the raw text first and then a
// fenced ```json block inside it.
func ParseReply(raw string) (*Reply, error) {
	candidates := []string{llm.CleanJSONBlock(raw)}
	if fenced, ok := llm.ExtractFencedJSON(raw); ok {
		candidates = append(candidates, fenced)
	}

	var errs []error
	for _, candidate := range candidates {
		reply, err := decodeReply(candidate)
		if err == nil {
			return reply, nil
		}
		errs = append(errs, err)
	}
	return nil, &UpstreamServiceError{Message: "malformed AI JSON response", Cause: errors.Join(errs...)}
}

func decodeReply(candidate string) (*Reply, error) {
	result, err := replySchema.Validate(gojsonschema.NewStringLoader(candidate))
	if err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("reply does not match schema: %s", strings.Join(msgs, "; "))
	}

	var reply Reply
	if err := json.Unmarshal([]byte(candidate), &reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	reply.Feedback = strings.TrimSpace(reply.Feedback)
	reply.NextQuestion = strings.TrimSpace(reply.NextQuestion)
	return &reply, nil
}

// ParsePoints decodes quick-review output: a JSON array of strings (bare or
// fenced), then a markdown bullet list, and finally the whole text as one point.
func ParsePoints(raw string) ([]string, error) {
	candidates := []string{llm.CleanJSONBlock(raw)}
	if fenced, ok := llm.ExtractFencedJSON(raw); ok {
		candidates = append(candidates, fenced)
	}
	for _, candidate := range candidates {
		var points []string
		if err := json.Unmarshal([]byte(candidate), &points); err == nil {
			return compactPoints(points), nil
		}
	}

	if bullets := llm.ExtractBullets(raw); len(bullets) > 0 {
		return bullets, nil
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, &UpstreamServiceError{Message: "empty review from AI service"}
	}
	return []string{text}, nil
}

func compactPoints(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
