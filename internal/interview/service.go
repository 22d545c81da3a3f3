package interview

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonathan/cv-coach/internal/llm"
	"github.com/jonathan/cv-coach/internal/logging"
	"github.com/jonathan/cv-coach/internal/prompts"
	"github.com/jonathan/cv-coach/internal/sections"
	"go.uber.org/zap"
)

// DefaultReviewPoints is how many bullet points a quick review asks for.
const DefaultReviewPoints = 5

const logPayloadLimit = 300

// Service drives interview and review prompts against an llm.Client.
type Service struct {
	client       llm.Client
	logger       *zap.Logger
	tier         llm.ModelTier
	reviewTier   llm.ModelTier
	reviewPoints int
}

// Option configures a Service.
type Option func(*Service)

// WithTier sets the model tier used for interview turns.
func WithTier(tier llm.ModelTier) Option {
	return func(s *Service) { s.tier = tier }
}

// WithReviewTier sets the model tier used for quick reviews.
func WithReviewTier(tier llm.ModelTier) Option {
	return func(s *Service) { s.reviewTier = tier }
}

// WithReviewPoints sets how many bullet points a quick review requests.
func WithReviewPoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.reviewPoints = n
		}
	}
}

// NewService returns a Service. A nil client is allowed; every call then fails
// with a ConfigError.
func NewService(client llm.Client, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		client:       client,
		logger:       logger,
		tier:         llm.TierStandard,
		reviewTier:   llm.TierLite,
		reviewPoints: DefaultReviewPoints,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask returns the next interviewer turn. With no history it asks an opening
// question; otherwise prior turns are replayed as chat history and the reply
// carries feedback on the last answer.
func (s *Service) Ask(ctx context.Context, entry sections.Entry, history []Turn) (*Reply, error) {
	if s.client == nil {
		return nil, &ConfigError{Message: "AI API key not configured"}
	}

	var (
		raw string
		err error
	)
	if len(history) == 0 {
		raw, err = s.firstQuestion(ctx, entry)
	} else {
		raw, err = s.followUp(ctx, entry, history)
	}
	if err != nil {
		return nil, err
	}

	reply, err := ParseReply(raw)
	if err != nil {
		s.logger.Warn("unparseable interview reply",
			zap.String("raw", logging.Truncate(raw, logPayloadLimit)), zap.Error(err))
		return nil, err
	}

	s.logger.Debug("interview reply",
		zap.String("title", entry.Title),
		zap.Int("turn", len(history)+1),
		zap.Bool("feedback", reply.Feedback != ""))
	return reply, nil
}

func (s *Service) firstQuestion(ctx context.Context, entry sections.Entry) (string, error) {
	prompt, err := openingPrompt(entry)
	if err != nil {
		return "", err
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return "", &UpstreamServiceError{Message: "AI service returned an error", Cause: err}
	}
	return raw, nil
}

func openingPrompt(entry sections.Entry) (string, error) {
	return prompts.Render(prompts.InterviewFile, "first-question", map[string]string{
		"Title": entry.Title,
		"Text":  entry.Text,
	})
}

func (s *Service) followUp(ctx context.Context, entry sections.Entry, history []Turn) (string, error) {
	opening, err := openingPrompt(entry)
	if err != nil {
		return "", err
	}
	prompt, err := prompts.Render(prompts.InterviewFile, "follow-up", map[string]string{
		"Title":  entry.Title,
		"Text":   entry.Text,
		"Answer": history[len(history)-1].Answer,
	})
	if err != nil {
		return "", err
	}

	msgs, pending := chatHistory(opening, history)
	if pending != "" {
		prompt = pending + "\n\n" + prompt
	}

	raw, err := s.client.GenerateChat(ctx, msgs, prompt, s.tier)
	if err != nil {
		return "", &UpstreamServiceError{Message: "AI service returned an error", Cause: err}
	}
	return raw, nil
}

// chatHistory replays the conversation with strictly alternating roles: the
// opening prompt as the user, questions as the model, answers as the user.
// Blank texts are skipped and consecutive texts from one role are merged. The
// last answer is left out because the follow-up prompt carries it. If the
// history would still end on a user turn, that text is returned as pending so
// the caller can prefix it to the prompt.
func chatHistory(opening string, history []Turn) (msgs []llm.Message, pending string) {
	add := func(role llm.Role, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if n := len(msgs); n > 0 && msgs[n-1].Role == role {
			msgs[n-1].Text += "\n\n" + text
			return
		}
		msgs = append(msgs, llm.Message{Role: role, Text: text})
	}

	add(llm.RoleUser, opening)
	for i, turn := range history {
		add(llm.RoleModel, turn.Question)
		if i < len(history)-1 {
			add(llm.RoleUser, turn.Answer)
		}
	}

	if n := len(msgs); n > 0 && msgs[n-1].Role == llm.RoleUser {
		pending = msgs[n-1].Text
		msgs = msgs[:n-1]
	}
	return msgs, pending
}

// QuickReview returns short revision points for an entry.
func (s *Service) QuickReview(ctx context.Context, entry sections.Entry) ([]string, error) {
	if s.client == nil {
		return nil, &ConfigError{Message: "AI API key not configured"}
	}

	prompt, err := prompts.Render(prompts.InterviewFile, "quick-review", map[string]string{
		"Title": entry.Title,
		"Text":  entry.Text,
		"Count": strconv.Itoa(s.reviewPoints),
	})
	if err != nil {
		return nil, err
	}

	raw, err := s.client.GenerateJSON(ctx, prompt, s.reviewTier)
	if err != nil {
		return nil, &UpstreamServiceError{Message: "failed to generate quick review", Cause: err}
	}

	points, err := ParsePoints(raw)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("quick review", zap.String("title", entry.Title), zap.Int("points", len(points)))
	return points, nil
}
