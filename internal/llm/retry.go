package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

const maxBackoff = 10 * time.Second

// IsRetryable reports whether err is worth another attempt: rate limiting,
// server-side failures and per-attempt deadlines.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return false
}

// Backoff returns a duration for attempt n (0-indexed) with jitter
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 500 * time.Millisecond
	if base > maxBackoff {
		base = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(base)/2 + 1))
	return base + jitter
}

// withRetry runs call until it succeeds, fails with a non-retryable error, the
// parent context ends or MaxRetries is exhausted.
func (c *GeminiClient) withRetry(ctx context.Context, call func(context.Context) (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("failed to generate content: %w", ctx.Err())
			case <-time.After(Backoff(attempt - 1)):
			}
		}

		resp, err := c.attempt(ctx, call)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if ctx.Err() != nil || !IsRetryable(err) {
			break
		}
	}
	return nil, fmt.Errorf("failed to generate content: %w", lastErr)
}

func (c *GeminiClient) attempt(ctx context.Context, call func(context.Context) (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	if c.config.Timeout <= 0 {
		return call(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	return call(attemptCtx)
}
