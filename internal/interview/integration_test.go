//go:build integration
// +build integration

package interview

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/cv-coach/internal/llm"
	"github.com/jonathan/cv-coach/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newIntegrationService(t *testing.T) *Service {
	t.Helper()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), apiKey)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client, zap.NewNop())
}

func TestInterview_Integration(t *testing.T) {
	svc := newIntegrationService(t)
	ctx := context.Background()
	project := sections.Entry{
		Title: "Search Engine",
		Text:  "Search Engine | Go, PostgreSQL\nBuilt an inverted index serving 2k queries per second.",
	}

	first, err := svc.Ask(ctx, project, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, first.NextQuestion)

	next, err := svc.Ask(ctx, project, []Turn{{
		Question: first.NextQuestion,
		Answer:   "I sharded the index by term hash and cached hot postings lists in memory.",
	}})
	require.NoError(t, err)
	assert.NotEmpty(t, next.NextQuestion)
}

func TestQuickReview_Integration(t *testing.T) {
	svc := newIntegrationService(t)

	points, err := svc.QuickReview(context.Background(), sections.Entry{
		Title: "Engineer at Acme",
		Text:  "Engineer at Acme\nWorked on backend services.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, points)
	for _, p := range points {
		assert.NotEmpty(t, p)
	}
}
