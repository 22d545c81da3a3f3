package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/cv-coach/internal/interview"
	"github.com/jonathan/cv-coach/internal/llm"
	"github.com/jonathan/cv-coach/internal/sections"
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock interview or quick review on one CV entry",
	Long: `Start a mock interview about a CV entry. Answers are read from --answer flags
in order, or line by line from stdin when none are given; an empty line, "quit"
or end of input ends the session. With --review, print quick review points instead.`,
	RunE: runInterview,
}

var (
	interviewTitle    string
	interviewText     string
	interviewTextFile string
	interviewAnswers  []string
	interviewMaxTurns int
	interviewReview   bool
)

func init() {
	interviewCmd.Flags().StringVar(&interviewTitle, "title", "", "Entry title (defaults to the first line of the text)")
	interviewCmd.Flags().StringVar(&interviewText, "text", "", "Entry text")
	interviewCmd.Flags().StringVar(&interviewTextFile, "text-file", "", "Read the entry text from a file")
	interviewCmd.Flags().StringArrayVar(&interviewAnswers, "answer", nil, "Scripted answer (repeatable)")
	interviewCmd.Flags().IntVar(&interviewMaxTurns, "max-turns", 10, "Maximum number of questions (0 for no limit)")
	interviewCmd.Flags().BoolVar(&interviewReview, "review", false, "Print quick review points instead of interviewing")
	rootCmd.AddCommand(interviewCmd)
}

// asker is the part of interview.Service a session needs.
type asker interface {
	Ask(ctx context.Context, entry sections.Entry, history []interview.Turn) (*interview.Reply, error)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	entry, err := interviewEntry()
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable)")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	defer func() { _ = client.Close() }()

	svc := interview.NewService(client, logger, interview.WithTier(llm.ModelTier(cfg.ModelTier)))
	out := cmd.OutOrStdout()

	if interviewReview {
		points, err := svc.QuickReview(ctx, entry)
		if err != nil {
			return err
		}
		for _, p := range points {
			fmt.Fprintf(out, "- %s\n", p)
		}
		return nil
	}

	next := scriptedAnswers(interviewAnswers)
	if len(interviewAnswers) == 0 {
		next = lineAnswers(cmd.InOrStdin())
	}
	return runSession(ctx, svc, entry, next, out, interviewMaxTurns)
}

func interviewEntry() (sections.Entry, error) {
	text := interviewText
	if interviewTextFile != "" {
		data, err := os.ReadFile(interviewTextFile)
		if err != nil {
			return sections.Entry{}, fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(sections.Normalize(text))
	if text == "" {
		return sections.Entry{}, errors.New("entry text is required (--text or --text-file)")
	}

	title := strings.TrimSpace(interviewTitle)
	if title == "" {
		title = sections.Title(text)
	}
	return sections.Entry{Title: title, Text: text}, nil
}

// runSession alternates questions and answers until next reports no answer or
// maxTurns questions have been asked.
func runSession(ctx context.Context, a asker, entry sections.Entry, next func() (string, bool), out io.Writer, maxTurns int) error {
	var history []interview.Turn
	for turn := 1; maxTurns <= 0 || turn <= maxTurns; turn++ {
		reply, err := a.Ask(ctx, entry, history)
		if err != nil {
			return err
		}
		if len(history) > 0 {
			history[len(history)-1].Feedback = reply.Feedback
		}
		if reply.Feedback != "" {
			fmt.Fprintf(out, "Feedback: %s\n\n", reply.Feedback)
		}
		fmt.Fprintf(out, "Q%d: %s\n", turn, reply.NextQuestion)

		answer, ok := next()
		if !ok {
			return nil
		}
		history = append(history, interview.Turn{Question: reply.NextQuestion, Answer: answer})
	}
	return nil
}

func scriptedAnswers(answers []string) func() (string, bool) {
	i := 0
	return func() (string, bool) {
		if i >= len(answers) {
			return "", false
		}
		i++
		return answers[i-1], true
	}
}

func lineAnswers(r io.Reader) func() (string, bool) {
	scanner := bufio.NewScanner(r)
	return func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" || strings.EqualFold(answer, "quit") {
			return "", false
		}
		return answer, true
	}
}
