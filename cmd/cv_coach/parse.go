package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/cv-coach/internal/extraction"
	"github.com/jonathan/cv-coach/internal/sections"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Split CV documents into sections and print them as JSON",
	Long: `Extract text from each CV document (PDF, DOCX, Markdown, HTML or plain text),
split it into sections and entries, and print one JSON object keyed by file path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

var parseConcurrency int

func init() {
	parseCmd.Flags().String("strategy", "pattern", "Header matching strategy: pattern or token")
	parseCmd.Flags().Bool("split-bullets", false, "Also start a new entry at lines beginning with '-'")
	parseCmd.Flags().IntVarP(&parseConcurrency, "concurrency", "c", 4, "Number of files parsed in parallel")

	_ = v.BindPFlag("header_strategy", parseCmd.Flags().Lookup("strategy"))
	_ = v.BindPFlag("split_bullets", parseCmd.Flags().Lookup("split-bullets"))
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var splitterOpts []sections.SplitterOption
	if cfg.SplitBullets {
		splitterOpts = append(splitterOpts, sections.WithBulletSplit())
	}
	parser, err := sections.NewParser(
		sections.WithStrategy(sections.Strategy(cfg.HeaderStrategy)),
		sections.WithSplitter(sections.NewSplitter(splitterOpts...)),
	)
	if err != nil {
		return err
	}

	results, err := parseFiles(cmd.Context(), logger, parser, args, parseConcurrency)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// parseFiles extracts and parses every path with at most concurrency files in
// flight. The first failure cancels the rest.
func parseFiles(ctx context.Context, logger *zap.Logger, parser *sections.Parser, paths []string, concurrency int) (map[string]sections.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	results := make([]sections.Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("failed to read file", zap.String("path", path), zap.Error(err))
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			text, kind, err := extraction.ExtractText(ctx, "", path, data)
			if err != nil {
				logger.Warn("failed to extract text", zap.String("path", path), zap.Error(err))
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = parser.Parse(text)
			logger.Debug("parsed file",
				zap.String("path", path),
				zap.String("kind", string(kind)),
				zap.Int("entries", results[i].Count()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byPath := make(map[string]sections.Result, len(paths))
	for i, path := range paths {
		byPath[path] = results[i]
	}
	return byPath, nil
}
