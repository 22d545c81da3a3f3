package main

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-coach/internal/llm"
	"github.com/jonathan/cv-coach/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing /parse-cv, /mock-interview and /quick-review.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var client llm.Client
	if cfg.APIKey != "" {
		gemini, err := llm.NewClient(context.Background(), cfg.LLMConfig(), cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}
		defer func() { _ = gemini.Close() }()
		client = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; /mock-interview and /quick-review will fail")
	}

	srv, err := server.New(cfg, logger, client)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("header_strategy", cfg.HeaderStrategy),
		zap.Strings("accept", cfg.Accept),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled))
	return srv.Start()
}
