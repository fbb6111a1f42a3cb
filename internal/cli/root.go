// Package cli wires the pipeline into cobra commands: a long-running
// HTTP server and a one-shot analyze command.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/eflav/aio-index/internal/adapters/driven/extract"
	"github.com/eflav/aio-index/internal/adapters/driven/llm/openai"
	"github.com/eflav/aio-index/internal/adapters/driven/store/github"
	"github.com/eflav/aio-index/internal/config"
	"github.com/eflav/aio-index/internal/core/services"
	"github.com/eflav/aio-index/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "aio-index",
	Short: "Analyze webpages for AI readability and publish the results",
	Long: `aio-index fetches a webpage, extracts its visible text, asks an LLM for
a structured AI Optimization summary, and stores the result as JSON in a
GitHub repository alongside a rolling index of all processed sources.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// buildAnalyzer constructs the pipeline from configuration.
func buildAnalyzer(ctx context.Context, cfg *config.Config) (*services.Analyzer, error) {
	summarizer, err := openai.New(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		return nil, err
	}

	store := github.New(ctx, github.Config{
		Token: cfg.GitHubToken,
		Owner: cfg.GitHubOwner,
		Repo:  cfg.GitHubRepo,
	})

	return services.NewAnalyzer(extract.New(), summarizer, store), nil
}
