package cli

import (
	"github.com/spf13/cobra"

	"github.com/eflav/aio-index/internal/config"
	"github.com/eflav/aio-index/internal/core/domain"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze a single URL and publish the result",
	Long: `Runs the full pipeline for one URL: fetch, extract, summarize, store
the JSON document, and update the source index. Prints the public
GitHub Pages URLs of the stored document and the index.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	analyzer, err := buildAnalyzer(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("Analyzed %s (aio_score %d)\n", result.URL, result.AIOScore)
	if result.Summary != "" {
		cmd.Println(result.Summary)
	}
	cmd.Println()
	cmd.Printf("Hosted JSON: %s\n", cfg.PagesURL(result.DocumentPath))
	cmd.Printf("Live index:  %s\n", cfg.PagesURL(domain.IndexPath))
	return nil
}
