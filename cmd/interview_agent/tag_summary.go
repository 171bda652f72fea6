package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var tagSummaryCmd = &cobra.Command{
	Use:   "tag-summary [text]",
	Short: "Tag a position summary with competencies",
	Long:  "Tag a short position summary with catalog competencies. The summary is passed as an argument or read from a file via --file.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTagSummary,
}

var (
	tagSummaryFile       string
	tagSummaryConfigFile string
	tagSummaryAPIKey     string
	tagSummaryDBURL      string
	tagSummaryVerbose    bool
)

func init() {
	tagSummaryCmd.Flags().StringVarP(&tagSummaryFile, "file", "f", "", "Path to text file containing the summary")
	tagSummaryCmd.Flags().StringVar(&tagSummaryConfigFile, "config", "", "Path to JSON config file")
	tagSummaryCmd.Flags().StringVar(&tagSummaryAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	tagSummaryCmd.Flags().StringVar(&tagSummaryDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	tagSummaryCmd.Flags().BoolVarP(&tagSummaryVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tagSummaryCmd)
}

func runTagSummary(_ *cobra.Command, args []string) error {
	var summary string
	switch {
	case tagSummaryFile != "":
		data, err := os.ReadFile(tagSummaryFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		summary = string(data)
	case len(args) == 1:
		summary = args[0]
	default:
		return fmt.Errorf("provide the summary as an argument or via --file")
	}

	ctx := context.Background()

	a, err := buildApp(ctx, tagSummaryConfigFile, tagSummaryAPIKey, tagSummaryDBURL, tagSummaryVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	tags, err := a.service.AnalyzeSummary(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to tag summary: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(tags, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))

	return nil
}
