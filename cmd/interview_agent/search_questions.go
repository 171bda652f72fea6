package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var searchQuestionsCmd = &cobra.Command{
	Use:   "search-questions <query>",
	Short: "Search the question bank",
	Long:  "Search the question bank for a competency or topic. Falls back to generating questions with the LLM when the bank has no match or no database is configured.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchQuestions,
}

var (
	searchConfigFile string
	searchAPIKey     string
	searchDBURL      string
	searchVerbose    bool
)

func init() {
	searchQuestionsCmd.Flags().StringVar(&searchConfigFile, "config", "", "Path to JSON config file")
	searchQuestionsCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	searchQuestionsCmd.Flags().StringVar(&searchDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	searchQuestionsCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(searchQuestionsCmd)
}

func runSearchQuestions(_ *cobra.Command, args []string) error {
	query := args[0]

	ctx := context.Background()

	a, err := buildApp(ctx, searchConfigFile, searchAPIKey, searchDBURL, searchVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	results, err := a.searcher.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to search questions: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))

	return nil
}
