package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend interview questions for competencies",
	Long:  "Recommend a primary and backup behavioral interview question for each competency. Competencies come from the question bank when a database is configured, otherwise questions are generated from templates.",
	RunE:  runRecommend,
}

var (
	recommendCompetencies []string
	recommendConfigFile   string
	recommendAPIKey       string
	recommendDBURL        string
	recommendVerbose      bool
)

func init() {
	recommendCmd.Flags().StringSliceVarP(&recommendCompetencies, "competency", "c", nil, "Competency to recommend questions for (repeatable)")
	recommendCmd.Flags().StringVar(&recommendConfigFile, "config", "", "Path to JSON config file")
	recommendCmd.Flags().StringVar(&recommendAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	recommendCmd.Flags().StringVar(&recommendDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	recommendCmd.Flags().BoolVarP(&recommendVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	var competencies []string
	for _, c := range recommendCompetencies {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			competencies = append(competencies, trimmed)
		}
	}
	if len(competencies) == 0 {
		return fmt.Errorf("at least one --competency is required")
	}

	ctx := context.Background()

	a, err := buildApp(ctx, recommendConfigFile, recommendAPIKey, recommendDBURL, recommendVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	recommendations := a.service.RecommendQuestions(ctx, competencies)

	jsonBytes, err := json.MarshalIndent(recommendations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))

	return nil
}
