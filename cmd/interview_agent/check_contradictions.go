package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/interview-copilot/internal/types"
)

var checkContradictionsCmd = &cobra.Command{
	Use:   "check-contradictions",
	Short: "Detect contradictions across interview responses",
	Long:  "Detect contradictions across a transcript of interview exchanges. The transcript is a JSON array of objects with \"question\" and \"response\" fields.",
	RunE:  runCheckContradictions,
}

var (
	contradictionsTranscript string
	contradictionsConfigFile string
	contradictionsAPIKey     string
	contradictionsVerbose    bool
)

func init() {
	checkContradictionsCmd.Flags().StringVarP(&contradictionsTranscript, "transcript", "t", "", "Path to transcript JSON file (required)")
	checkContradictionsCmd.Flags().StringVar(&contradictionsConfigFile, "config", "", "Path to JSON config file")
	checkContradictionsCmd.Flags().StringVar(&contradictionsAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	checkContradictionsCmd.Flags().BoolVarP(&contradictionsVerbose, "verbose", "v", false, "Enable debug logging")

	checkContradictionsCmd.MarkFlagRequired("transcript")

	rootCmd.AddCommand(checkContradictionsCmd)
}

func runCheckContradictions(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(contradictionsTranscript)
	if err != nil {
		return fmt.Errorf("failed to read transcript file: %w", err)
	}

	var exchanges []types.Exchange
	if err := json.Unmarshal(data, &exchanges); err != nil {
		return fmt.Errorf("failed to parse transcript JSON: %w", err)
	}

	ctx := context.Background()

	a, err := buildApp(ctx, contradictionsConfigFile, contradictionsAPIKey, "", contradictionsVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	contradictions, err := a.evaluator.DetectContradictions(ctx, exchanges)
	if err != nil {
		return fmt.Errorf("failed to detect contradictions: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(contradictions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))

	return nil
}
