package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/interview-copilot/internal/types"
)

var evaluateStarCmd = &cobra.Command{
	Use:   "evaluate-star",
	Short: "Evaluate a candidate response against the STAR framework",
	Long:  "Evaluate a candidate's response to an interview question against the STAR framework (Situation, Task, Action, Result) and optionally suggest follow-up questions targeting missing elements.",
	RunE:  runEvaluateStar,
}

var (
	evalQuestion     string
	evalResponse     string
	evalResponseFile string
	evalFollowUps    bool
	evalConfigFile   string
	evalAPIKey       string
	evalVerbose      bool
)

func init() {
	evaluateStarCmd.Flags().StringVarP(&evalQuestion, "question", "q", "", "Interview question that was asked (required)")
	evaluateStarCmd.Flags().StringVarP(&evalResponse, "response", "r", "", "Candidate response text")
	evaluateStarCmd.Flags().StringVar(&evalResponseFile, "response-file", "", "Path to text file containing the candidate response")
	evaluateStarCmd.Flags().BoolVar(&evalFollowUps, "follow-ups", false, "Also suggest follow-up questions targeting missing STAR elements")
	evaluateStarCmd.Flags().StringVar(&evalConfigFile, "config", "", "Path to JSON config file")
	evaluateStarCmd.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	evaluateStarCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Enable debug logging")

	evaluateStarCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(evaluateStarCmd)
}

// starReport is the command's JSON output shape.
type starReport struct {
	Analysis  *types.STARAnalysis `json:"analysis"`
	FollowUps []types.FollowUp    `json:"follow_ups,omitempty"`
}

func runEvaluateStar(_ *cobra.Command, _ []string) error {
	if evalResponse == "" && evalResponseFile == "" {
		return fmt.Errorf("either --response or --response-file must be provided")
	}
	if evalResponse != "" && evalResponseFile != "" {
		return fmt.Errorf("--response and --response-file are mutually exclusive; provide only one")
	}

	response := evalResponse
	if evalResponseFile != "" {
		data, err := os.ReadFile(evalResponseFile)
		if err != nil {
			return fmt.Errorf("failed to read response file: %w", err)
		}
		response = string(data)
	}

	ctx := context.Background()

	a, err := buildApp(ctx, evalConfigFile, evalAPIKey, "", evalVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	analysis, err := a.evaluator.AnalyzeSTAR(ctx, evalQuestion, response)
	if err != nil {
		return fmt.Errorf("failed to analyze response: %w", err)
	}

	report := starReport{Analysis: analysis}
	if evalFollowUps {
		followUps, err := a.evaluator.STARFollowUps(ctx, evalQuestion, response, analysis)
		if err != nil {
			return fmt.Errorf("failed to generate follow-ups: %w", err)
		}
		report.FollowUps = followUps
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(jsonBytes))

	return nil
}
