package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/interview-copilot/internal/documents"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job posting end to end",
	Long:  "Analyze a job posting from a file or URL: extract the summary and responsibilities, tag them with competencies, rank the top competencies, and recommend interview questions.",
	RunE:  runAnalyze,
}

var (
	analyzeFile       string
	analyzeURL        string
	analyzeOutputFile string
	analyzeConfigFile string
	analyzeAPIKey     string
	analyzeDBURL      string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Path to job posting file (.txt, .md, .pdf, .docx)")
	analyzeCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "URL to fetch the job posting from")
	analyzeCmd.Flags().StringVarP(&analyzeOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfigFile, "config", "", "Path to JSON config file")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeFile == "" && analyzeURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if analyzeFile != "" && analyzeURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	ctx := context.Background()

	var rawText string
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		rawText, err = documents.ExtractText(analyzeFile, data)
		if err != nil {
			return fmt.Errorf("failed to extract text: %w", err)
		}
	} else {
		var err error
		rawText, err = documents.ExtractURL(ctx, analyzeURL)
		if err != nil {
			return fmt.Errorf("failed to fetch URL: %w", err)
		}
	}

	a, err := buildApp(ctx, analyzeConfigFile, analyzeAPIKey, analyzeDBURL, analyzeVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.service.AnalyzeJob(ctx, rawText)
	if err != nil {
		return fmt.Errorf("failed to analyze job posting: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if analyzeOutputFile != "" {
		if err := os.WriteFile(analyzeOutputFile, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Successfully analyzed job posting\n")
		fmt.Fprintf(os.Stdout, "Output: %s\n", analyzeOutputFile)
		return nil
	}

	fmt.Fprintln(os.Stdout, string(jsonBytes))
	return nil
}
