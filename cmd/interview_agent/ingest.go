package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordan/interview-copilot/internal/documents"
	"github.com/jordan/interview-copilot/internal/posting"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Extract text and sections from a job posting",
	Long:  "Extract plain text from a job posting file or URL and split it into a position summary and responsibility items. No LLM calls are made.",
	RunE:  runIngest,
}

var (
	ingestFile       string
	ingestURL        string
	ingestOutputFile string
	ingestSections   bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to job posting file (.txt, .md, .pdf, .docx)")
	ingestCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestCmd.Flags().StringVarP(&ingestOutputFile, "out", "o", "", "Path to output file (defaults to stdout)")
	ingestCmd.Flags().BoolVar(&ingestSections, "sections", false, "Output extracted summary and responsibilities as JSON instead of plain text")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	ctx := context.Background()

	var text string
	if ingestFile != "" {
		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		text, err = documents.ExtractText(ingestFile, data)
		if err != nil {
			return fmt.Errorf("failed to extract text: %w", err)
		}
	} else {
		var err error
		text, err = documents.ExtractURL(ctx, ingestURL)
		if err != nil {
			return fmt.Errorf("failed to fetch URL: %w", err)
		}
	}

	output := text
	if ingestSections {
		sections := posting.Extract(text)
		jsonBytes, err := json.MarshalIndent(sections, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = string(jsonBytes)
	}

	if ingestOutputFile != "" {
		if err := os.WriteFile(ingestOutputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Successfully ingested job posting\n")
		fmt.Fprintf(os.Stdout, "Output: %s\n", ingestOutputFile)
		return nil
	}

	fmt.Fprintln(os.Stdout, output)
	return nil
}
