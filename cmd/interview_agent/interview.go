package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jordan/interview-copilot/internal/documents"
	"github.com/jordan/interview-copilot/internal/session"
	"github.com/jordan/interview-copilot/internal/types"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive interview session",
	Long:  "Analyze a job posting, then interactively evaluate candidate responses against the recommended questions. Exchanges accumulate in the session and are checked for contradictions at the end.",
	RunE:  runInterview,
}

var (
	interviewFile       string
	interviewURL        string
	interviewConfigFile string
	interviewAPIKey     string
	interviewDBURL      string
	interviewVerbose    bool
)

func init() {
	interviewCmd.Flags().StringVarP(&interviewFile, "file", "f", "", "Path to job posting file (.txt, .md, .pdf, .docx)")
	interviewCmd.Flags().StringVarP(&interviewURL, "url", "u", "", "URL to fetch the job posting from")
	interviewCmd.Flags().StringVar(&interviewConfigFile, "config", "", "Path to JSON config file")
	interviewCmd.Flags().StringVar(&interviewAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	interviewCmd.Flags().StringVar(&interviewDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")
	interviewCmd.Flags().BoolVarP(&interviewVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(interviewCmd)
}

func runInterview(_ *cobra.Command, _ []string) error {
	if interviewFile == "" && interviewURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if interviewFile != "" && interviewURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	ctx := context.Background()

	var rawText string
	if interviewFile != "" {
		data, err := os.ReadFile(interviewFile)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		rawText, err = documents.ExtractText(interviewFile, data)
		if err != nil {
			return fmt.Errorf("failed to extract text: %w", err)
		}
	} else {
		var err error
		rawText, err = documents.ExtractURL(ctx, interviewURL)
		if err != nil {
			return fmt.Errorf("failed to fetch URL: %w", err)
		}
	}

	a, err := buildApp(ctx, interviewConfigFile, interviewAPIKey, interviewDBURL, interviewVerbose)
	if err != nil {
		return err
	}
	defer a.close()

	analysis, err := a.service.AnalyzeJob(ctx, rawText)
	if err != nil {
		return fmt.Errorf("failed to analyze job posting: %w", err)
	}

	store := session.NewMemoryStore(time.Duration(a.cfg.SessionTTLMinutes) * time.Minute)
	conv := store.NewConversation()
	conv.PostingText = rawText
	conv.Analysis = analysis
	store.Put(conv)

	fmt.Fprintf(os.Stdout, "Session %s started\n\n", conv.ID)
	fmt.Fprintf(os.Stdout, "Top competencies: %s\n\n", strings.Join(analysis.TopCompetencies, ", "))
	fmt.Fprintln(os.Stdout, "Recommended questions:")
	for _, rec := range analysis.Questions {
		fmt.Fprintf(os.Stdout, "  %d. [%s] %s\n", rec.Rank, rec.Competency, rec.PrimaryQuestion)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Enter a question, then the candidate's response. Empty question ends the session.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(os.Stdout, "\nQuestion> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			break
		}

		fmt.Fprint(os.Stdout, "Response> ")
		if !scanner.Scan() {
			break
		}
		response := strings.TrimSpace(scanner.Text())
		if response == "" {
			fmt.Fprintln(os.Stdout, "Skipping empty response")
			continue
		}

		starAnalysis, err := a.evaluator.AnalyzeSTAR(ctx, question, response)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to analyze response: %v\n", err)
			continue
		}

		conv.Exchanges = append(conv.Exchanges, types.Exchange{Question: question, Response: response})
		store.Put(conv)

		fmt.Fprintf(os.Stdout, "STAR completeness: %.1f/10\n", starAnalysis.CompletenessScore)

		var followUps []types.FollowUp
		if len(starAnalysis.MissingElements) > 0 {
			fmt.Fprintf(os.Stdout, "Missing or weak: %s\n", strings.Join(starAnalysis.MissingElements, ", "))
			followUps, err = a.evaluator.STARFollowUps(ctx, question, response, starAnalysis)
		} else {
			followUps, err = a.evaluator.FollowUps(ctx, question, response)
		}
		if err == nil {
			for _, f := range followUps {
				fmt.Fprintf(os.Stdout, "Follow-up: %s\n", f.Question)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if len(conv.Exchanges) >= 2 {
		contradictions, err := a.evaluator.DetectContradictions(ctx, conv.Exchanges)
		if err != nil {
			return fmt.Errorf("failed to detect contradictions: %w", err)
		}
		if len(contradictions) > 0 {
			fmt.Fprintln(os.Stdout, "\nPossible contradictions:")
			jsonBytes, err := json.MarshalIndent(contradictions, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(jsonBytes))
		} else {
			fmt.Fprintln(os.Stdout, "\nNo contradictions detected")
		}
	}

	store.Delete(conv.ID)
	fmt.Fprintf(os.Stdout, "\nSession %s ended after %d exchange(s)\n", conv.ID, len(conv.Exchanges))

	return nil
}
