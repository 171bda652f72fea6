package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jordan/interview-copilot/internal/db"
	"github.com/jordan/interview-copilot/internal/types"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record feedback on a recommended question",
	Long:  "Record positive or negative feedback on a question bank entry. Adjusts the question's feedback score and bumps its popularity.",
	RunE:  runFeedback,
}

var (
	feedbackQuestionID string
	feedbackDelta      int
	feedbackDBURL      string
)

func init() {
	feedbackCmd.Flags().StringVar(&feedbackQuestionID, "question-id", "", "Question ID to record feedback for (required)")
	feedbackCmd.Flags().IntVar(&feedbackDelta, "delta", 0, "Feedback delta: 1 for positive, -1 for negative (required)")
	feedbackCmd.Flags().StringVar(&feedbackDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	feedbackCmd.MarkFlagRequired("question-id")
	feedbackCmd.MarkFlagRequired("delta")

	rootCmd.AddCommand(feedbackCmd)
}

func runFeedback(_ *cobra.Command, _ []string) error {
	questionID, err := uuid.Parse(feedbackQuestionID)
	if err != nil {
		return fmt.Errorf("invalid question-id: %w", err)
	}

	req := types.FeedbackRequest{
		QuestionID: questionID,
		Delta:      feedbackDelta,
	}
	if err := validator.New().Struct(req); err != nil {
		return fmt.Errorf("invalid feedback request: %w", err)
	}

	dbURL := feedbackDBURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url flag)")
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.BumpQuestionFeedback(ctx, req.QuestionID, req.Delta); err != nil {
		return fmt.Errorf("failed to record feedback: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Recorded feedback for question %s (delta %+d)\n", req.QuestionID, req.Delta)
	return nil
}
