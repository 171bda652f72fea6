package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jordan/interview-copilot/internal/types"
)

// QuestionsByCompetency returns the question rows for one competency,
// best-rated first.
func (db *DB) QuestionsByCompetency(ctx context.Context, competency string) ([]types.QuestionRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, competency_name, question_text, preset_order, popularity, feedback_score
		 FROM questions
		 WHERE competency_name = $1
		 ORDER BY popularity DESC, feedback_score DESC`,
		competency,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions for %s: %w", competency, err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// SearchQuestions finds questions whose competency name contains the query,
// falling back to a match on the question text when nothing hits.
func (db *DB) SearchQuestions(ctx context.Context, query string) ([]types.QuestionRecord, error) {
	pattern := "%" + query + "%"

	rows, err := db.pool.Query(ctx,
		`SELECT id, competency_name, question_text, preset_order, popularity, feedback_score
		 FROM questions
		 WHERE competency_name ILIKE $1
		 ORDER BY popularity DESC, feedback_score DESC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search questions: %w", err)
	}
	matches, err := scanQuestions(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}
	if len(matches) > 0 {
		return matches, nil
	}

	rows, err = db.pool.Query(ctx,
		`SELECT id, competency_name, question_text, preset_order, popularity, feedback_score
		 FROM questions
		 WHERE question_text ILIKE $1
		 ORDER BY popularity DESC, feedback_score DESC`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search question text: %w", err)
	}
	defer rows.Close()

	return scanQuestions(rows)
}

// BumpQuestionFeedback applies one feedback event: feedback_score moves by
// delta, popularity increments by one.
func (db *DB) BumpQuestionFeedback(ctx context.Context, questionID uuid.UUID, delta int) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE questions
		 SET feedback_score = feedback_score + $1, popularity = popularity + 1
		 WHERE id = $2`,
		delta, questionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update question feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("question %s not found", questionID)
	}
	return nil
}

func scanQuestions(rows pgx.Rows) ([]types.QuestionRecord, error) {
	var questions []types.QuestionRecord
	for rows.Next() {
		var q types.QuestionRecord
		if err := rows.Scan(&q.ID, &q.CompetencyName, &q.QuestionText, &q.PresetOrder, &q.Popularity, &q.FeedbackScore); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	return questions, nil
}
