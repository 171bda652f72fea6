package types

import "github.com/google/uuid"

// QuestionRecord is a row from the questions collection. PresetOrder marks
// the preferred pairing slot for a competency (1 = primary, 2 = backup).
type QuestionRecord struct {
	ID             uuid.UUID `json:"id"`
	CompetencyName string    `json:"competency_name"`
	QuestionText   string    `json:"question_text"`
	PresetOrder    int       `json:"preset_order"`
	Popularity     float64   `json:"popularity"`
	FeedbackScore  float64   `json:"feedback_score"`
}

// Recommendation is one ranked interview question pairing. Rank is the
// 1-based position of the competency in the ranking that produced it.
type Recommendation struct {
	Competency      string `json:"competency"`
	Rank            int    `json:"rank"`
	PrimaryQuestion string `json:"primary_question"`
	BackupQuestion  string `json:"backup_question"`
}

// SearchResult is a single hit from question search. Generated entries carry
// a synthetic ID so the frontend can still key on it.
type SearchResult struct {
	ID             string `json:"id"`
	QuestionText   string `json:"question_text"`
	CompetencyName string `json:"competency_name"`
}

// FeedbackRequest records a thumbs up/down on a recommended question.
type FeedbackRequest struct {
	QuestionID uuid.UUID `json:"question_id" validate:"required"`
	Delta      int       `json:"delta" validate:"required,oneof=-1 1"`
}
