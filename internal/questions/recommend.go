// Package questions joins competency rankings against the question store to
// produce primary/backup interview question pairings.
package questions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/types"
)

// Store reads question rows from the keyed item store. Implementations
// return rows sorted by (popularity, feedback_score) descending.
type Store interface {
	QuestionsByCompetency(ctx context.Context, competency string) ([]types.QuestionRecord, error)
	SearchQuestions(ctx context.Context, query string) ([]types.QuestionRecord, error)
}

const maxRecommendations = 5

// genericCompetencies pads a short ranking, in this order, skipping any
// name already present.
var genericCompetencies = []string{
	"Problem Solving", "Communication", "Leadership", "Adaptability", "Teamwork",
}

// Recommender produces question pairings for a ranked competency list.
// Lookups never mutate the store; feedback updates live elsewhere.
type Recommender struct {
	store Store
	log   *zap.Logger
}

// NewRecommender builds a recommender. store may be nil, which behaves like
// a store that is entirely unreachable.
func NewRecommender(store Store, log *zap.Logger) *Recommender {
	return &Recommender{store: store, log: log}
}

// Recommend returns one Recommendation per ranked competency, capped at
// five, padded from the generic list when the ranking is short. A failed
// lookup for a single competency degrades to that competency's generated
// questions; only total store failure collapses the result to the single
// "Fallback" recommendation.
func (r *Recommender) Recommend(ctx context.Context, ranking []string) []types.Recommendation {
	if r.store == nil {
		r.log.Warn("no question store configured, returning fallback recommendation")
		return fallbackRecommendations()
	}

	recs := make([]types.Recommendation, 0, maxRecommendations)
	attempted := 0
	failed := 0

	for _, competency := range ranking {
		if len(recs) == maxRecommendations {
			break
		}
		// "General" is a bucket, not a competency; it has no question bank.
		if competency == "General" {
			continue
		}

		attempted++
		rows, err := r.store.QuestionsByCompetency(ctx, competency)
		if err != nil {
			failed++
			r.log.Warn("question lookup failed, using generated questions",
				zap.String("competency", competency),
				zap.Error(err))
			rows = nil
		}

		recs = append(recs, buildRecommendation(competency, len(recs)+1, rows))
	}

	if attempted > 0 && failed == attempted {
		r.log.Error("question store unreachable for every competency, returning fallback recommendation")
		return fallbackRecommendations()
	}

	// Backfill short rankings with the fixed generic competencies.
	for _, competency := range genericCompetencies {
		if len(recs) == maxRecommendations {
			break
		}
		if containsCompetency(recs, competency) {
			continue
		}
		recs = append(recs, types.Recommendation{
			Competency:      competency,
			Rank:            len(recs) + 1,
			PrimaryQuestion: generatedPrimary(competency),
			BackupQuestion:  generatedBackup(competency),
		})
	}

	return recs
}

// buildRecommendation pairs the preset_order=1 and preset_order=2 rows for
// a competency, generating deterministic text for any missing slot.
func buildRecommendation(competency string, rank int, rows []types.QuestionRecord) types.Recommendation {
	rec := types.Recommendation{
		Competency:      competency,
		Rank:            rank,
		PrimaryQuestion: generatedPrimary(competency),
		BackupQuestion:  generatedBackup(competency),
	}

	var primary, backup *types.QuestionRecord
	for i := range rows {
		switch rows[i].PresetOrder {
		case 1:
			if primary == nil {
				primary = &rows[i]
			}
		case 2:
			if backup == nil {
				backup = &rows[i]
			}
		}
	}

	switch {
	case primary != nil && backup != nil:
		rec.PrimaryQuestion = primary.QuestionText
		rec.BackupQuestion = backup.QuestionText
	case primary != nil:
		rec.PrimaryQuestion = primary.QuestionText
	case backup != nil:
		// A lone row serves as the primary regardless of its slot.
		rec.PrimaryQuestion = backup.QuestionText
	}

	return rec
}

func generatedPrimary(competency string) string {
	return fmt.Sprintf("Tell me about your experience with %s", competency)
}

func generatedBackup(competency string) string {
	return fmt.Sprintf("Describe a situation where you demonstrated %s", competency)
}

func containsCompetency(recs []types.Recommendation, competency string) bool {
	for _, rec := range recs {
		if rec.Competency == competency {
			return true
		}
	}
	return false
}

// fallbackRecommendations is the last-resort result when the store is
// unreachable outright.
func fallbackRecommendations() []types.Recommendation {
	return []types.Recommendation{
		{
			Competency:      "Fallback",
			Rank:            1,
			PrimaryQuestion: "Tell me about a time you solved a complex problem.",
			BackupQuestion:  "What approach do you take when facing challenging problems?",
		},
	}
}
