package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/prompts"
	"github.com/jordan/interview-copilot/internal/tagging"
	"github.com/jordan/interview-copilot/internal/types"
)

// searchTemperature favors variety: generated search questions should not
// repeat each other across calls.
const searchTemperature = 0.7

// Searcher answers free-text question searches, generating questions with
// the classifier when the store has no matching rows.
type Searcher struct {
	store      Store
	classifier *tagging.Classifier
	log        *zap.Logger
}

// NewSearcher builds a searcher. Either dependency may be nil; a nil store
// skips straight to generation, a nil classifier skips generation.
func NewSearcher(store Store, classifier *tagging.Classifier, log *zap.Logger) *Searcher {
	return &Searcher{store: store, classifier: classifier, log: log}
}

// Search looks the query up in the store, then falls back to generated
// questions. The only error it returns is an empty query.
func (s *Searcher) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}

	var results []types.SearchResult
	if s.store != nil {
		rows, err := s.store.SearchQuestions(ctx, query)
		if err != nil {
			s.log.Warn("question search failed, falling back to generation",
				zap.String("query", query),
				zap.Error(err))
		}
		for _, row := range rows {
			results = append(results, types.SearchResult{
				ID:             row.ID.String(),
				QuestionText:   row.QuestionText,
				CompetencyName: row.CompetencyName,
			})
		}
	}
	if len(results) > 0 {
		return results, nil
	}

	return s.generate(ctx, query), nil
}

// generate asks the classifier for five STAR-style questions about the
// query, with a single deterministic question as the last resort.
func (s *Searcher) generate(ctx context.Context, query string) []types.SearchResult {
	if s.classifier != nil {
		generated, err := s.classifier.StringList(ctx, llm.Request{
			System: prompts.MustGet("questions.json", "generate-search-system"),
			User: prompts.Format(prompts.MustGet("questions.json", "generate-search-user"), map[string]string{
				"Query": query,
			}),
			Temperature: searchTemperature,
			Tier:        llm.TierStandard,
		})
		if err != nil {
			s.log.Warn("question generation failed", zap.String("query", query), zap.Error(err))
		} else if len(generated) > 0 {
			results := make([]types.SearchResult, 0, len(generated))
			for _, text := range generated {
				results = append(results, types.SearchResult{
					ID:             "generated-" + uuid.NewString(),
					QuestionText:   text,
					CompetencyName: query,
				})
			}
			return results
		}
	}

	return []types.SearchResult{{
		ID:             "fallback-" + uuid.NewString(),
		QuestionText:   fmt.Sprintf("Tell me about your experience with %s", query),
		CompetencyName: query,
	}}
}
