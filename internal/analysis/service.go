// Package analysis wires the pipeline stages into the call-level entry
// points the caller-facing layer consumes.
package analysis

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jordan/interview-copilot/internal/catalog"
	"github.com/jordan/interview-copilot/internal/posting"
	"github.com/jordan/interview-copilot/internal/questions"
	"github.com/jordan/interview-copilot/internal/ranking"
	"github.com/jordan/interview-copilot/internal/tagging"
	"github.com/jordan/interview-copilot/internal/types"
)

// defaultWorkers bounds concurrent outstanding classifier calls so the
// external service is never flooded.
const defaultWorkers = 4

// Service runs the competency-tagging and question-recommendation pipeline.
// It holds no per-request state; every method takes its inputs explicitly.
type Service struct {
	tagger      *tagging.Tagger
	backfiller  *ranking.Backfiller
	recommender *questions.Recommender
	catalogs    catalog.Store
	log         *zap.Logger
	workers     int
}

// Config assembles a Service. CatalogStore may be nil (default catalog is
// used); Workers <= 0 selects the default pool size.
type Config struct {
	Tagger       *tagging.Tagger
	Backfiller   *ranking.Backfiller
	Recommender  *questions.Recommender
	CatalogStore catalog.Store
	Workers      int
}

// NewService builds the pipeline service.
func NewService(cfg Config, log *zap.Logger) *Service {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Service{
		tagger:      cfg.Tagger,
		backfiller:  cfg.Backfiller,
		recommender: cfg.Recommender,
		catalogs:    cfg.CatalogStore,
		log:         log,
		workers:     workers,
	}
}

// AnalyzeResponsibilities tags each responsibility, aggregates the tags into
// the top-competency ranking, and backfills the ranking to five entries.
// An empty input returns empty structures without touching the classifier.
// Tagging runs on a bounded worker pool; results keep input order.
func (s *Service) AnalyzeResponsibilities(ctx context.Context, responsibilities []string) (types.AnalysisResult, error) {
	result := types.AnalysisResult{
		TaggedResponsibilities: []types.TaggedResponsibility{},
		TopCompetencies:        []string{},
	}

	items := nonEmpty(responsibilities)
	if len(items) == 0 {
		return result, nil
	}

	cat := catalog.Load(ctx, s.catalogs, s.log)

	tagged := make([]types.TaggedResponsibility, len(items))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, responsibility := range items {
		g.Go(func() error {
			// Tag never returns an error: per-item failures resolve to
			// fallback tags inside the tagger.
			tagged[i] = s.tagger.Tag(gCtx, responsibility, cat)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.TaggedResponsibilities = tagged
	result.TopCompetencies = s.backfiller.Complete(ctx, ranking.Aggregate(tagged), cat, strings.Join(items, "\n"))
	return result, nil
}

// AnalyzeSummary tags a position summary with 1-5 competencies. An empty
// summary returns an empty list without touching the classifier.
func (s *Service) AnalyzeSummary(ctx context.Context, summary string) ([]string, error) {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return []string{}, nil
	}

	cat := catalog.Load(ctx, s.catalogs, s.log)
	return s.tagger.TagSummary(ctx, summary, cat), nil
}

// RecommendQuestions produces the primary/backup question pairings for a
// ranked competency list.
func (s *Service) RecommendQuestions(ctx context.Context, topCompetencies []string) []types.Recommendation {
	return s.recommender.Recommend(ctx, topCompetencies)
}

// AnalyzeJob runs the full pipeline over raw job posting text: segment,
// tag the summary, tag each responsibility, rank, and recommend questions.
func (s *Service) AnalyzeJob(ctx context.Context, rawText string) (*types.JobAnalysis, error) {
	segmented := posting.Extract(rawText)

	out := &types.JobAnalysis{
		PositionSummary:  segmented.Summary,
		Responsibilities: segmented.Responsibilities,
		SummaryTags:      []string{},
	}

	if segmented.Summary != "" {
		tags, err := s.AnalyzeSummary(ctx, segmented.Summary)
		if err != nil {
			return nil, err
		}
		out.SummaryTags = tags
	}

	result, err := s.AnalyzeResponsibilities(ctx, segmented.Responsibilities)
	if err != nil {
		return nil, err
	}
	out.TaggedResponsibilities = result.TaggedResponsibilities
	out.TopCompetencies = result.TopCompetencies

	out.Questions = s.RecommendQuestions(ctx, out.TopCompetencies)
	return out, nil
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
