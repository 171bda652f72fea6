package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/catalog"
	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/questions"
	"github.com/jordan/interview-copilot/internal/ranking"
	"github.com/jordan/interview-copilot/internal/tagging"
	"github.com/jordan/interview-copilot/internal/types"
)

// routingClient answers concurrent classification calls deterministically:
// tagging calls are routed by responsibility substring, backfill calls by
// their model tier.
type routingClient struct {
	mu            sync.Mutex
	calls         int
	tagRoutes     map[string]string
	backfillReply string
	summaryReply  string
}

func (m *routingClient) Complete(_ context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if req.Tier == llm.TierStandard {
		if m.backfillReply != "" {
			return m.backfillReply, nil
		}
		return "", fmt.Errorf("no backfill reply configured")
	}
	if m.summaryReply != "" && strings.Contains(req.System, "summary") {
		return m.summaryReply, nil
	}
	for needle, reply := range m.tagRoutes {
		if strings.Contains(req.User, needle) {
			return reply, nil
		}
	}
	return "", fmt.Errorf("no route for request")
}

func (m *routingClient) GetModel(_ llm.ModelTier) string { return "mock-model" }
func (m *routingClient) Close() error                    { return nil }

func (m *routingClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// failingStore simulates an unreachable question store.
type failingStore struct{}

func (failingStore) QuestionsByCompetency(context.Context, string) ([]types.QuestionRecord, error) {
	return nil, fmt.Errorf("store down")
}

func (failingStore) SearchQuestions(context.Context, string) ([]types.QuestionRecord, error) {
	return nil, fmt.Errorf("store down")
}

func newTestService(client llm.Client, store questions.Store, workers int) *Service {
	log := zap.NewNop()
	classifier := tagging.NewClassifier(client, log, tagging.ClassifierConfig{})
	return NewService(Config{
		Tagger:      tagging.NewTagger(classifier, log),
		Backfiller:  ranking.NewBackfiller(classifier, log),
		Recommender: questions.NewRecommender(store, log),
		Workers:     workers,
	}, log)
}

func TestAnalyzeResponsibilities_TagsAndRanks(t *testing.T) {
	client := &routingClient{
		tagRoutes: map[string]string{
			"delivery teams":  `["Drives Results", "Collaborates"]`,
			"vendor partners": `["Drives Results"]`,
			"program health":  `["Communicates Effectively"]`,
		},
		backfillReply: `["Plans and Aligns", "Manages Complexity"]`,
	}
	svc := newTestService(client, nil, 0)

	result, err := svc.AnalyzeResponsibilities(context.Background(), []string{
		"Lead delivery teams across three product lines",
		"Negotiate contracts with vendor partners",
		"Report program health to executive leadership",
	})

	require.NoError(t, err)
	require.Len(t, result.TaggedResponsibilities, 3)

	// Input order survives the worker pool.
	assert.Contains(t, result.TaggedResponsibilities[0].Responsibility, "delivery teams")
	assert.Contains(t, result.TaggedResponsibilities[1].Responsibility, "vendor partners")
	assert.Contains(t, result.TaggedResponsibilities[2].Responsibility, "program health")

	assert.Equal(t, []string{"Drives Results", "Collaborates"}, result.TaggedResponsibilities[0].Tags)

	// Ranking: Drives Results (2) first, ties alphabetical, then backfill.
	require.Len(t, result.TopCompetencies, 5)
	assert.Equal(t, "Drives Results", result.TopCompetencies[0])
	assert.Equal(t, "Collaborates", result.TopCompetencies[1])
	assert.Equal(t, "Communicates Effectively", result.TopCompetencies[2])
	assert.Equal(t, "Plans and Aligns", result.TopCompetencies[3])
	assert.Equal(t, "Manages Complexity", result.TopCompetencies[4])
}

func TestAnalyzeResponsibilities_EmptyInputSkipsClassifier(t *testing.T) {
	client := &routingClient{}
	svc := newTestService(client, nil, 0)

	result, err := svc.AnalyzeResponsibilities(context.Background(), nil)

	require.NoError(t, err)
	assert.NotNil(t, result.TaggedResponsibilities)
	assert.Empty(t, result.TaggedResponsibilities)
	assert.NotNil(t, result.TopCompetencies)
	assert.Empty(t, result.TopCompetencies)
	assert.Equal(t, 0, client.callCount())
}

func TestAnalyzeResponsibilities_BlankItemsDropped(t *testing.T) {
	client := &routingClient{}
	svc := newTestService(client, nil, 0)

	result, err := svc.AnalyzeResponsibilities(context.Background(), []string{"", "   ", "\n"})

	require.NoError(t, err)
	assert.Empty(t, result.TaggedResponsibilities)
	assert.Equal(t, 0, client.callCount())
}

func TestAnalyzeResponsibilities_OrderStableUnderParallelism(t *testing.T) {
	routes := make(map[string]string)
	items := make([]string, 12)
	for i := range items {
		items[i] = fmt.Sprintf("responsibility marker%02d for the role", i)
		routes[fmt.Sprintf("marker%02d", i)] = `["Tech Savvy"]`
	}
	client := &routingClient{tagRoutes: routes, backfillReply: `[]`}
	svc := newTestService(client, nil, 3)

	result, err := svc.AnalyzeResponsibilities(context.Background(), items)

	require.NoError(t, err)
	require.Len(t, result.TaggedResponsibilities, 12)
	for i, tr := range result.TaggedResponsibilities {
		assert.Equal(t, items[i], tr.Responsibility)
	}
}

func TestAnalyzeResponsibilities_PerItemFailureDoesNotAbortBatch(t *testing.T) {
	client := &routingClient{
		tagRoutes: map[string]string{
			"delivery teams": `["Drives Results"]`,
			// no route for the second item: both attempts error out
		},
		backfillReply: `[]`,
	}
	svc := newTestService(client, nil, 1)

	result, err := svc.AnalyzeResponsibilities(context.Background(), []string{
		"Lead delivery teams across three product lines",
		"Something the model cannot handle",
	})

	require.NoError(t, err)
	require.Len(t, result.TaggedResponsibilities, 2)
	assert.Equal(t, []string{"Drives Results"}, result.TaggedResponsibilities[0].Tags)
	assert.Equal(t, []string{"Business Insight"}, result.TaggedResponsibilities[1].Tags)
}

func TestAnalyzeSummary(t *testing.T) {
	client := &routingClient{summaryReply: `["Strategic Mindset"]`}
	svc := newTestService(client, nil, 0)

	tags, err := svc.AnalyzeSummary(context.Background(), "Own the product strategy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Strategic Mindset"}, tags)

	empty, err := svc.AnalyzeSummary(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestAnalyzeJob_FullPipeline(t *testing.T) {
	client := &routingClient{
		tagRoutes: map[string]string{
			"program roadmaps":     `["Plans and Aligns"]`,
			"vendor relationships": `["Balances Stakeholders"]`,
			"delivery metrics":     `["Drives Results"]`,
		},
		summaryReply:  `["Strategic Mindset"]`,
		backfillReply: `["Manages Complexity", "Collaborates"]`,
	}
	svc := newTestService(client, nil, 0)

	rawText := `Position Summary:
Lead cross-functional programs for healthcare products.

Responsibilities:
• Develop program roadmaps and align stakeholders
• Manage vendor relationships with external partners
• Analyze delivery metrics and report program health

Qualifications:
• 8+ years of experience`

	result, err := svc.AnalyzeJob(context.Background(), rawText)

	require.NoError(t, err)
	assert.Contains(t, result.PositionSummary, "Lead cross-functional programs")
	assert.Equal(t, []string{"Strategic Mindset"}, result.SummaryTags)
	require.Len(t, result.TaggedResponsibilities, 3)
	require.Len(t, result.TopCompetencies, 5)

	// No question store configured: the single fallback recommendation.
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "Fallback", result.Questions[0].Competency)
}

func TestAnalyzeJob_UnreachableStoreCollapsesQuestions(t *testing.T) {
	client := &routingClient{
		tagRoutes:     map[string]string{"delivery": `["Drives Results"]`},
		backfillReply: `[]`,
	}
	svc := newTestService(client, failingStore{}, 0)

	result, err := svc.AnalyzeJob(context.Background(), "Responsibilities:\n• Own delivery of the payments platform end to end")

	require.NoError(t, err)
	require.Len(t, result.Questions, 1)
	assert.Equal(t, "Fallback", result.Questions[0].Competency)
}

func TestAnalyzeResponsibilities_CatalogFromStore(t *testing.T) {
	client := &routingClient{
		tagRoutes:     map[string]string{"clusters": `["Kubernetes", "Drives Results"]`},
		backfillReply: `[]`,
	}
	log := zap.NewNop()
	classifier := tagging.NewClassifier(client, log, tagging.ClassifierConfig{})
	svc := NewService(Config{
		Tagger:       tagging.NewTagger(classifier, log),
		Backfiller:   ranking.NewBackfiller(classifier, log),
		Recommender:  questions.NewRecommender(nil, log),
		CatalogStore: stubCatalogStore{rows: []types.Competency{{Name: "Kubernetes"}, {Name: "Go"}}},
	}, log)

	result, err := svc.AnalyzeResponsibilities(context.Background(), []string{"Operate production clusters"})

	require.NoError(t, err)
	// "Drives Results" is outside the custom catalog and is dropped.
	assert.Equal(t, []string{"Kubernetes"}, result.TaggedResponsibilities[0].Tags)
	assert.Equal(t, []string{"Kubernetes", "Go"}, result.TopCompetencies)
}

type stubCatalogStore struct {
	rows []types.Competency
}

func (s stubCatalogStore) ListCompetencies(context.Context) ([]types.Competency, error) {
	return s.rows, nil
}

var _ catalog.Store = stubCatalogStore{}
