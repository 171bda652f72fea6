package questions

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/tagging"
	"github.com/jordan/interview-copilot/internal/types"
)

type mockClient struct {
	replies []string
	calls   int
}

func (m *mockClient) Complete(_ context.Context, _ llm.Request) (string, error) {
	i := m.calls
	m.calls++
	if i < len(m.replies) {
		return m.replies[i], nil
	}
	return "", fmt.Errorf("no more canned replies")
}

func (m *mockClient) GetModel(_ llm.ModelTier) string { return "mock-model" }
func (m *mockClient) Close() error                    { return nil }

func newTestSearcher(store Store, client llm.Client) *Searcher {
	log := zap.NewNop()
	var classifier *tagging.Classifier
	if client != nil {
		classifier = tagging.NewClassifier(client, log, tagging.ClassifierConfig{})
	}
	return NewSearcher(store, classifier, log)
}

func TestSearch_EmptyQueryIsAnError(t *testing.T) {
	s := newTestSearcher(nil, nil)

	_, err := s.Search(context.Background(), "   ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestSearch_StoreHit(t *testing.T) {
	store := &mockStore{searchRows: []types.QuestionRecord{
		record("Leadership", "Tell me about leading a team.", 1),
	}}
	s := newTestSearcher(store, nil)

	results, err := s.Search(context.Background(), "Leadership")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tell me about leading a team.", results[0].QuestionText)
	assert.Equal(t, "Leadership", results[0].CompetencyName)
	assert.NotEmpty(t, results[0].ID)
}

func TestSearch_NoStoreRowsGenerates(t *testing.T) {
	store := &mockStore{}
	client := &mockClient{replies: []string{
		`["Q one?", "Q two?", "Q three?", "Q four?", "Q five?"]`,
	}}
	s := newTestSearcher(store, client)

	results, err := s.Search(context.Background(), "system design")

	require.NoError(t, err)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.True(t, strings.HasPrefix(r.ID, "generated-"), "ID %q should be prefixed", r.ID)
		assert.Equal(t, "system design", r.CompetencyName)
		assert.NotEmpty(t, r.QuestionText)
	}
}

func TestSearch_StoreErrorFallsThroughToGeneration(t *testing.T) {
	store := &mockStore{failSearch: true}
	client := &mockClient{replies: []string{`["Generated question?"]`}}
	s := newTestSearcher(store, client)

	results, err := s.Search(context.Background(), "debugging")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0].ID, "generated-"))
}

func TestSearch_GenerationFailureYieldsSingleFallback(t *testing.T) {
	store := &mockStore{}
	client := &mockClient{replies: []string{"not json", "still not json"}}
	s := newTestSearcher(store, client)

	results, err := s.Search(context.Background(), "negotiation")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0].ID, "fallback-"))
	assert.Equal(t, "Tell me about your experience with negotiation", results[0].QuestionText)
	assert.Equal(t, "negotiation", results[0].CompetencyName)
}

func TestSearch_NilStoreAndClassifierStillAnswers(t *testing.T) {
	s := newTestSearcher(nil, nil)

	results, err := s.Search(context.Background(), "mentoring")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0].ID, "fallback-"))
}
