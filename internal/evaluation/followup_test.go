package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordan/interview-copilot/internal/types"
)

func TestFollowUps_ParsesReply(t *testing.T) {
	reply := `{"questions": [
		{"question": "What metrics improved?", "reasoning": "outcome unstated"},
		{"question": "Who else was involved?", "reasoning": "scope unclear"}
	]}`
	client := &mockClient{replies: []string{reply}}
	e := newTestEvaluator(client)

	followUps, err := e.FollowUps(context.Background(), "Q", "a response")

	require.NoError(t, err)
	require.Len(t, followUps, 2)
	assert.Equal(t, "What metrics improved?", followUps[0].Question)
	assert.Equal(t, "outcome unstated", followUps[0].Reasoning)
}

func TestFollowUps_EmptyResponseIsAnError(t *testing.T) {
	e := newTestEvaluator(&mockClient{})

	_, err := e.FollowUps(context.Background(), "Q", "")

	require.Error(t, err)
}

func TestFollowUps_UnparseableReplyUsesGeneric(t *testing.T) {
	client := &mockClient{replies: []string{"nope", "still nope"}}
	e := newTestEvaluator(client)

	followUps, err := e.FollowUps(context.Background(), "Q", "a response")

	require.NoError(t, err)
	require.Len(t, followUps, 1)
	assert.Equal(t, genericFollowUp, followUps[0])
}

func TestSTARFollowUps_NothingMissingUsesGeneric(t *testing.T) {
	client := &mockClient{}
	e := newTestEvaluator(client)

	analysis := &types.STARAnalysis{MissingElements: []string{}}
	followUps, err := e.STARFollowUps(context.Background(), "Q", "a response", analysis)

	require.NoError(t, err)
	require.Len(t, followUps, 1)
	assert.Equal(t, genericFollowUp, followUps[0])
	assert.Equal(t, 0, client.calls)
}

func TestSTARFollowUps_TargetsMissingElements(t *testing.T) {
	reply := `{"questions": [{"question": "What was the result?", "reasoning": "result missing"}]}`
	client := &mockClient{replies: []string{reply}}
	e := newTestEvaluator(client)

	analysis := &types.STARAnalysis{MissingElements: []string{"result"}}
	followUps, err := e.STARFollowUps(context.Background(), "Q", "a response", analysis)

	require.NoError(t, err)
	require.Len(t, followUps, 1)
	assert.Equal(t, "What was the result?", followUps[0].Question)
}

func TestSTARFollowUps_NilAnalysisIsAnError(t *testing.T) {
	e := newTestEvaluator(&mockClient{})

	_, err := e.STARFollowUps(context.Background(), "Q", "a response", nil)

	require.Error(t, err)
}
