package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSTARAnalysis_ComponentsOrder(t *testing.T) {
	a := &STARAnalysis{
		Situation: STARComponent{Confidence: 1},
		Task:      STARComponent{Confidence: 2},
		Action:    STARComponent{Confidence: 3},
		Result:    STARComponent{Confidence: 4},
	}

	components := a.Components()

	for i, comp := range components {
		assert.Equal(t, i+1, comp.Confidence)
	}
}

func TestFeedbackRequest_Validation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(FeedbackRequest{QuestionID: uuid.New(), Delta: 1}))
	assert.NoError(t, v.Struct(FeedbackRequest{QuestionID: uuid.New(), Delta: -1}))

	assert.Error(t, v.Struct(FeedbackRequest{QuestionID: uuid.New(), Delta: 2}))
	assert.Error(t, v.Struct(FeedbackRequest{QuestionID: uuid.New(), Delta: 0}), "zero delta is rejected")
	assert.Error(t, v.Struct(FeedbackRequest{Delta: 1}), "question ID is required")
}
