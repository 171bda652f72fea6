// Package evaluation analyzes candidate responses: STAR framework
// breakdowns, contradiction detection, and follow-up question generation.
package evaluation

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/prompts"
	"github.com/jordan/interview-copilot/internal/schemas"
	"github.com/jordan/interview-copilot/internal/tagging"
	"github.com/jordan/interview-copilot/internal/types"
)

// starComponents is the canonical component order for scoring and reports.
var starComponents = []string{"situation", "task", "action", "result"}

// weakConfidence marks a component present but too thin to count as
// articulate; it still shows up in the missing-element list.
const weakConfidence = 5

// evalTemperature keeps evaluation output stable without making it rigid.
const evalTemperature = 0.4

// Evaluator runs LLM-backed response evaluation. All parse failures
// degrade to deterministic zero-value results; the only errors returned
// are for unusable input.
type Evaluator struct {
	classifier *tagging.Classifier
	log        *zap.Logger
}

// NewEvaluator builds an evaluator on top of the shared classifier.
func NewEvaluator(classifier *tagging.Classifier, log *zap.Logger) *Evaluator {
	return &Evaluator{classifier: classifier, log: log}
}

// AnalyzeSTAR breaks a candidate response into STAR components with
// per-component confidence and excerpts. A reply that cannot be parsed
// yields an all-absent analysis rather than an error.
func (e *Evaluator) AnalyzeSTAR(ctx context.Context, question, response string) (*types.STARAnalysis, error) {
	if response == "" {
		return nil, fmt.Errorf("response is required for STAR analysis")
	}

	obj, err := e.classifier.Object(ctx, llm.Request{
		System: prompts.MustGet("evaluation.json", "star-system"),
		User: prompts.Format(prompts.MustGet("evaluation.json", "star-user"), map[string]string{
			"Question": question,
			"Response": response,
		}),
		Temperature: evalTemperature,
		Tier:        llm.TierAdvanced,
	}, schemas.STARAnalysis)
	if err != nil {
		e.log.Warn("STAR analysis unparseable, reporting all components absent", zap.Error(err))
		obj = map[string]any{}
	}

	analysis := &types.STARAnalysis{
		Situation: componentFrom(obj, "situation"),
		Task:      componentFrom(obj, "task"),
		Action:    componentFrom(obj, "action"),
		Result:    componentFrom(obj, "result"),
	}
	analysis.CompletenessScore = completeness(analysis)
	analysis.MissingElements = missingElements(analysis)
	return analysis, nil
}

func componentFrom(obj map[string]any, key string) types.STARComponent {
	raw, ok := obj[key].(map[string]any)
	if !ok {
		return types.STARComponent{}
	}

	comp := types.STARComponent{}
	if present, ok := raw["present"].(bool); ok {
		comp.Present = present
	}
	if confidence, ok := raw["confidence"].(float64); ok {
		comp.Confidence = int(confidence)
	}
	if excerpt, ok := raw["excerpt"].(string); ok {
		comp.Excerpt = excerpt
	}
	return comp
}

// completeness scores 0-10: the summed confidence of present components
// over the maximum possible, rounded to one decimal.
func completeness(a *types.STARAnalysis) float64 {
	total := 0
	for _, comp := range a.Components() {
		if comp.Present {
			total += comp.Confidence
		}
	}
	maxScore := len(starComponents) * 10
	return math.Round(float64(total)/float64(maxScore)*10*10) / 10
}

// missingElements lists components that are absent, or present but weak.
func missingElements(a *types.STARAnalysis) []string {
	missing := []string{}
	for i, comp := range a.Components() {
		if !comp.Present || comp.Confidence < weakConfidence {
			missing = append(missing, starComponents[i])
		}
	}
	return missing
}
