package evaluation

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/prompts"
	"github.com/jordan/interview-copilot/internal/schemas"
	"github.com/jordan/interview-copilot/internal/types"
)

// genericFollowUp is the deterministic last-resort follow-up.
var genericFollowUp = types.FollowUp{
	Question:  "Can you tell me more about that experience?",
	Reasoning: "Generic follow-up to encourage elaboration",
}

// FollowUps generates 2-3 open-ended follow-up questions for a candidate
// response. Parse failure degrades to the single generic follow-up.
func (e *Evaluator) FollowUps(ctx context.Context, question, response string) ([]types.FollowUp, error) {
	if response == "" {
		return nil, fmt.Errorf("response is required for follow-up generation")
	}

	return e.followUps(ctx, llm.Request{
		System: prompts.MustGet("evaluation.json", "followup-system"),
		User: prompts.Format(prompts.MustGet("evaluation.json", "followup-user"), map[string]string{
			"Question": question,
			"Response": response,
		}),
		Temperature: evalTemperature,
		Tier:        llm.TierAdvanced,
	}), nil
}

// STARFollowUps generates one follow-up per missing STAR element from a
// prior analysis. When nothing is missing, the generic follow-up stands in.
func (e *Evaluator) STARFollowUps(ctx context.Context, question, response string, analysis *types.STARAnalysis) ([]types.FollowUp, error) {
	if response == "" || analysis == nil {
		return nil, fmt.Errorf("response and STAR analysis are required for STAR follow-ups")
	}
	if len(analysis.MissingElements) == 0 {
		return []types.FollowUp{genericFollowUp}, nil
	}

	return e.followUps(ctx, llm.Request{
		System: prompts.MustGet("evaluation.json", "star-followup-system"),
		User: prompts.Format(prompts.MustGet("evaluation.json", "star-followup-user"), map[string]string{
			"Missing":  strings.Join(analysis.MissingElements, ", "),
			"Question": question,
			"Response": response,
		}),
		Temperature: evalTemperature,
		Tier:        llm.TierAdvanced,
	}), nil
}

func (e *Evaluator) followUps(ctx context.Context, req llm.Request) []types.FollowUp {
	obj, err := e.classifier.Object(ctx, req, schemas.FollowUps)
	if err != nil {
		e.log.Warn("follow-up generation unparseable, using generic follow-up", zap.Error(err))
		return []types.FollowUp{genericFollowUp}
	}

	raw, _ := obj["questions"].([]any)
	out := make([]types.FollowUp, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fu := types.FollowUp{}
		if q, ok := entry["question"].(string); ok {
			fu.Question = q
		}
		if r, ok := entry["reasoning"].(string); ok {
			fu.Reasoning = r
		}
		if fu.Question != "" {
			out = append(out, fu)
		}
	}
	if len(out) == 0 {
		return []types.FollowUp{genericFollowUp}
	}
	return out
}
