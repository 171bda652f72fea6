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

// DetectContradictions compares all responses in a transcript and reports
// factual inconsistencies. Fewer than two responses, or an unparseable
// reply, yields an empty list: absence of evidence is not an error.
func (e *Evaluator) DetectContradictions(ctx context.Context, exchanges []types.Exchange) ([]types.Contradiction, error) {
	if len(exchanges) < 2 {
		return []types.Contradiction{}, nil
	}

	obj, err := e.classifier.Object(ctx, llm.Request{
		System: prompts.MustGet("evaluation.json", "contradictions-system"),
		User: prompts.Format(prompts.MustGet("evaluation.json", "contradictions-user"), map[string]string{
			"Transcript": formatTranscript(exchanges),
		}),
		Temperature: evalTemperature,
		Tier:        llm.TierAdvanced,
	}, schemas.Contradictions)
	if err != nil {
		e.log.Warn("contradiction detection unparseable, reporting none", zap.Error(err))
		return []types.Contradiction{}, nil
	}

	raw, _ := obj["contradictions"].([]any)
	out := make([]types.Contradiction, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := types.Contradiction{}
		if desc, ok := entry["description"].(string); ok {
			c.Description = desc
		}
		if sev, ok := entry["severity"].(string); ok {
			c.Severity = sev
		}
		if involved, ok := entry["responses_involved"].([]any); ok {
			for _, r := range involved {
				if s, ok := r.(string); ok {
					c.ResponsesInvolved = append(c.ResponsesInvolved, s)
				}
			}
		}
		if c.Description != "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func formatTranscript(exchanges []types.Exchange) string {
	var b strings.Builder
	for i, ex := range exchanges {
		fmt.Fprintf(&b, "Question %d: %s\nResponse %d: %s\n\n", i+1, ex.Question, i+1, ex.Response)
	}
	return b.String()
}
