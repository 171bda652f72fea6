package ranking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/catalog"
	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/prompts"
	"github.com/jordan/interview-copilot/internal/tagging"
)

// backfillTemperature is slightly higher than tagging: the remaining-name
// pick is a judgment call, not an exact classification.
const backfillTemperature = 0.5

// Backfiller extends a short ranking up to min(5, catalog size) distinct
// names. The primary mechanism is one classifier call choosing the most
// relevant remaining catalog names given the full job text; every failure
// degrades to deterministic lexicographic catalog padding.
type Backfiller struct {
	classifier *tagging.Classifier
	log        *zap.Logger
}

// NewBackfiller builds a backfiller. classifier may be nil, in which case
// only lexicographic padding is used.
func NewBackfiller(classifier *tagging.Classifier, log *zap.Logger) *Backfiller {
	return &Backfiller{classifier: classifier, log: log}
}

// Complete returns a duplicate-free ranking of exactly min(5, catalog size)
// names. The incoming ranking keeps its order; backfilled names follow it.
func (b *Backfiller) Complete(ctx context.Context, ranking []string, cat *catalog.Catalog, jobText string) []string {
	target := maxRanked
	if cat.Size() < target {
		target = cat.Size()
	}

	out := make([]string, 0, target)
	chosen := make(map[string]bool, target)
	for _, name := range ranking {
		if len(out) == target {
			break
		}
		if chosen[name] {
			continue
		}
		chosen[name] = true
		out = append(out, name)
	}
	if len(out) == target {
		return out
	}

	remaining := make([]string, 0, cat.Size()-len(out))
	for _, name := range cat.Names() {
		if !chosen[name] {
			remaining = append(remaining, name)
		}
	}

	if b.classifier != nil && strings.TrimSpace(jobText) != "" {
		picked := b.pickRelevant(ctx, out, remaining, target-len(out), jobText)
		for _, name := range picked {
			if len(out) == target {
				break
			}
			if chosen[name] {
				continue
			}
			chosen[name] = true
			out = append(out, name)
		}
	}

	// Deterministic padding: remaining is already in the catalog's sorted
	// order, so this never depends on classifier behavior.
	for _, name := range remaining {
		if len(out) == target {
			break
		}
		if chosen[name] {
			continue
		}
		chosen[name] = true
		out = append(out, name)
	}

	return out
}

// pickRelevant asks the classifier for the count most relevant remaining
// names. Names outside the remaining set are dropped; any error yields nil.
func (b *Backfiller) pickRelevant(ctx context.Context, chosen, remaining []string, count int, jobText string) []string {
	allowed := make(map[string]bool, len(remaining))
	for _, name := range remaining {
		allowed[name] = true
	}

	raw, err := b.classifier.StringList(ctx, llm.Request{
		System: prompts.Format(prompts.MustGet("ranking.json", "backfill-system"), map[string]string{
			"Chosen":    strings.Join(chosen, ", "),
			"Count":     fmt.Sprintf("%d", count),
			"Remaining": strings.Join(remaining, ", "),
		}),
		User: prompts.Format(prompts.MustGet("ranking.json", "backfill-user"), map[string]string{
			"JobText": jobText,
		}),
		Temperature: backfillTemperature,
		Tier:        llm.TierStandard,
	})
	if err != nil {
		b.log.Warn("backfill classification failed, padding from catalog", zap.Error(err))
		return nil
	}

	picked := make([]string, 0, count)
	for _, name := range raw {
		if !allowed[name] {
			b.log.Warn("dropping backfill name not in catalog remainder", zap.String("name", name))
			continue
		}
		picked = append(picked, name)
	}
	return picked
}
