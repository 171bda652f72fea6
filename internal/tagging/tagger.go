package tagging

import (
	"context"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/catalog"
	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/logger"
	"github.com/jordan/interview-copilot/internal/prompts"
	"github.com/jordan/interview-copilot/internal/types"
)

const (
	// maxTags caps the competency tags kept per responsibility.
	maxTags = 5
	// tagTemperature keeps classification output stable across runs.
	tagTemperature = 0.3
)

// Tagger assigns catalog competencies to responsibilities and summaries.
// Every failure mode resolves to a per-item fallback; a malformed reply for
// one responsibility never aborts the rest of the batch.
type Tagger struct {
	classifier *Classifier
	log        *zap.Logger
}

// NewTagger builds a tagger on top of the shared classifier.
func NewTagger(classifier *Classifier, log *zap.Logger) *Tagger {
	return &Tagger{classifier: classifier, log: log}
}

// Tag classifies one responsibility into 0-5 catalog competencies.
//
// A deliberate empty-list reply is kept as an empty tag set (the "nothing
// applies" outcome). A transport error, unparseable reply, or a reply whose
// names all fail catalog validation resolves to the catalog's fallback tag.
func (t *Tagger) Tag(ctx context.Context, responsibility string, cat *catalog.Catalog) types.TaggedResponsibility {
	tagged := types.TaggedResponsibility{
		Responsibility: responsibility,
		Tags:           []string{},
	}

	raw, err := t.classifier.StringList(ctx, llm.Request{
		System: prompts.Format(prompts.MustGet("tagging.json", "tag-responsibility-system"), map[string]string{
			"CompetencyDetails": cat.PromptBlock(),
		}),
		User: prompts.Format(prompts.MustGet("tagging.json", "tag-responsibility-user"), map[string]string{
			"Responsibility": responsibility,
		}),
		Temperature: tagTemperature,
		Tier:        llm.TierLite,
	})
	if err != nil {
		t.log.Warn("tagging failed, applying fallback tag",
			zap.String("responsibility", logger.Truncate(responsibility, 60)),
			zap.Error(err))
		tagged.Tags = fallbackTags(cat)
		return tagged
	}

	if len(raw) == 0 {
		// Explicit "no relevant competency" outcome.
		return tagged
	}

	valid := t.filterToCatalog(raw, cat)
	if len(valid) == 0 {
		// The model returned names, but none survived validation.
		tagged.Tags = fallbackTags(cat)
		return tagged
	}
	if len(valid) > maxTags {
		valid = valid[:maxTags]
	}
	tagged.Tags = valid
	return tagged
}

// TagSummary classifies a position summary into 1-5 catalog competencies.
// Unlike Tag, an empty reply also resolves to the fallback tag: a summary
// always carries at least one competency.
func (t *Tagger) TagSummary(ctx context.Context, summary string, cat *catalog.Catalog) []string {
	raw, err := t.classifier.StringList(ctx, llm.Request{
		System: prompts.Format(prompts.MustGet("tagging.json", "tag-summary-system"), map[string]string{
			"CompetencyDetails": cat.PromptBlock(),
		}),
		User: prompts.Format(prompts.MustGet("tagging.json", "tag-summary-user"), map[string]string{
			"Summary": summary,
		}),
		Temperature: tagTemperature,
		Tier:        llm.TierLite,
	})
	if err != nil {
		t.log.Warn("summary tagging failed, applying fallback tag", zap.Error(err))
		return fallbackTags(cat)
	}

	valid := t.filterToCatalog(raw, cat)
	if len(valid) == 0 {
		return fallbackTags(cat)
	}
	if len(valid) > maxTags {
		valid = valid[:maxTags]
	}
	return valid
}

// filterToCatalog drops (and logs) any name not exactly matching a catalog
// entry, preserving reply order and removing duplicates.
func (t *Tagger) filterToCatalog(names []string, cat *catalog.Catalog) []string {
	valid := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if !cat.Has(name) {
			t.log.Warn("dropping tag not in catalog", zap.String("tag", name))
			continue
		}
		valid = append(valid, name)
	}
	return valid
}

func fallbackTags(cat *catalog.Catalog) []string {
	if tag := cat.FallbackTag(); tag != "" {
		return []string{tag}
	}
	return []string{}
}
