// Package tagging classifies responsibilities and summaries into catalog
// competencies via the chat-completion client.
package tagging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/llm"
	"github.com/jordan/interview-copilot/internal/logger"
	"github.com/jordan/interview-copilot/internal/schemas"
)

const (
	// defaultAttempts bounds retries for one classification call.
	defaultAttempts = 2
	// defaultTimeout is the per-call classifier deadline. Timeouts are
	// treated exactly like parse failures: fall back and continue.
	defaultTimeout = 30 * time.Second
)

// Classifier is the one reusable classify-with-fallback operation shared by
// the responsibility tagger, the summary path, and ranking backfill. It
// retries a bounded number of times and reports failure as a value the
// caller resolves with its own fallback policy.
type Classifier struct {
	client   llm.Client
	log      *zap.Logger
	attempts int
	timeout  time.Duration
}

// ClassifierConfig tunes retry and deadline behavior. Zero values select
// the defaults.
type ClassifierConfig struct {
	Attempts int
	Timeout  time.Duration
}

// NewClassifier builds a classifier around a chat-completion client.
func NewClassifier(client llm.Client, log *zap.Logger, cfg ClassifierConfig) *Classifier {
	if cfg.Attempts <= 0 {
		cfg.Attempts = defaultAttempts
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Classifier{
		client:   client,
		log:      log,
		attempts: cfg.Attempts,
		timeout:  cfg.Timeout,
	}
}

// StringList runs one classification request expecting a JSON list of
// strings. The reply is normalized through the standard shape rescue and
// checked against the tag-list schema. Transport errors, timeouts, and
// unparseable replies are all retried up to the attempt bound, then
// surfaced as a single error.
func (c *Classifier) StringList(ctx context.Context, req llm.Request) ([]string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		raw, err := c.client.Complete(callCtx, req)
		cancel()
		if err != nil {
			lastErr = err
			c.log.Warn("classifier call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		list, fail := llm.StringList(raw)
		if fail != nil {
			lastErr = fail
			c.log.Warn("classifier reply not parseable",
				zap.Int("attempt", attempt),
				zap.String("reply", logger.Truncate(raw, 120)))
			continue
		}

		doc, err := json.Marshal(list)
		if err != nil {
			lastErr = err
			continue
		}
		if err := schemas.Validate(schemas.TagList, doc); err != nil {
			lastErr = err
			c.log.Warn("classifier reply failed schema validation",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		return list, nil
	}

	return nil, fmt.Errorf("classification failed after %d attempts: %w", c.attempts, lastErr)
}

// Object runs one classification request expecting a JSON object validated
// against the named schema.
func (c *Classifier) Object(ctx context.Context, req llm.Request, schema string) (map[string]any, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		raw, err := c.client.Complete(callCtx, req)
		cancel()
		if err != nil {
			lastErr = err
			c.log.Warn("classifier call failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		obj, fail := llm.ExtractObject(raw)
		if fail != nil {
			lastErr = fail
			c.log.Warn("classifier reply not parseable",
				zap.Int("attempt", attempt),
				zap.String("reply", logger.Truncate(raw, 120)))
			continue
		}

		doc, err := json.Marshal(obj)
		if err != nil {
			lastErr = err
			continue
		}
		if err := schemas.Validate(schema, doc); err != nil {
			lastErr = err
			c.log.Warn("classifier reply failed schema validation",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		return obj, nil
	}

	return nil, fmt.Errorf("classification failed after %d attempts: %w", c.attempts, lastErr)
}
