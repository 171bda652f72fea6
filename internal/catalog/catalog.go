// Package catalog loads the bounded set of valid competency names and
// descriptions that every tagging stage validates against.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jordan/interview-copilot/internal/types"
)

// Store reads competency rows from the keyed item store.
type Store interface {
	ListCompetencies(ctx context.Context) ([]types.Competency, error)
}

// Catalog is an immutable snapshot of the competency set for one analysis
// run. Names are held in sorted order, which is also the deterministic
// order used for backfill padding and tie-breaks.
type Catalog struct {
	names        []string
	descriptions map[string]string
}

// Load reads the catalog from the store. An empty result or a read failure
// resolves to the default catalog rather than an error: an unreachable
// store must never abort an analysis run.
func Load(ctx context.Context, store Store, log *zap.Logger) *Catalog {
	if store == nil {
		log.Warn("no competency store configured, using default catalog")
		return Default()
	}

	rows, err := store.ListCompetencies(ctx)
	if err != nil {
		log.Error("failed to load competencies, using default catalog", zap.Error(err))
		return Default()
	}
	if len(rows) == 0 {
		log.Warn("competency store is empty, using default catalog")
		return Default()
	}

	return New(rows)
}

// New builds a catalog from rows, dropping nameless entries and duplicates.
func New(rows []types.Competency) *Catalog {
	c := &Catalog{descriptions: make(map[string]string, len(rows))}
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		if _, seen := c.descriptions[name]; seen {
			continue
		}
		c.descriptions[name] = row.Description
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c
}

// Default returns the fixed fallback catalog with empty descriptions.
func Default() *Catalog {
	rows := make([]types.Competency, 0, len(defaultNames))
	for _, name := range defaultNames {
		rows = append(rows, types.Competency{Name: name})
	}
	return New(rows)
}

// Names returns every catalog name in sorted order. Callers must not mutate
// the returned slice.
func (c *Catalog) Names() []string {
	return c.names
}

// Size returns the number of competencies in the catalog.
func (c *Catalog) Size() int {
	return len(c.names)
}

// Has reports whether name is an exact (case-sensitive) catalog member.
func (c *Catalog) Has(name string) bool {
	_, ok := c.descriptions[name]
	return ok
}

// Description returns the description for name, or "" when absent.
func (c *Catalog) Description(name string) string {
	return c.descriptions[name]
}

// FallbackTag returns the tag used when classification fails outright:
// the standard default when the catalog contains it, otherwise the first
// name in sorted order. It never fabricates a name outside the catalog.
func (c *Catalog) FallbackTag() string {
	if c.Has(fallbackTag) {
		return fallbackTag
	}
	if len(c.names) > 0 {
		return c.names[0]
	}
	return ""
}

// PromptBlock renders the catalog as the bulleted name/description list
// embedded in classifier prompts.
func (c *Catalog) PromptBlock() string {
	var b strings.Builder
	for _, name := range c.names {
		if desc := c.descriptions[name]; desc != "" {
			fmt.Fprintf(&b, "\n- %s: %s", name, desc)
		} else {
			fmt.Fprintf(&b, "\n- %s", name)
		}
	}
	return b.String()
}
