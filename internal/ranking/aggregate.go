// Package ranking derives the top competency ranking from tagged
// responsibilities and backfills it to a full five entries.
package ranking

import (
	"sort"

	"github.com/jordan/interview-copilot/internal/types"
)

// maxRanked caps the competency ranking length.
const maxRanked = 5

// Aggregate counts tag occurrences across the batch and returns up to five
// competency names ordered by descending count. Ties break lexicographically
// on the name, which makes the ranking deterministic and aggregation
// idempotent regardless of map iteration order.
func Aggregate(tagged []types.TaggedResponsibility) []string {
	counts := make(map[string]int)
	for _, tr := range tagged {
		for _, tag := range tr.Tags {
			counts[tag]++
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > maxRanked {
		names = names[:maxRanked]
	}
	return names
}
