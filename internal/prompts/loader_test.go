package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("tagging.json", "tag-responsibility-system")

	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.CompetencyDetails}}")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("tagging.json", "does-not-exist")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "whatever")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("tagging.json", "does-not-exist") })
	assert.NotPanics(t, func() { MustGet("tagging.json", "tag-summary-user") })
}

func TestFormat(t *testing.T) {
	out := Format("Analyze '{{.Responsibility}}' against {{.CompetencyDetails}}", map[string]string{
		"Responsibility":    "Lead teams",
		"CompetencyDetails": "- Leadership",
	})

	assert.Equal(t, "Analyze 'Lead teams' against - Leadership", out)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Other": "x"})

	assert.Equal(t, "Hello {{.Name}}", out)
}

// Every prompt key the pipeline references at runtime must exist; MustGet
// panics inside a request otherwise.
func TestAllPipelinePromptsPresent(t *testing.T) {
	keys := map[string][]string{
		"tagging.json":    {"tag-responsibility-system", "tag-responsibility-user", "tag-summary-system", "tag-summary-user"},
		"ranking.json":    {"backfill-system", "backfill-user"},
		"questions.json":  {"generate-search-system", "generate-search-user"},
		"evaluation.json": {"star-system", "star-user", "contradictions-system", "contradictions-user", "followup-system", "followup-user", "star-followup-system", "star-followup-user"},
	}

	for filename, names := range keys {
		for _, name := range names {
			prompt, err := Get(filename, name)
			require.NoError(t, err, "%s/%s", filename, name)
			assert.NotEmpty(t, strings.TrimSpace(prompt), "%s/%s", filename, name)
		}
	}
}
