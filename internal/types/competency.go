// Package types defines the shared data structures for the interview analysis pipeline.
package types

// Competency is a single entry from the competency catalog.
// Name is the catalog key; Description may be empty when the catalog
// was built from the default list.
type Competency struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TaggedResponsibility pairs a job responsibility with the competency tags
// assigned to it. Tags are always exact catalog names; an empty slice means
// the classifier deliberately found nothing relevant.
type TaggedResponsibility struct {
	Responsibility string   `json:"responsibility"`
	Tags           []string `json:"tags"`
}

// AnalysisResult is the output of responsibility analysis: the per-item
// tagged list in input order, plus the ranked top competencies.
type AnalysisResult struct {
	TaggedResponsibilities []TaggedResponsibility `json:"tagged_responsibilities"`
	TopCompetencies        []string               `json:"top_competencies"`
}

// JobAnalysis is the result of analyzing a full job posting end to end.
type JobAnalysis struct {
	PositionSummary        string                 `json:"position_summary"`
	SummaryTags            []string               `json:"summary_tags"`
	Responsibilities       []string               `json:"responsibilities"`
	TaggedResponsibilities []TaggedResponsibility `json:"tagged_responsibilities"`
	TopCompetencies        []string               `json:"top_competencies"`
	Questions              []Recommendation       `json:"questions"`
}
