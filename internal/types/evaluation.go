package types

// STARComponent describes the presence of one STAR element in a candidate
// response. Confidence is 0-10; Excerpt is the best supporting quote.
type STARComponent struct {
	Present    bool   `json:"present"`
	Confidence int    `json:"confidence"`
	Excerpt    string `json:"excerpt"`
}

// STARAnalysis is the per-component breakdown of a candidate response.
type STARAnalysis struct {
	Situation STARComponent `json:"situation"`
	Task      STARComponent `json:"task"`
	Action    STARComponent `json:"action"`
	Result    STARComponent `json:"result"`

	// CompletenessScore is 0-10, derived from the confidence of the
	// components that are present.
	CompletenessScore float64  `json:"completeness_score"`
	MissingElements   []string `json:"missing_elements"`
}

// Components returns the four components in canonical STAR order.
func (a *STARAnalysis) Components() [4]STARComponent {
	return [4]STARComponent{a.Situation, a.Task, a.Action, a.Result}
}

// Exchange is one question/response pair from an interview transcript.
type Exchange struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// Contradiction describes an inconsistency detected across responses.
type Contradiction struct {
	Description       string   `json:"description"`
	ResponsesInvolved []string `json:"responses_involved"`
	Severity          string   `json:"severity"`
}

// FollowUp is a generated follow-up question with the interviewer-facing
// rationale for asking it.
type FollowUp struct {
	Question  string `json:"question"`
	Reasoning string `json:"reasoning"`
}
