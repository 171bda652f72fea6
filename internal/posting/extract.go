// Package posting segments free-form job posting text into a position
// summary and a responsibility list. The heuristics are intentionally
// simple: section headers, bullet lists, then line-level guesses.
package posting

import (
	"regexp"
	"strings"
)

// Posting is the segmented view of a raw job posting.
type Posting struct {
	Summary          string   `json:"summary"`
	Responsibilities []string `json:"responsibilities"`
}

const (
	// maxSummaryLength bounds a summary when no following section header
	// marks its end.
	maxSummaryLength = 500
	// minResponsibilityLength filters out short fragments that are almost
	// never real responsibility statements.
	minResponsibilityLength = 20
)

var (
	summaryHeaderRe = regexp.MustCompile(`(?i)\b(position summary|job summary|summary|about the role|about this role|overview)\b:?`)
	summaryEndRe    = regexp.MustCompile(`(?i)\b(responsibilities|duties|what you'll do|requirements|qualifications|essential functions)\b:?`)

	respHeaderRe = regexp.MustCompile(`(?i)\b(responsibilities|duties|what you'll do|job duties|key responsibilities|essential functions)\b:?`)
	respEndRe    = regexp.MustCompile(`(?i)\b(requirements|qualifications|what you'll need|skills|about you|who you are)\b:?`)

	bulletSplitRe   = regexp.MustCompile(`[\n\r]\s*[•*\-]\s*`)
	sentenceSplitRe = regexp.MustCompile(`[.\n\r]+`)

	// Lines opening with a capitalized gerund or verb ("Developing...",
	// "Analyze...") read like responsibility statements.
	actionVerbRe = regexp.MustCompile(`^[A-Z][a-z]+(ing|e)\b`)
)

// Extract segments raw job posting text. It never fails: missing sections
// produce an empty summary or responsibility list.
func Extract(text string) Posting {
	return Posting{
		Summary:          extractSummary(text),
		Responsibilities: extractResponsibilities(text),
	}
}

func extractSummary(text string) string {
	if loc := summaryHeaderRe.FindStringIndex(text); loc != nil {
		rest := strings.TrimSpace(text[loc[1]:])
		if end := summaryEndRe.FindStringIndex(rest); end != nil {
			return strings.TrimSpace(rest[:end[0]])
		}
		if len(rest) > maxSummaryLength {
			rest = rest[:maxSummaryLength]
		}
		return strings.TrimSpace(rest)
	}

	// No summary header: fall back to the first paragraph.
	for _, para := range strings.Split(text, "\n\n") {
		if p := strings.TrimSpace(para); p != "" {
			return p
		}
	}
	return ""
}

func extractResponsibilities(text string) []string {
	if loc := respHeaderRe.FindStringIndex(text); loc != nil {
		section := strings.TrimSpace(text[loc[1]:])
		if end := respEndRe.FindStringIndex(section); end != nil {
			section = strings.TrimSpace(section[:end[0]])
		}
		if items := splitSection(section); len(items) > 0 {
			return items
		}
	}

	return scanLines(text)
}

// splitSection breaks a responsibilities section into items: bullet points
// when present, sentences otherwise.
func splitSection(section string) []string {
	var items []string

	if strings.ContainsAny(section, "•*-") {
		for _, item := range bulletSplitRe.Split(section, -1) {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, strings.TrimLeft(item, "•*- "))
			}
		}
		return items
	}

	for _, sentence := range sentenceSplitRe.Split(section, -1) {
		if sentence = strings.TrimSpace(sentence); len(sentence) > minResponsibilityLength {
			items = append(items, sentence)
		}
	}
	return items
}

// scanLines is the last-resort pass: pick individual lines that look like
// responsibility statements.
func scanLines(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= minResponsibilityLength || strings.HasSuffix(line, ":") {
			continue
		}
		bulleted := strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
		if bulleted || actionVerbRe.MatchString(line) {
			items = append(items, strings.TrimLeft(line, "•*- "))
		}
	}
	return items
}
