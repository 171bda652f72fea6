package catalog

// defaultNames is the fixed competency set used whenever the backing store
// is empty or unreachable. The set is a stable constant: analysis results
// stay reproducible across environments that have no catalog loaded.
var defaultNames = []string{
	"Action Oriented", "Balances Stakeholders", "Being Resilient", "Builds Effective Teams",
	"Builds Networks", "Business Insight", "Collaborates", "Communicates Effectively",
	"Courage", "Customer Focus", "Decision Quality", "Develops Talent",
	"Directs Work", "Drives Engagement", "Drives Results", "Drives Vision and Purpose",
	"Financial Acumen", "Global Perspective", "Instills Trust", "Interpersonal Savvy",
	"Manages Ambiguity", "Manages Complexity", "Manages Conflict", "Nimble Learning",
	"Optimizes Work Processes", "Persuades", "Plans and Aligns", "Political Savvy",
	"Resourcefulness", "Self-Development", "Situational Adaptability", "Strategic Mindset",
	"Tech Savvy", "Values Differences",
}

// fallbackTag is the tag applied when a classifier reply fails parsing or
// validation. It must exist in the default catalog.
const fallbackTag = "Business Insight"
