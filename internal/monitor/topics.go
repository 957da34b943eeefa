package monitor

import (
	"regexp"
	"strings"
)

// Topic is a correlation subject tracked for mention frequency, source
// diversity, and momentum. Patterns are configuration data: swapping the
// topic set changes what the engine tracks without touching its logic.
type Topic struct {
	ID       string
	Category string
	Patterns []*regexp.Regexp
}

// DefaultTopics returns the built-in correlation topic catalog.
func DefaultTopics() []Topic {
	return []Topic{
		{
			ID:       "military-escalation",
			Category: "Conflict",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)strike|missile|offensive|invasion|troops|shelling`),
			},
		},
		{
			ID:       "russia-ukraine-war",
			Category: "Conflict",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)russia|ukraine|kyiv|kremlin|zelensky|putin`),
			},
		},
		{
			ID:       "middle-east-crisis",
			Category: "Conflict",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)israel|gaza|hezbollah|houthi|iran`),
			},
		},
		{
			ID:       "nuclear-escalation",
			Category: "Conflict",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)nuclear|warhead|icbm|atomic`),
			},
		},
		{
			ID:       "taiwan-strait",
			Category: "Conflict",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)taiwan|south china sea|pla drill`),
			},
		},
		{
			ID:       "energy-shock",
			Category: "Economic",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\boil\b|opec|pipeline|lng|energy crisis`),
			},
		},
		{
			ID:       "market-stress",
			Category: "Economic",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)recession|inflation|sell-?off|market crash|default`),
			},
		},
		{
			ID:       "cyber-attack",
			Category: "Technology",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)cyber|ransomware|malware|data breach|hacker`),
			},
		},
		{
			ID:       "ai-race",
			Category: "Technology",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)artificial intelligence|\bai\b|autonomous weapon`),
			},
		},
		{
			ID:       "sanctions-pressure",
			Category: "Policy",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)sanction|embargo|export control|tariff`),
			},
		},
		{
			ID:       "election-interference",
			Category: "Policy",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)election|disinformation|voter fraud|ballot`),
			},
		},
		{
			ID:       "intel-operations",
			Category: "Security",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)espionage|\bspy\b|intelligence agency|covert`),
			},
		},
		{
			ID:       "diplomatic-realignment",
			Category: "Diplomacy",
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)summit|ceasefire|peace talks|normalization|treaty`),
			},
		},
	}
}

// formatTopicName turns a topic id like "nuclear-escalation" into a display
// name like "Nuclear Escalation".
func formatTopicName(id string) string {
	words := strings.Split(id, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
