package monitor

import (
	"fmt"
	"strings"
)

// buildPrediction produces the human-readable explanation attached to a
// predictive signal. The wording is cosmetic; the branch that fires is
// chosen by fixed thresholds over mention count, source diversity, and
// momentum, and that selection is the behavior callers depend on.
func buildPrediction(topic Topic, count, sourceCount, delta int) string {
	mentionLevel := "emerging"
	switch {
	case count >= 10:
		mentionLevel = "explosive"
	case count >= 7:
		mentionLevel = "rapid"
	case count >= 4:
		mentionLevel = "growing"
	}

	sourceLevel := "focused"
	switch {
	case sourceCount >= 6:
		sourceLevel = "widespread"
	case sourceCount >= 4:
		sourceLevel = "broad"
	case sourceCount >= 2:
		sourceLevel = "multi-source"
	}

	momentumLevel := "stable"
	switch {
	case delta >= 5:
		momentumLevel = "accelerating"
	case delta >= 3:
		momentumLevel = "building"
	case delta >= 1:
		momentumLevel = "increasing"
	}

	switch topic.Category {
	case "Conflict":
		if delta >= 4 && sourceCount >= 4 {
			return fmt.Sprintf("%s escalation with %s coverage - expect major developments", capitalize(mentionLevel), sourceLevel)
		}
		if count >= 8 {
			return "Conflict narrative spreading rapidly across sources"
		}
		return "Geopolitical tension building with increased reporting"

	case "Economic":
		if count >= 8 && sourceCount >= 5 {
			return fmt.Sprintf("%s economic impact being reported by %d+ sources", mentionLevel, sourceCount)
		}
		if delta >= 4 {
			return fmt.Sprintf("%s economic concern with %s media attention", capitalize(momentumLevel), mentionLevel)
		}
		return fmt.Sprintf("%s economic coverage with %s trend", sourceLevel, mentionLevel)

	case "Technology":
		if delta >= 5 {
			return fmt.Sprintf("Tech story %s with %s adoption in news cycle", mentionLevel, sourceLevel)
		}
		if sourceCount >= 6 {
			return fmt.Sprintf("Major tech narrative forming - %d independent sources covering", sourceCount)
		}
		return fmt.Sprintf("%s technology trend with %s coverage", mentionLevel, sourceLevel)

	case "Policy":
		if count >= 10 {
			return fmt.Sprintf("Policy development dominating conversation across %d major sources", sourceCount)
		}
		if delta >= 4 {
			return fmt.Sprintf("%s policy impact with %s reporting", capitalize(momentumLevel), mentionLevel)
		}
		return fmt.Sprintf("Policy narrative %s with focus from %d distinct sources", mentionLevel, sourceCount)
	}

	// Generic cascade for categories without bespoke templates.
	if delta >= 5 && sourceCount >= 5 {
		return fmt.Sprintf("%s story %s across %s sources", mentionLevel, momentumLevel, sourceLevel)
	}
	if count >= 10 && sourceCount >= 6 {
		return fmt.Sprintf("Major narrative with %d mentions from %d independent sources", count, sourceCount)
	}
	if delta >= 4 {
		return fmt.Sprintf("Rapidly %s topic gaining attention across media", momentumLevel)
	}
	if sourceCount >= 5 {
		return fmt.Sprintf("%s consensus forming around this topic", sourceLevel)
	}
	if count >= 8 {
		return fmt.Sprintf("%s topic with sustained media coverage", mentionLevel)
	}
	return fmt.Sprintf("%s pattern forming with %s coverage", mentionLevel, sourceLevel)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
