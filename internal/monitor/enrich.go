package monitor

import "time"

// Enrich applies the taxonomy tables to a headline record using the default
// alert lexicon.
func Enrich(item NewsItem) NewsItem {
	return EnrichWithKeywords(item, nil)
}

// EnrichWithKeywords populates the alert, region, and topic fields of a
// headline record. The alert scan uses the provided keyword list when
// non-nil, otherwise the default AlertKeywords. Matching runs over the title
// concatenated with the description when one is present. A zero timestamp is
// replaced with the ingestion time.
func EnrichWithKeywords(item NewsItem, alertKeywords []string) NewsItem {
	text := item.Title
	if item.Description != "" {
		text = item.Title + " " + item.Description
	}

	match := ContainsAlertKeyword(text, alertKeywords)
	item.IsAlert = match.IsAlert
	item.AlertKeyword = match.Keyword
	item.Region = DetectRegion(text)
	item.Topics = DetectTopics(text)

	if item.Timestamp == 0 {
		item.Timestamp = time.Now().UnixMilli()
	}

	return item
}
