package monitor

import (
	"sort"
	"strings"
)

// SentimentTier labels the emotional tone of a headline.
type SentimentTier string

const (
	SentimentAlarming SentimentTier = "alarming"
	SentimentCritical SentimentTier = "critical"
	SentimentNegative SentimentTier = "negative"
	SentimentPositive SentimentTier = "positive"
	SentimentNeutral  SentimentTier = "neutral"
)

// DefaultSentimentLimit bounds how many recent headlines feed the aggregate
// when the caller does not specify a limit.
const DefaultSentimentLimit = 20

// GeneralTheme is the fallback theme for headlines matching no theme keywords.
const GeneralTheme = "General"

// HeadlineSentiment is the per-headline classification result.
type HeadlineSentiment struct {
	Headline  NewsItem      `json:"headline"`
	Sentiment SentimentTier `json:"sentiment"`
	Score     float64       `json:"score"`
	Keywords  []string      `json:"keywords"`
	Category  string        `json:"category"`
}

// ThemeSummary aggregates sentiment for a single geopolitical theme.
type ThemeSummary struct {
	Theme     string        `json:"theme"`
	Count     int           `json:"count"`
	Sentiment SentimentTier `json:"sentiment"`
}

// SentimentSummary aggregates the most recent headlines into an overall tone.
type SentimentSummary struct {
	Overall      SentimentTier         `json:"overall"`
	OverallScore float64               `json:"overallScore"`
	Distribution map[SentimentTier]int `json:"distribution"`
	TopHeadlines []HeadlineSentiment   `json:"topHeadlines"`
	Themes       []ThemeSummary        `json:"themes"`
}

// AnalyzeHeadline classifies a single headline into a sentiment tier.
// Matched keywords are collected in tier order (alarming first) and
// truncated to five. Dominance is strict: any alarming keyword wins, then
// any critical keyword, then whichever of negative/positive counted more.
func AnalyzeHeadline(item NewsItem) HeadlineSentiment {
	title := strings.ToLower(item.Title)

	counts := make(map[SentimentTier]int, len(SentimentLexicon))
	var found []string
	for _, tier := range SentimentLexicon {
		for _, keyword := range tier.Keywords {
			if strings.Contains(title, keyword) {
				counts[tier.Tier]++
				found = append(found, keyword)
			}
		}
	}

	var sentiment SentimentTier
	var score float64
	switch {
	case counts[SentimentAlarming] >= 1:
		sentiment, score = SentimentAlarming, -1
	case counts[SentimentCritical] >= 1:
		sentiment, score = SentimentCritical, -0.7
	case counts[SentimentNegative] > counts[SentimentPositive]:
		sentiment, score = SentimentNegative, -0.4
	case counts[SentimentPositive] > counts[SentimentNegative]:
		sentiment, score = SentimentPositive, 0.5
	default:
		sentiment, score = SentimentNeutral, 0
	}

	category := GeneralTheme
	for _, theme := range GeopoliticalThemes {
		if containsAny(title, theme.Keywords) {
			category = theme.Key
			break
		}
	}

	if len(found) > 5 {
		found = found[:5]
	}

	return HeadlineSentiment{
		Headline:  item,
		Sentiment: sentiment,
		Score:     score,
		Keywords:  found,
		Category:  category,
	}
}

// AnalyzeSentiment classifies the most recent headlines (up to limit,
// default 20) and aggregates them into a summary. Returns nil when the
// input is empty.
func AnalyzeSentiment(items []NewsItem, limit int) *SentimentSummary {
	if len(items) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSentimentLimit
	}

	sorted := make([]NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	analyzed := make([]HeadlineSentiment, 0, len(sorted))
	distribution := map[SentimentTier]int{
		SentimentPositive: 0,
		SentimentNegative: 0,
		SentimentNeutral:  0,
		SentimentCritical: 0,
		SentimentAlarming: 0,
	}

	var totalScore float64
	type themeTally struct {
		count int
		total float64
	}
	themeTallies := make(map[string]*themeTally)
	var themeOrder []string

	for _, item := range sorted {
		result := AnalyzeHeadline(item)
		analyzed = append(analyzed, result)
		distribution[result.Sentiment]++
		totalScore += result.Score

		tally, ok := themeTallies[result.Category]
		if !ok {
			tally = &themeTally{}
			themeTallies[result.Category] = tally
			themeOrder = append(themeOrder, result.Category)
		}
		tally.count++
		tally.total += result.Score
	}

	avgScore := totalScore / float64(len(analyzed))

	themes := make([]ThemeSummary, 0, len(themeOrder))
	for _, name := range themeOrder {
		if name == GeneralTheme {
			continue
		}
		tally := themeTallies[name]
		themes = append(themes, ThemeSummary{
			Theme:     name,
			Count:     tally.count,
			Sentiment: tierForScore(tally.total / float64(tally.count)),
		})
	}
	sort.SliceStable(themes, func(i, j int) bool {
		return themes[i].Count > themes[j].Count
	})
	if len(themes) > 6 {
		themes = themes[:6]
	}

	return &SentimentSummary{
		Overall:      tierForScore(avgScore),
		OverallScore: avgScore,
		Distribution: distribution,
		TopHeadlines: analyzed,
		Themes:       themes,
	}
}

// tierForScore maps a mean score onto a tier. The ladder is evaluated top
// to bottom with half-open boundaries; the first satisfied branch wins.
func tierForScore(score float64) SentimentTier {
	switch {
	case score <= -0.6:
		return SentimentAlarming
	case score <= -0.3:
		return SentimentCritical
	case score < -0.1:
		return SentimentNegative
	case score > 0.2:
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}
