package monitor

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedEngine(now time.Time) *Engine {
	e := NewEngine()
	e.now = func() time.Time { return now }
	return e
}

func strikeItems(n int, source string) []NewsItem {
	items := make([]NewsItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, NewsItem{
			ID:     fmt.Sprintf("item-%d", i),
			Title:  fmt.Sprintf("Missile strike reported near border, update %d", i),
			Link:   fmt.Sprintf("https://example.com/%d", i),
			Source: source,
		})
	}
	return items
}

func findEmerging(results *CorrelationResults, id string) *EmergingPattern {
	for i := range results.EmergingPatterns {
		if results.EmergingPatterns[i].ID == id {
			return &results.EmergingPatterns[i]
		}
	}
	return nil
}

func findMomentum(results *CorrelationResults, id string) *MomentumSignal {
	for i := range results.MomentumSignals {
		if results.MomentumSignals[i].ID == id {
			return &results.MomentumSignals[i]
		}
	}
	return nil
}

func findPredictive(results *CorrelationResults, id string) *PredictiveSignal {
	for i := range results.PredictiveSignals {
		if results.PredictiveSignals[i].ID == id {
			return &results.PredictiveSignals[i]
		}
	}
	return nil
}

func TestAnalyzeCorrelationsEmptyInput(t *testing.T) {
	e := fixedEngine(time.Now())
	if results := e.AnalyzeCorrelations(nil); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
	if results := e.AnalyzeCorrelations([]NewsItem{}); results != nil {
		t.Fatalf("expected nil results, got %+v", results)
	}
}

func TestEmergingPatternLevels(t *testing.T) {
	cases := []struct {
		count int
		level string
	}{
		{3, LevelEmerging},
		{5, LevelElevated},
		{8, LevelHigh},
	}

	for _, tc := range cases {
		e := fixedEngine(time.Now())
		results := e.AnalyzeCorrelations(strikeItems(tc.count, "Wire"))
		pattern := findEmerging(results, "military-escalation")
		if pattern == nil {
			t.Fatalf("count=%d: expected emerging pattern", tc.count)
		}
		if pattern.Count != tc.count {
			t.Fatalf("count=%d: got count %d", tc.count, pattern.Count)
		}
		if pattern.Level != tc.level {
			t.Fatalf("count=%d: expected level %s, got %s", tc.count, tc.level, pattern.Level)
		}
	}
}

func TestEmergingPatternRequiresThreeMentions(t *testing.T) {
	e := fixedEngine(time.Now())
	results := e.AnalyzeCorrelations(strikeItems(2, "Wire"))
	if pattern := findEmerging(results, "military-escalation"); pattern != nil {
		t.Fatalf("two mentions should not emit a pattern: %+v", pattern)
	}
}

func TestHeadlineSamplesCappedAtFive(t *testing.T) {
	e := fixedEngine(time.Now())
	results := e.AnalyzeCorrelations(strikeItems(9, "Wire"))
	pattern := findEmerging(results, "military-escalation")
	if pattern == nil {
		t.Fatalf("expected emerging pattern")
	}
	if len(pattern.Headlines) != 5 {
		t.Fatalf("expected 5 headline samples, got %d", len(pattern.Headlines))
	}
	// Samples keep item-iteration order.
	if !strings.Contains(pattern.Headlines[0].Title, "update 0") {
		t.Fatalf("expected first item first, got %q", pattern.Headlines[0].Title)
	}
}

func TestHistoryFirstWriteWins(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)
	minute := now.UnixMilli() / 60000

	e.AnalyzeCorrelations(strikeItems(5, "Wire"))
	if got := e.history[minute]["military-escalation"]; got != 5 {
		t.Fatalf("expected snapshot 5, got %d", got)
	}

	// A second call within the same minute must not touch the stored
	// snapshot, while its returned counts reflect the live input.
	results := e.AnalyzeCorrelations(strikeItems(10, "Wire"))
	if got := e.history[minute]["military-escalation"]; got != 5 {
		t.Fatalf("snapshot overwritten: expected 5, got %d", got)
	}
	pattern := findEmerging(results, "military-escalation")
	if pattern == nil || pattern.Count != 10 {
		t.Fatalf("expected live count 10, got %+v", pattern)
	}
}

func TestHistoryRetentionPurge(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)
	minute := now.UnixMilli() / 60000

	e.history[minute-31] = map[string]int{"military-escalation": 2}
	e.history[minute-30] = map[string]int{"military-escalation": 2}

	e.AnalyzeCorrelations(strikeItems(3, "Wire"))

	if _, ok := e.history[minute-31]; ok {
		t.Fatalf("bucket older than retention should be purged")
	}
	if _, ok := e.history[minute-30]; !ok {
		t.Fatalf("bucket at the retention boundary should be kept")
	}
}

func TestMomentumAgainstHistoricalBucket(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)
	minute := now.UnixMilli() / 60000

	e.history[minute-10] = map[string]int{"military-escalation": 1}

	results := e.AnalyzeCorrelations(strikeItems(5, "Wire"))
	signal := findMomentum(results, "military-escalation")
	if signal == nil {
		t.Fatalf("expected momentum signal")
	}
	if signal.Current != 5 || signal.Delta != 4 {
		t.Fatalf("expected current=5 delta=4, got %+v", signal)
	}
	if signal.Momentum != MomentumSurging {
		t.Fatalf("expected surging, got %s", signal.Momentum)
	}
}

func TestMomentumGating(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)
	minute := now.UnixMilli() / 60000

	// delta=1 with count below 3 is not enough.
	e.history[minute-10] = map[string]int{"military-escalation": 1}
	results := e.AnalyzeCorrelations(strikeItems(2, "Wire"))
	if signal := findMomentum(results, "military-escalation"); signal != nil {
		t.Fatalf("delta=1 with count=2 should not emit momentum: %+v", signal)
	}

	// delta=1 passes once count reaches 3.
	e2 := fixedEngine(now)
	e2.history[minute-10] = map[string]int{"military-escalation": 2}
	results = e2.AnalyzeCorrelations(strikeItems(3, "Wire"))
	signal := findMomentum(results, "military-escalation")
	if signal == nil {
		t.Fatalf("expected momentum signal for count=3 delta=1")
	}
	if signal.Momentum != MomentumStable {
		t.Fatalf("expected stable for delta=1, got %s", signal.Momentum)
	}
}

func TestClearHistoryMakesDeltaEqualCount(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)

	e.AnalyzeCorrelations(strikeItems(5, "Wire"))
	e.ClearHistory()

	results := e.AnalyzeCorrelations(strikeItems(4, "Wire"))
	signal := findMomentum(results, "military-escalation")
	if signal == nil {
		t.Fatalf("expected momentum signal")
	}
	if signal.Delta != signal.Current || signal.Delta != 4 {
		t.Fatalf("after clear, delta must equal count: %+v", signal)
	}
}

func TestCrossSourceCorrelationLevels(t *testing.T) {
	now := time.Now()

	build := func(sourceCount int) []NewsItem {
		var items []NewsItem
		for i := 0; i < sourceCount; i++ {
			items = append(items, NewsItem{
				Title:  "Missile strike hits supply depot",
				Link:   fmt.Sprintf("https://example.com/s/%d", i),
				Source: fmt.Sprintf("Source-%d", i),
			})
		}
		return items
	}

	cases := []struct {
		sources int
		level   string
	}{
		{3, LevelEmerging},
		{4, LevelElevated},
		{5, LevelHigh},
	}

	for _, tc := range cases {
		e := fixedEngine(now)
		results := e.AnalyzeCorrelations(build(tc.sources))

		var found *CrossSourceCorrelation
		for i := range results.CrossSourceCorrelations {
			if results.CrossSourceCorrelations[i].ID == "military-escalation" {
				found = &results.CrossSourceCorrelations[i]
			}
		}
		if found == nil {
			t.Fatalf("sources=%d: expected cross-source correlation", tc.sources)
		}
		if found.SourceCount != tc.sources {
			t.Fatalf("sources=%d: got %d", tc.sources, found.SourceCount)
		}
		if found.Level != tc.level {
			t.Fatalf("sources=%d: expected %s, got %s", tc.sources, tc.level, found.Level)
		}
	}
}

func TestPredictiveSignalScoreAndConfidence(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)

	// Three mentions from three sources with empty history: score is
	// 3*2 + 3*3 + 3*5 = 30, confidence 45, level low.
	items := []NewsItem{
		{Title: "Missile strike on depot", Link: "https://example.com/1", Source: "A"},
		{Title: "Missile strike confirmed", Link: "https://example.com/2", Source: "B"},
		{Title: "Strike damages rail line", Link: "https://example.com/3", Source: "C"},
	}
	results := e.AnalyzeCorrelations(items)
	signal := findPredictive(results, "military-escalation")
	if signal == nil {
		t.Fatalf("expected predictive signal")
	}
	if signal.Score != 30 {
		t.Fatalf("expected score 30, got %d", signal.Score)
	}
	if signal.Confidence != 45 {
		t.Fatalf("expected confidence 45, got %d", signal.Confidence)
	}
	if signal.Level != ConfidenceLow {
		t.Fatalf("expected low, got %s", signal.Level)
	}
	// Conflict template, delta below the escalation branch.
	if signal.Prediction != "Geopolitical tension building with increased reporting" {
		t.Fatalf("unexpected prediction %q", signal.Prediction)
	}
}

func TestPredictiveSignalHighConfidenceCapped(t *testing.T) {
	now := time.Now()
	e := fixedEngine(now)

	var items []NewsItem
	for i := 0; i < 8; i++ {
		items = append(items, NewsItem{
			Title:  "Missile strike wave continues",
			Link:   fmt.Sprintf("https://example.com/%d", i),
			Source: fmt.Sprintf("Source-%d", i%6),
		})
	}

	results := e.AnalyzeCorrelations(items)
	signal := findPredictive(results, "military-escalation")
	if signal == nil {
		t.Fatalf("expected predictive signal")
	}
	// count=8, sources=6, delta=8: score 74, confidence capped at 95.
	if signal.Score != 74 {
		t.Fatalf("expected score 74, got %d", signal.Score)
	}
	if signal.Confidence != 95 {
		t.Fatalf("expected confidence capped at 95, got %d", signal.Confidence)
	}
	if signal.Level != ConfidenceHigh {
		t.Fatalf("expected high, got %s", signal.Level)
	}
	if !strings.Contains(signal.Prediction, "escalation with widespread coverage") {
		t.Fatalf("expected the escalation branch, got %q", signal.Prediction)
	}
}

func TestPredictiveSignalBelowThresholdOmitted(t *testing.T) {
	e := fixedEngine(time.Now())
	// One mention from one source: score 2+3+5 = 10, below 15.
	results := e.AnalyzeCorrelations(strikeItems(1, "Wire"))
	if signal := findPredictive(results, "military-escalation"); signal != nil {
		t.Fatalf("score below threshold should be omitted: %+v", signal)
	}
}

func TestResultsSortedByDefiningMetric(t *testing.T) {
	e := fixedEngine(time.Now())

	var items []NewsItem
	items = append(items, strikeItems(3, "Wire")...)
	for i := 0; i < 5; i++ {
		items = append(items, NewsItem{
			Title:  "Nuclear test conducted at remote site",
			Link:   fmt.Sprintf("https://example.com/n/%d", i),
			Source: "Wire",
		})
	}

	results := e.AnalyzeCorrelations(items)
	if len(results.EmergingPatterns) < 2 {
		t.Fatalf("expected at least 2 emerging patterns, got %d", len(results.EmergingPatterns))
	}
	for i := 1; i < len(results.EmergingPatterns); i++ {
		if results.EmergingPatterns[i-1].Count < results.EmergingPatterns[i].Count {
			t.Fatalf("emerging patterns not sorted by count descending")
		}
	}
	if results.EmergingPatterns[0].ID != "nuclear-escalation" {
		t.Fatalf("expected nuclear-escalation first, got %s", results.EmergingPatterns[0].ID)
	}
}

func TestCorrelationScenarioCrossSource(t *testing.T) {
	e := fixedEngine(time.Now())

	items := []NewsItem{
		{Title: "Russia launches missile strike on Kyiv", Link: "https://example.com/a", Source: "A"},
		{Title: "Missile strike kills dozens in Kyiv", Link: "https://example.com/b", Source: "B"},
		{Title: "Ukraine reports new Russian strikes", Link: "https://example.com/c", Source: "C"},
	}

	results := e.AnalyzeCorrelations(items)
	pattern := findEmerging(results, "military-escalation")
	if pattern == nil {
		t.Fatalf("expected emerging pattern")
	}
	if pattern.Count != 3 {
		t.Fatalf("expected count 3, got %d", pattern.Count)
	}
	wantSources := []string{"A", "B", "C"}
	if len(pattern.Sources) != 3 {
		t.Fatalf("expected sources %v, got %v", wantSources, pattern.Sources)
	}
	for i, source := range wantSources {
		if pattern.Sources[i] != source {
			t.Fatalf("expected sources %v, got %v", wantSources, pattern.Sources)
		}
	}

	var cross *CrossSourceCorrelation
	for i := range results.CrossSourceCorrelations {
		if results.CrossSourceCorrelations[i].ID == "military-escalation" {
			cross = &results.CrossSourceCorrelations[i]
		}
	}
	if cross == nil {
		t.Fatalf("expected cross-source correlation")
	}
	if cross.Level != LevelEmerging || cross.SourceCount != 3 {
		t.Fatalf("expected emerging with 3 sources, got %+v", cross)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalSignals != 0 || summary.Status != "NO DATA" {
		t.Fatalf("unexpected nil summary: %+v", summary)
	}

	summary = Summarize(&CorrelationResults{})
	if summary.TotalSignals != 0 || summary.Status != "MONITORING" {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}

	summary = Summarize(&CorrelationResults{
		EmergingPatterns:  []EmergingPattern{{}, {}},
		MomentumSignals:   []MomentumSignal{{}},
		PredictiveSignals: []PredictiveSignal{{}},
		CrossSourceCorrelations: []CrossSourceCorrelation{
			{}, {}, {}, // not counted toward the total
		},
	})
	if summary.TotalSignals != 4 {
		t.Fatalf("expected 4 signals, got %d", summary.TotalSignals)
	}
	if summary.Status != "4 SIGNALS" {
		t.Fatalf("expected status %q, got %q", "4 SIGNALS", summary.Status)
	}
}
