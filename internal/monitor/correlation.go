package monitor

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Signal strength levels shared by emerging patterns and cross-source
// correlations.
const (
	LevelHigh     = "high"
	LevelElevated = "elevated"
	LevelEmerging = "emerging"
)

// Momentum labels.
const (
	MomentumSurging = "surging"
	MomentumRising  = "rising"
	MomentumStable  = "stable"
)

// Predictive signal confidence levels.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

const (
	// historyRetentionMinutes bounds how long minute buckets are kept.
	historyRetentionMinutes = 30
	// momentumWindowMinutes is the lookback used to compute deltas.
	momentumWindowMinutes = 10
	// maxTopicHeadlines caps the headline samples kept per topic.
	maxTopicHeadlines = 5
)

// EmergingPattern reports a topic with sustained mentions in the current pass.
type EmergingPattern struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Count     int           `json:"count"`
	Level     string        `json:"level"`
	Sources   []string      `json:"sources"`
	Headlines []HeadlineRef `json:"headlines"`
}

// MomentumSignal reports a topic whose mention count is rising against the
// momentum window.
type MomentumSignal struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Current   int           `json:"current"`
	Delta     int           `json:"delta"`
	Momentum  string        `json:"momentum"`
	Headlines []HeadlineRef `json:"headlines"`
}

// CrossSourceCorrelation reports a topic covered by several independent
// sources at once.
type CrossSourceCorrelation struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	SourceCount int           `json:"sourceCount"`
	Sources     []string      `json:"sources"`
	Level       string        `json:"level"`
	Headlines   []HeadlineRef `json:"headlines"`
}

// PredictiveSignal combines mentions, source diversity, and momentum into a
// single forward-looking score.
type PredictiveSignal struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Category   string        `json:"category"`
	Score      int           `json:"score"`
	Confidence int           `json:"confidence"`
	Prediction string        `json:"prediction"`
	Level      string        `json:"level"`
	Headlines  []HeadlineRef `json:"headlines"`
}

// CorrelationResults bundles the four signal collections produced by one
// analysis pass.
type CorrelationResults struct {
	EmergingPatterns        []EmergingPattern        `json:"emergingPatterns"`
	MomentumSignals         []MomentumSignal         `json:"momentumSignals"`
	CrossSourceCorrelations []CrossSourceCorrelation `json:"crossSourceCorrelations"`
	PredictiveSignals       []PredictiveSignal       `json:"predictiveSignals"`
}

// CorrelationSummary is a trivial aggregate for status displays.
type CorrelationSummary struct {
	TotalSignals int    `json:"totalSignals"`
	Status       string `json:"status"`
}

// Engine tracks rolling per-minute topic mention counts and derives
// correlation signals from them. The history map is the only mutable state
// in the analytics core; it is owned exclusively by the engine and guarded
// by a mutex so concurrent analysis calls cannot write divergent snapshots
// for the same minute.
type Engine struct {
	topics []Topic

	mu      sync.Mutex
	history map[int64]map[string]int

	now func() time.Time
}

// NewEngine constructs an engine over the default topic catalog.
func NewEngine() *Engine {
	return NewEngineWithTopics(DefaultTopics())
}

// NewEngineWithTopics constructs an engine over a custom topic catalog.
func NewEngineWithTopics(topics []Topic) *Engine {
	return &Engine{
		topics:  topics,
		history: make(map[int64]map[string]int),
		now:     time.Now,
	}
}

// Topics returns the topic catalog the engine was configured with.
func (e *Engine) Topics() []Topic { return e.topics }

type topicTally struct {
	count     int
	sources   []string
	seen      map[string]struct{}
	headlines []HeadlineRef
}

// AnalyzeCorrelations runs one analysis pass over the full corpus and
// returns the derived signal collections. Returns nil when the input is
// empty. Topic counts are recomputed fresh on every call; only the
// per-minute history snapshot is frozen (first writer wins for a given
// minute, old buckets are purged as new ones are created).
func (e *Engine) AnalyzeCorrelations(items []NewsItem) *CorrelationResults {
	if len(items) == 0 {
		return nil
	}

	currentMinute := e.now().UnixMilli() / 60000

	tallies := make(map[string]*topicTally)
	for _, item := range items {
		title := item.Title
		source := item.Source
		if source == "" {
			source = "Unknown"
		}

		for _, topic := range e.topics {
			if !matchesTopic(topic, title) {
				continue
			}
			tally, ok := tallies[topic.ID]
			if !ok {
				tally = &topicTally{seen: make(map[string]struct{})}
				tallies[topic.ID] = tally
			}
			tally.count++
			if _, dup := tally.seen[source]; !dup {
				tally.seen[source] = struct{}{}
				tally.sources = append(tally.sources, source)
			}
			if len(tally.headlines) < maxTopicHeadlines {
				tally.headlines = append(tally.headlines, HeadlineRef{
					Title:  title,
					Link:   item.Link,
					Source: source,
				})
			}
		}
	}

	oldCounts := e.snapshotAndLookup(currentMinute, tallies)

	results := &CorrelationResults{
		EmergingPatterns:        []EmergingPattern{},
		MomentumSignals:         []MomentumSignal{},
		CrossSourceCorrelations: []CrossSourceCorrelation{},
		PredictiveSignals:       []PredictiveSignal{},
	}

	for _, topic := range e.topics {
		var count int
		var sources []string
		var headlines []HeadlineRef
		if tally, ok := tallies[topic.ID]; ok {
			count = tally.count
			sources = tally.sources
			headlines = tally.headlines
		}
		oldCount := oldCounts[topic.ID]
		delta := count - oldCount
		name := formatTopicName(topic.ID)

		if count >= 3 {
			level := LevelEmerging
			if count >= 8 {
				level = LevelHigh
			} else if count >= 5 {
				level = LevelElevated
			}
			results.EmergingPatterns = append(results.EmergingPatterns, EmergingPattern{
				ID:        topic.ID,
				Name:      name,
				Category:  topic.Category,
				Count:     count,
				Level:     level,
				Sources:   sources,
				Headlines: headlines,
			})
		}

		if delta >= 2 || (count >= 3 && delta >= 1) {
			momentum := MomentumStable
			if delta >= 4 {
				momentum = MomentumSurging
			} else if delta >= 2 {
				momentum = MomentumRising
			}
			results.MomentumSignals = append(results.MomentumSignals, MomentumSignal{
				ID:        topic.ID,
				Name:      name,
				Category:  topic.Category,
				Current:   count,
				Delta:     delta,
				Momentum:  momentum,
				Headlines: headlines,
			})
		}

		if len(sources) >= 3 {
			level := LevelEmerging
			if len(sources) >= 5 {
				level = LevelHigh
			} else if len(sources) >= 4 {
				level = LevelElevated
			}
			results.CrossSourceCorrelations = append(results.CrossSourceCorrelations, CrossSourceCorrelation{
				ID:          topic.ID,
				Name:        name,
				Category:    topic.Category,
				SourceCount: len(sources),
				Sources:     sources,
				Level:       level,
				Headlines:   headlines,
			})
		}

		score := count*2 + len(sources)*3 + delta*5
		if score >= 15 {
			confidence := int(float64(score)*1.5 + 0.5)
			if confidence > 95 {
				confidence = 95
			}
			level := ConfidenceLow
			if confidence >= 70 {
				level = ConfidenceHigh
			} else if confidence >= 50 {
				level = ConfidenceMedium
			}
			results.PredictiveSignals = append(results.PredictiveSignals, PredictiveSignal{
				ID:         topic.ID,
				Name:       name,
				Category:   topic.Category,
				Score:      score,
				Confidence: confidence,
				Prediction: buildPrediction(topic, count, len(sources), delta),
				Level:      level,
				Headlines:  headlines,
			})
		}
	}

	sort.SliceStable(results.EmergingPatterns, func(i, j int) bool {
		return results.EmergingPatterns[i].Count > results.EmergingPatterns[j].Count
	})
	sort.SliceStable(results.MomentumSignals, func(i, j int) bool {
		return results.MomentumSignals[i].Delta > results.MomentumSignals[j].Delta
	})
	sort.SliceStable(results.CrossSourceCorrelations, func(i, j int) bool {
		return results.CrossSourceCorrelations[i].SourceCount > results.CrossSourceCorrelations[j].SourceCount
	})
	sort.SliceStable(results.PredictiveSignals, func(i, j int) bool {
		return results.PredictiveSignals[i].Score > results.PredictiveSignals[j].Score
	})

	return results
}

// snapshotAndLookup records the current minute's counts if that bucket does
// not exist yet (check-then-set under the mutex), purges expired buckets,
// and returns a copy of the counts from the momentum window ago.
func (e *Engine) snapshotAndLookup(currentMinute int64, tallies map[string]*topicTally) map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.history[currentMinute]; !ok {
		snapshot := make(map[string]int, len(tallies))
		for id, tally := range tallies {
			snapshot[id] = tally.count
		}
		e.history[currentMinute] = snapshot

		for bucket := range e.history {
			if currentMinute-bucket > historyRetentionMinutes {
				delete(e.history, bucket)
			}
		}
	}

	oldCounts := make(map[string]int)
	for id, count := range e.history[currentMinute-momentumWindowMinutes] {
		oldCounts[id] = count
	}
	return oldCounts
}

// ClearHistory resets the rolling minute-bucket state.
func (e *Engine) ClearHistory() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = make(map[int64]map[string]int)
}

func matchesTopic(topic Topic, title string) bool {
	for _, pattern := range topic.Patterns {
		if pattern.MatchString(title) {
			return true
		}
	}
	return false
}

// Summarize reduces correlation results to a signal count and status string.
func Summarize(results *CorrelationResults) CorrelationSummary {
	if results == nil {
		return CorrelationSummary{TotalSignals: 0, Status: "NO DATA"}
	}

	total := len(results.EmergingPatterns) + len(results.MomentumSignals) + len(results.PredictiveSignals)
	status := "MONITORING"
	if total > 0 {
		status = fmt.Sprintf("%d SIGNALS", total)
	}
	return CorrelationSummary{TotalSignals: total, Status: status}
}
