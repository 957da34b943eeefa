package monitor

import (
	"context"
	"errors"
	"sort"
	"time"
)

// Snapshot is the result of one full analysis pass.
type Snapshot struct {
	AsOf         time.Time           `json:"as_of"`
	From         time.Time           `json:"from"`
	To           time.Time           `json:"to"`
	Headlines    []NewsItem          `json:"headlines"`
	Sentiment    *SentimentSummary   `json:"sentiment"`
	Correlations *CorrelationResults `json:"correlations"`
	Summary      CorrelationSummary  `json:"summary"`
}

// Pipeline orchestrates fetching, enrichment, sentiment aggregation, and
// correlation analysis.
type Pipeline struct {
	Sources        *SourceRegistry
	Engine         *Engine
	Keywords       *KeywordStore
	SentimentLimit int
}

// NewPipeline constructs a new Pipeline.
func NewPipeline(sources *SourceRegistry, engine *Engine, keywords *KeywordStore) (*Pipeline, error) {
	if sources == nil {
		return nil, errors.New("pipeline requires sources")
	}
	if engine == nil {
		engine = NewEngine()
	}
	if keywords == nil {
		keywords = NewKeywordStore()
	}
	return &Pipeline{
		Sources:        sources,
		Engine:         engine,
		Keywords:       keywords,
		SentimentLimit: DefaultSentimentLimit,
	}, nil
}

// Run executes the end-to-end flow: fetch all records in the window, enrich
// each, then derive the sentiment summary and correlation signals.
func (p *Pipeline) Run(ctx context.Context, from, to time.Time, sentimentLimit int) (*Snapshot, error) {
	if sentimentLimit <= 0 {
		sentimentLimit = p.SentimentLimit
	}

	items, err := p.Sources.FetchAll(ctx, from, to)
	if err != nil {
		return nil, err
	}

	alertKeywords := p.Keywords.Active()
	enriched := make([]NewsItem, 0, len(items))
	for _, item := range items {
		enriched = append(enriched, EnrichWithKeywords(item, alertKeywords))
	}

	sort.SliceStable(enriched, func(i, j int) bool {
		return enriched[i].Timestamp > enriched[j].Timestamp
	})

	correlations := p.Engine.AnalyzeCorrelations(enriched)

	return &Snapshot{
		AsOf:         time.Now().UTC(),
		From:         from,
		To:           to,
		Headlines:    enriched,
		Sentiment:    AnalyzeSentiment(enriched, sentimentLimit),
		Correlations: correlations,
		Summary:      Summarize(correlations),
	}, nil
}
