package monitor

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IngestSource stores ad-hoc headline records submitted via the API.
type IngestSource struct {
	name  string
	mu    sync.RWMutex
	items []NewsItem
}

// NewIngestSource constructs an empty ingest source.
func NewIngestSource(name string) *IngestSource {
	if name == "" {
		name = "ingest"
	}
	return &IngestSource{name: name}
}

// Name returns the source identifier.
func (s *IngestSource) Name() string { return s.name }

// Add registers a headline record in the ingest source, generating defaults
// when missing.
func (s *IngestSource) Add(item NewsItem) NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Timestamp == 0 {
		item.Timestamp = time.Now().UnixMilli()
	}
	if item.Source == "" {
		item.Source = s.name
	}

	// Replace existing record with same ID if found.
	for idx := range s.items {
		if s.items[idx].ID == item.ID {
			s.items[idx] = item
			return s.items[idx]
		}
	}

	s.items = append(s.items, item)
	return item
}

// Fetch returns records within the requested timeframe.
func (s *IngestSource) Fetch(ctx context.Context, from, to time.Time) ([]NewsItem, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	fromMs := from.UnixMilli()
	toMs := to.UnixMilli()

	out := make([]NewsItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Timestamp < fromMs || item.Timestamp > toMs {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})

	return out, nil
}

// PruneOlderThan drops records with timestamps before the provided time and
// returns the number of removed entries.
func (s *IngestSource) PruneOlderThan(ts time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return 0
	}

	cutoff := ts.UnixMilli()
	filtered := s.items[:0]
	removed := 0
	for _, item := range s.items {
		if item.Timestamp < cutoff {
			removed++
			continue
		}
		filtered = append(filtered, item)
	}
	s.items = filtered
	return removed
}
