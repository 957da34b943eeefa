package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

type rawNewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Timestamp   int64  `json:"timestamp"`
}

// decodeNewsItems parses a JSON array of headline records. Records without a
// title or link are skipped; a missing timestamp defaults to the decode time
// so that downstream sorting and minute-bucketing stay total over sloppy
// upstream feeds.
func decodeNewsItems(data []byte) ([]NewsItem, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var raws []rawNewsItem
	if err := decoder.Decode(&raws); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	now := time.Now().UnixMilli()
	items := make([]NewsItem, 0, len(raws))
	for _, r := range raws {
		if r.Title == "" || r.Link == "" {
			continue
		}
		ts := r.Timestamp
		if ts == 0 {
			ts = now
		}
		source := r.Source
		if source == "" {
			source = "Unknown"
		}
		items = append(items, NewsItem{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Link:        r.Link,
			Source:      source,
			Category:    r.Category,
			Timestamp:   ts,
		})
	}

	return items, nil
}
