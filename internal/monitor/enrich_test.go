package monitor

import "testing"

func TestEnrichPopulatesFields(t *testing.T) {
	item := Enrich(NewsItem{
		ID:        "n1",
		Title:     "Russia deploys troops near the frontier",
		Link:      "https://example.com/troops",
		Source:    "Wire",
		Timestamp: 1788091200000,
	})

	if !item.IsAlert {
		t.Fatalf("expected alert")
	}
	if item.AlertKeyword != "troops" {
		t.Fatalf("expected keyword troops, got %q", item.AlertKeyword)
	}
	if item.Region != "EUROPE" {
		t.Fatalf("expected EUROPE, got %q", item.Region)
	}
	if len(item.Topics) != 1 || item.Topics[0] != "CONFLICT" {
		t.Fatalf("expected [CONFLICT], got %v", item.Topics)
	}
	if item.Timestamp != 1788091200000 {
		t.Fatalf("timestamp must not change when set, got %d", item.Timestamp)
	}
}

func TestEnrichUsesDescription(t *testing.T) {
	item := Enrich(NewsItem{
		Title:       "Officials brief press on overnight developments",
		Description: "A missile reportedly hit a storage facility.",
		Link:        "https://example.com/brief",
	})

	if !item.IsAlert || item.AlertKeyword != "missile" {
		t.Fatalf("expected missile alert from description, got %+v", item)
	}
}

func TestEnrichDefaultsMissingTimestamp(t *testing.T) {
	item := Enrich(NewsItem{Title: "Quiet news day", Link: "https://example.com/quiet"})
	if item.Timestamp == 0 {
		t.Fatalf("expected ingestion-time default for missing timestamp")
	}
}

func TestEnrichWithCustomKeywords(t *testing.T) {
	item := EnrichWithKeywords(NewsItem{
		Title: "Drought emergency spreads across farmland",
		Link:  "https://example.com/drought",
	}, []string{"drought"})

	if !item.IsAlert || item.AlertKeyword != "drought" {
		t.Fatalf("expected custom keyword match, got %+v", item)
	}
}
