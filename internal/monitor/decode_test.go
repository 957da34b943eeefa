package monitor

import "testing"

func TestDecodeNewsItems(t *testing.T) {
	data := []byte(`[
		{"id": "a", "title": "Summit opens", "link": "https://example.com/a", "source": "Wire", "category": "politics", "timestamp": 1788091200000},
		{"id": "b", "title": "", "link": "https://example.com/b"},
		{"id": "c", "title": "No link provided"},
		{"id": "d", "title": "Missing timestamp", "link": "https://example.com/d"}
	]`)

	items, err := decodeNewsItems(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 valid items, got %d", len(items))
	}

	if items[0].ID != "a" || items[0].Timestamp != 1788091200000 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}

	if items[1].ID != "d" {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
	if items[1].Timestamp == 0 {
		t.Fatalf("missing timestamp should default to decode time")
	}
	if items[1].Source != "Unknown" {
		t.Fatalf("missing source should default to Unknown, got %q", items[1].Source)
	}
}

func TestDecodeNewsItemsInvalidJSON(t *testing.T) {
	if _, err := decodeNewsItems([]byte(`{"not": "an array"}`)); err == nil {
		t.Fatalf("expected error for non-array payload")
	}
}
