package monitor

// NewsItem represents a single headline record fetched from an upstream feed.
// Timestamp is epoch milliseconds; a zero value is replaced with the
// ingestion time when the record is decoded or enriched.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	Timestamp   int64  `json:"timestamp"`

	// Enrichment fields, populated once by Enrich.
	IsAlert      bool     `json:"isAlert"`
	AlertKeyword string   `json:"alertKeyword,omitempty"`
	Region       string   `json:"region,omitempty"`
	Topics       []string `json:"topics"`
}

// HeadlineRef is a compact reference to a headline used in correlation output.
type HeadlineRef struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}
